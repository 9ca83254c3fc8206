package engine

// safeFilter evaluates a CauseFilter with panic recovery. A panicking filter
// must never be allowed to crash the caller or corrupt the breaker's state;
// it is treated as having returned false (cause does not count as failure),
// and the panic is reported through logger so the broken filter gets fixed.
func safeFilter(filter CauseFilter, cause error, name string, logger Logger) (result bool) {
	if filter == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			logger.FilterPanic(name, r)
			result = false
		}
	}()
	return filter(cause)
}
