package engine

import "github.com/google/uuid"

// NameGenerator mints a name for a breaker that was constructed without an
// explicit one. Names only matter for log correlation, so collisions are a
// cosmetic concern, not a correctness one.
type NameGenerator interface {
	Generate() string
}

// defaultNameGenerator mints random, readable-enough names: "breaker-"
// followed by the first 8 hex characters of a uuidv4. Good enough to tell breakers apart in a log stream without the
// caller having to name every one explicitly.
type defaultNameGenerator struct{}

func (defaultNameGenerator) Generate() string {
	return "breaker-" + uuid.NewString()[:8]
}
