package driving

import "github.com/custodia-labs/zip2pdf/internal/core/domain"

// Decider answers yes/no questions raised while importing files.
type Decider interface {
	Decide(q domain.Question) bool
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(q domain.Question) bool

// Decide calls f(q).
func (f DeciderFunc) Decide(q domain.Question) bool {
	return f(q)
}

// Always returns a Decider that gives the same answer to every question.
func Always(answer bool) Decider {
	return DeciderFunc(func(domain.Question) bool { return answer })
}
