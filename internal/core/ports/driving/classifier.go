package driving

import "github.com/custodia-labs/zip2pdf/internal/core/domain"

// Classifier decides how an input path would be imported without touching it.
type Classifier interface {
	Classify(path string) domain.Classification
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(path string) domain.Classification

// Classify calls f(path).
func (f ClassifierFunc) Classify(path string) domain.Classification {
	return f(path)
}
