package pipeline

import "errors"

var (
	// ErrEmptyQuestion is returned when the question is empty after trimming.
	ErrEmptyQuestion = errors.New("question must not be empty")

	// ErrNoEvidence is returned when neither the vector path nor the keyword
	// fallback produced any supporting records. The generator is never invoked
	// in this case.
	ErrNoEvidence = errors.New("no relevant information found in the knowledge base")

	// ErrGeneration wraps failures of the language model call.
	ErrGeneration = errors.New("answer generation failed")
)
