package driven

import (
	"io"

	"github.com/libris-app/libris/internal/core/domain"
)

// FormatValidator decides whether an uploaded byte stream is a
// well-formed file of the declared kind. It has no side effects and
// must leave the stream positioned at its start regardless of outcome,
// so the same stream can be persisted afterwards.
//
// Callers bound the stream length before classification; the validator
// never reads unbounded input.
type FormatValidator interface {
	// Classify inspects the stream against the declared kind.
	// The returned error is reserved for I/O failures while reading;
	// a malformed file is a Rejected result, not an error.
	Classify(r io.ReadSeeker, declaredName string, kind domain.FileKind) (domain.ValidationResult, error)
}
