// Package validate classifies untrusted uploads against their declared
// kind. Documents are checked by extension allow-list; images must
// additionally decode as a real image of a matching family
// (decode-and-discard), so a renamed binary never passes.
package validate

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	// Registered decoders back the decode-and-discard check.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/libris-app/libris/internal/core/domain"
	"github.com/libris-app/libris/internal/core/ports/driven"
)

// Ensure Validator implements the interface.
var _ driven.FormatValidator = (*Validator)(nil)

// documentExtensions is the allow-list for primary document uploads.
var documentExtensions = map[string]bool{
	"pdf": true,
}

// imageExtensions maps allowed cover extensions to the decoder format
// name they must match. jpg and jpeg are one family.
var imageExtensions = map[string]string{
	"png":  "png",
	"jpg":  "jpeg",
	"jpeg": "jpeg",
	"gif":  "gif",
	"webp": "webp",
}

// Validator is a stateless FormatValidator.
type Validator struct{}

// New creates a new upload validator.
func New() *Validator {
	return &Validator{}
}

// Classify inspects the stream against the declared kind. The stream
// is left positioned at its start on every path so it can be persisted
// afterwards. A malformed file is a Rejected result, not an error;
// errors are reserved for stream failures.
func (v *Validator) Classify(r io.ReadSeeker, declaredName string, kind domain.FileKind) (domain.ValidationResult, error) {
	ext := extension(declaredName)

	switch kind {
	case domain.FileDocument:
		if err := rewind(r); err != nil {
			return domain.ValidationResult{}, err
		}
		if !documentExtensions[ext] {
			return domain.Reject(domain.RejectDisallowedType), nil
		}
		return domain.Accept(ext), nil

	case domain.FileImage:
		family, ok := imageExtensions[ext]
		if !ok {
			if err := rewind(r); err != nil {
				return domain.ValidationResult{}, err
			}
			return domain.Reject(domain.RejectDisallowedType), nil
		}

		if err := rewind(r); err != nil {
			return domain.ValidationResult{}, err
		}
		_, format, decodeErr := image.Decode(r)
		if err := rewind(r); err != nil {
			return domain.ValidationResult{}, err
		}
		if decodeErr != nil || format != family {
			return domain.Reject(domain.RejectInvalidContent), nil
		}
		return domain.Accept(format), nil

	default:
		return domain.ValidationResult{}, fmt.Errorf("unknown file kind %d", kind)
	}
}

// extension returns the lower-cased extension without the dot.
func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	return strings.TrimPrefix(ext, ".")
}

func rewind(r io.ReadSeeker) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind upload stream: %w", err)
	}
	return nil
}
