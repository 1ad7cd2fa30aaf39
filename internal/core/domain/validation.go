package domain

// FileKind is the declared category of an uploaded file.
type FileKind int

const (
	// FileDocument is the primary PDF upload.
	FileDocument FileKind = iota

	// FileImage is an optional cover image upload.
	FileImage
)

// String returns a human-readable name for the kind.
func (k FileKind) String() string {
	switch k {
	case FileDocument:
		return "document"
	case FileImage:
		return "image"
	default:
		return "unknown"
	}
}

// RejectReason explains why an upload was rejected.
type RejectReason string

const (
	// RejectDisallowedType means the file extension is not on the
	// allow-list for the declared kind.
	RejectDisallowedType RejectReason = "disallowed_type"

	// RejectInvalidContent means the extension was acceptable but the
	// byte stream did not decode as the claimed format.
	RejectInvalidContent RejectReason = "invalid_content"
)

// ValidationResult is the tagged outcome of classifying an upload.
// Exactly one of Accepted or Reason carries meaning; a rejection is
// never silently coerced into an acceptance.
type ValidationResult struct {
	// Accepted is true when the upload passed classification.
	Accepted bool

	// DetectedKind names the concrete format when accepted
	// (e.g. "pdf", "png").
	DetectedKind string

	// Reason is set when the upload was rejected.
	Reason RejectReason
}

// Accept builds an accepted result for the detected format.
func Accept(detectedKind string) ValidationResult {
	return ValidationResult{Accepted: true, DetectedKind: detectedKind}
}

// Reject builds a rejected result with the given reason.
func Reject(reason RejectReason) ValidationResult {
	return ValidationResult{Reason: reason}
}
