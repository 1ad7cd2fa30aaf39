package domain

import "time"

// Size ceilings for uploaded files, enforced before validation so that
// adversarial input is never read unbounded.
const (
	// MaxDocumentBytes is the ceiling for an uploaded PDF.
	MaxDocumentBytes = 16 << 20 // 16 MiB

	// MaxCoverBytes is the ceiling for an uploaded cover image.
	MaxCoverBytes = 5 << 20 // 5 MiB
)

// Book represents one catalogued book and its artifact references.
// A book is immutable after creation except for deletion, which also
// removes the referenced artifacts.
type Book struct {
	// ID is assigned by the catalog store. Monotonic, never reused.
	ID int64

	// Title is the human-readable title. Never empty.
	Title string

	// Author is the book's author. Never empty.
	Author string

	// Description is optional free text.
	Description string

	// DocumentKey is the artifact key of the primary PDF. Always set;
	// a book without a backing document is never visible to readers.
	DocumentKey string

	// CoverKey is the artifact key of the cover image. Empty when no
	// cover was uploaded.
	CoverKey string

	// CreatedAt is set once by the catalog store at insert time.
	CreatedAt time.Time
}

// HasCover reports whether the book has a stored cover image.
func (b *Book) HasCover() bool {
	return b.CoverKey != ""
}
