package driving

import (
	"context"

	"github.com/libris-app/libris/internal/core/domain"
)

// AssistantService answers free-text questions grounded in the
// catalogue and generates per-book abstracts and annotations. All
// responses come from a single-turn completion; this is not a
// retrieval system.
type AssistantService interface {
	// Ask answers a free-text question grounded in the current
	// catalogue contents. Empty queries never reach the language
	// model client.
	Ask(ctx context.Context, req domain.RequestInfo, query string) (string, error)

	// GenerateAbstract produces a 150-300 word abstract for a book in
	// the caller's locale.
	GenerateAbstract(ctx context.Context, req domain.RequestInfo, id int64) (string, error)

	// GenerateAnnotation produces structured annotations for a book in
	// the caller's locale.
	GenerateAnnotation(ctx context.Context, req domain.RequestInfo, id int64) (string, error)
}
