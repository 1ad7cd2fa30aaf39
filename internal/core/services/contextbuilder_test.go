package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris-app/libris/internal/core/domain"
)

func TestRenderContext_LineFormat(t *testing.T) {
	books := []domain.Book{
		{Title: "Romeo and Juliet", Author: "William Shakespeare", Description: "A tragedy of two young lovers."},
	}

	out := RenderContext(books, DefaultExcerptBudget, DefaultContextBudget)
	assert.Equal(t, "- Romeo and Juliet by William Shakespeare (A tragedy of two young lovers....)\n", out)
}

func TestRenderContext_NoDescription(t *testing.T) {
	books := []domain.Book{
		{Title: "2001: A Space Odyssey", Author: "Arthur C. Clarke"},
	}

	out := RenderContext(books, DefaultExcerptBudget, DefaultContextBudget)
	assert.Equal(t, "- 2001: A Space Odyssey by Arthur C. Clarke\n", out)
}

func TestRenderContext_ExcerptTruncation(t *testing.T) {
	long := strings.Repeat("x", 500)
	books := []domain.Book{{Title: "T", Author: "A", Description: long}}

	out := RenderContext(books, DefaultExcerptBudget, DefaultContextBudget)

	require.True(t, strings.HasSuffix(out, "...)\n"))
	assert.Contains(t, out, strings.Repeat("x", DefaultExcerptBudget)+"...")
	assert.NotContains(t, out, strings.Repeat("x", DefaultExcerptBudget+1))
}

func TestRenderContext_ExcerptCountsRunes(t *testing.T) {
	long := strings.Repeat("ك", 500) // Arabic letter kaf
	books := []domain.Book{{Title: "T", Author: "A", Description: long}}

	out := RenderContext(books, DefaultExcerptBudget, DefaultContextBudget)
	assert.Contains(t, out, strings.Repeat("ك", DefaultExcerptBudget)+"...")
	assert.True(t, utf8.ValidString(out))
}

func TestRenderContext_TotalBudgetStopsWholeLine(t *testing.T) {
	books := []domain.Book{
		{Title: "First", Author: "A"},
		{Title: "Second", Author: "B"},
		{Title: "Third", Author: "C"},
	}
	firstLine := "- First by A\n"

	// Budget fits the first line but not the second; rendering stops
	// at the whole-line boundary instead of cutting mid-line.
	out := RenderContext(books, DefaultExcerptBudget, len(firstLine)+3)
	assert.Equal(t, firstLine, out)
}

func TestRenderContext_Empty(t *testing.T) {
	assert.Equal(t, "", RenderContext(nil, DefaultExcerptBudget, DefaultContextBudget))
}

func TestRenderContext_PreservesOrder(t *testing.T) {
	books := []domain.Book{
		{Title: "Newest", Author: "A"},
		{Title: "Older", Author: "B"},
	}

	out := RenderContext(books, DefaultExcerptBudget, DefaultContextBudget)
	assert.True(t, strings.Index(out, "Newest") < strings.Index(out, "Older"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "كت", truncateRunes("كتاب", 2))
}
