package services

import (
	"strings"
	"unicode/utf8"

	"github.com/libris-app/libris/internal/core/domain"
)

// Default budgets for the rendered grounding block. The per-item
// budget matches the excerpt length the assistant prompt was tuned
// for; the total keeps the system prompt well inside model context.
const (
	DefaultExcerptBudget = 100
	DefaultContextBudget = 4000
)

// RenderContext renders a bounded, deterministic digest of the
// catalogue for grounding prompts. Each book becomes one line:
//
//	- <title> by <author> (<description excerpt>...)
//
// The excerpt is truncated to perItemBudget characters. Rendering
// stops before a line would push the output past totalBudget; a book
// that would overflow is omitted entirely rather than truncated
// mid-line. Pure, no I/O.
func RenderContext(books []domain.Book, perItemBudget, totalBudget int) string {
	var b strings.Builder
	total := 0
	for i := range books {
		line := renderContextLine(&books[i], perItemBudget)
		n := utf8.RuneCountInString(line)
		if total+n > totalBudget {
			break
		}
		b.WriteString(line)
		total += n
	}
	return b.String()
}

func renderContextLine(book *domain.Book, excerptBudget int) string {
	var b strings.Builder
	b.WriteString("- ")
	b.WriteString(book.Title)
	b.WriteString(" by ")
	b.WriteString(book.Author)
	if book.Description != "" {
		b.WriteString(" (")
		b.WriteString(truncateRunes(book.Description, excerptBudget))
		b.WriteString("...)")
	}
	b.WriteString("\n")
	return b.String()
}

// truncateRunes cuts s to at most n runes, never splitting a rune.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
