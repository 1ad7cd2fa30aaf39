package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/libris-app/libris/internal/core/domain"
	"github.com/libris-app/libris/internal/core/ports/driven"
	"github.com/libris-app/libris/internal/core/ports/driving"
)

// Ensure Assistant implements the interface.
var _ driving.AssistantService = (*Assistant)(nil)

// Token budgets and temperature for each assistant operation.
const (
	askMaxTokens        = 500
	abstractMaxTokens   = 400
	annotationMaxTokens = 600
	assistantTemp       = 0.7
)

// defaultAssistantPrompt is the fallback system prompt for Ask when no
// PromptStore is configured. The placeholder receives the rendered
// catalogue context block.
const defaultAssistantPrompt = `You are a helpful AI assistant for a digital library called "Smart Library".
You help users find books, answer questions about literature, and provide reading recommendations.

%s

Please provide helpful, accurate, and engaging responses about books, reading, and literature.
If the user asks about specific books, check if they're available in the library above.
Keep responses concise but informative.`

// defaultAbstractPrompt is the fallback system prompt for abstracts.
// The placeholder receives the language directive.
const defaultAbstractPrompt = `You are an AI assistant that creates concise, informative abstracts for books.
Generate a well-structured abstract %s that summarizes the main themes, key points, and value of the book.
The abstract should be professional, clear, and between 150-300 words.
Focus on the book's main content, themes, and significance.`

// defaultAnnotationPrompt is the fallback system prompt for annotations.
// The placeholder receives the language directive.
const defaultAnnotationPrompt = `You are an AI assistant that creates detailed annotations and marginal notes for books.
Generate comprehensive annotations %s that provide insights, explanations, and commentary on the book's content.
The annotations should be educational, insightful, and help readers understand key concepts, themes, and important details.
Focus on providing valuable context, explanations of complex ideas, and connections to broader themes.
Format the annotations as a structured list with clear headings and bullet points.`

// Assistant answers catalogue-grounded questions through an abstract
// language-model client. It performs no retries: a single provider
// failure is a single reported failure.
type Assistant struct {
	catalog driven.CatalogStore
	llm     driven.LLMService
	prompts driven.PromptStore
	log     *slog.Logger
}

// NewAssistant creates a new assistant service. llm may be nil, in
// which case every operation reports ErrLLMUnavailable. prompts may be
// nil, in which case embedded default prompts are used.
func NewAssistant(catalog driven.CatalogStore, llm driven.LLMService, prompts driven.PromptStore, log *slog.Logger) *Assistant {
	if log == nil {
		log = slog.Default()
	}
	return &Assistant{catalog: catalog, llm: llm, prompts: prompts, log: log}
}

// Ask answers a free-text question grounded in the catalogue. The
// system prompt embeds a bounded digest of all books so answers
// reflect what the library actually holds.
func (s *Assistant) Ask(ctx context.Context, req domain.RequestInfo, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", domain.ErrEmptyQuery
	}
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	books, err := s.catalog.ListAll(ctx)
	if err != nil {
		return "", &domain.StorageError{Op: "list books for grounding", Err: err}
	}

	var contextBlock string
	if len(books) > 0 {
		contextBlock = "Available books in the library:\n" +
			RenderContext(books, DefaultExcerptBudget, DefaultContextBudget)
	}

	system := fmt.Sprintf(s.loadPrompt(driven.PromptAssistant, defaultAssistantPrompt), contextBlock)
	system += "\n" + responseDirective(req.Locale)

	return s.complete(ctx, system, query, askMaxTokens)
}

// GenerateAbstract produces an abstract for a book in the caller's
// locale.
func (s *Assistant) GenerateAbstract(ctx context.Context, req domain.RequestInfo, id int64) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}
	book, err := s.catalog.Get(ctx, id)
	if err != nil {
		return "", err
	}

	system := fmt.Sprintf(s.loadPrompt(driven.PromptAbstract, defaultAbstractPrompt), languageDirective(req.Locale))
	user := fmt.Sprintf(`Please create an abstract for the following book:

Title: %s
Author: %s
Description: %s

Generate a comprehensive abstract that captures the essence of this book.`,
		book.Title, book.Author, describeOrFallback(book.Description))

	return s.complete(ctx, system, user, abstractMaxTokens)
}

// GenerateAnnotation produces structured annotations for a book in the
// caller's locale.
func (s *Assistant) GenerateAnnotation(ctx context.Context, req domain.RequestInfo, id int64) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}
	book, err := s.catalog.Get(ctx, id)
	if err != nil {
		return "", err
	}

	system := fmt.Sprintf(s.loadPrompt(driven.PromptAnnotation, defaultAnnotationPrompt), languageDirective(req.Locale))
	user := fmt.Sprintf(`Please create detailed annotations for the following book:

Title: %s
Author: %s
Description: %s

Generate comprehensive annotations that would help readers understand and appreciate this book better.
Include insights about themes, important concepts, historical context, and any other relevant information.`,
		book.Title, book.Author, describeOrFallback(book.Description))

	return s.complete(ctx, system, user, annotationMaxTokens)
}

// complete delegates to the language-model client and collapses every
// provider failure into a single opaque domain error. Full detail is
// logged server-side, never surfaced to end users.
func (s *Assistant) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	text, err := s.llm.Complete(ctx, system, user, driven.CompleteOptions{
		MaxTokens:   maxTokens,
		Temperature: assistantTemp,
	})
	if err != nil {
		timeout := errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil
		s.log.Error("language model call failed", "model", s.llm.ModelName(), "timeout", timeout, "error", err)
		return "", &domain.ProviderError{Timeout: timeout, Detail: err.Error()}
	}
	return text, nil
}

func (s *Assistant) loadPrompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	prompt, err := s.prompts.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// languageDirective is spliced into abstract/annotation prompts.
func languageDirective(locale domain.Locale) string {
	if locale == domain.LocaleEnglish {
		return "in English"
	}
	return "in Arabic"
}

// responseDirective is appended to the Ask system prompt.
func responseDirective(locale domain.Locale) string {
	if locale == domain.LocaleEnglish {
		return "Respond in English."
	}
	return "Respond in Arabic."
}

func describeOrFallback(description string) string {
	if description == "" {
		return "No description available"
	}
	return description
}
