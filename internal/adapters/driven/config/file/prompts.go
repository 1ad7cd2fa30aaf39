// Package file provides file-backed configuration adapters: the
// user-editable prompt store behind the assistant's system prompts.
package file

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/libris-app/libris/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk, with
// fallback to embedded defaults. Files are only created when first
// accessed, not in the constructor, which keeps testing free of
// unexpected I/O. An optional fsnotify watcher invalidates the cache
// when a prompt file changes on disk.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
	watcher   *fsnotify.Watcher
	log       *slog.Logger
}

// defaultPrompts contains embedded default prompts. These are used
// when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptAssistant: `You are a helpful AI assistant for a digital library called "Smart Library".
You help users find books, answer questions about literature, and provide reading recommendations.

%s

Please provide helpful, accurate, and engaging responses about books, reading, and literature.
If the user asks about specific books, check if they're available in the library above.
Keep responses concise but informative.`,

	driven.PromptAbstract: `You are an AI assistant that creates concise, informative abstracts for books.
Generate a well-structured abstract %s that summarizes the main themes, key points, and value of the book.
The abstract should be professional, clear, and between 150-300 words.
Focus on the book's main content, themes, and significance.`,

	driven.PromptAnnotation: `You are an AI assistant that creates detailed annotations and marginal notes for books.
Generate comprehensive annotations %s that provide insights, explanations, and commentary on the book's content.
The annotations should be educational, insightful, and help readers understand key concepts, themes, and important details.
Focus on providing valuable context, explanations of complex ideas, and connections to broader themes.
Format the annotations as a structured list with clear headings and bullet points.`,
}

// NewPromptStore creates a new file-based prompt store rooted at
// promptDir. The constructor does not perform any I/O; directory
// creation and file writes happen lazily on first Load().
func NewPromptStore(promptDir string, log *slog.Logger) *PromptStore {
	if log == nil {
		log = slog.Default()
	}
	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
		log:       log,
	}
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default
// files. Falls back to the embedded default if the file is missing.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Double-check so a concurrent load is not overwritten.
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// Watch starts an fsnotify watcher over the prompt directory so edits
// take effect without a restart. Load must have a chance to initialise
// the directory first; Watch creates it if needed.
func (s *PromptStore) Watch() error {
	if err := os.MkdirAll(s.promptDir, 0o700); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prompt watcher: %w", err)
	}
	if err := watcher.Add(s.promptDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch prompt directory: %w", err)
	}
	s.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Remove) {
					s.log.Debug("prompt file changed, clearing cache", "file", event.Name)
					s.Reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("prompt watcher error", "error", err)
			}
		}
	}()

	return nil
}

// Close stops the watcher if one was started.
func (s *PromptStore) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0o700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
