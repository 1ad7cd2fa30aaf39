// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CatalogStore: Book record persistence
//   - ArtifactStore: PDF and cover image persistence
//   - FormatValidator: Upload classification against the declared kind
//   - SessionStore: Session persistence for the HTTP boundary
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model client. Without it, the assistant
//     endpoints report unavailability and the catalogue keeps working.
//   - PromptStore: User-editable prompt templates. Without it,
//     embedded defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
