// Package services implements the driving port interfaces.
// Services contain the core business logic: the ingestion pipeline
// with its compensating rollback, catalogue queries, and the
// catalogue-grounded assistant. They orchestrate calls to driven
// ports (adapters) and never touch HTTP, SQL or the filesystem
// directly.
package services
