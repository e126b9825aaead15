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
//   - DocumentRenderer: Opens documents (the rendering collaborator)
//   - Document: Page count, page size, rasters and word boxes of one document
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Clipboard: Receives committed selections. Without it, text is only
//     available through ViewerService.CurrentExtractedText.
//   - RecentStore: Recently opened documents.
//   - FileWatcher: Reloads a document when its file changes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
