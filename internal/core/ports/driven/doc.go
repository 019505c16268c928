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
//   - ArchiveExtractor: Unpacks ZIP and 7Z archives into a staging directory
//   - PDFGenerator: Renders an ordered page list into one PDF document
//   - PDFMerger: Concatenates existing PDF files
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FileTypeDetector: Content sniffing. Without it, questions carry no hint
//     and extension-less archives are assumed to be ZIP.
//   - SessionStore: Named session persistence. Without it, sessions live only
//     for one process.
//   - DropWatcher: Inbox directory events for the TUI.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
