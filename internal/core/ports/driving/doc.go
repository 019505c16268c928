// Package driving defines interfaces that external actors (TUI, CLI, MCP) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// Implementations of these interfaces live in internal/core/services.
// Decider is the one port implemented the other way round: presentation
// layers supply it so the core can ask the user yes/no questions.
package driving
