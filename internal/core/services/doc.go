// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// PageList and Classify are plain values with no I/O; Session, the
// managers and the settings service reach the filesystem and adapters
// only through the staging area and the driven ports.
package services
