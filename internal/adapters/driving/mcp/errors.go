// Package mcp provides an MCP (Model Context Protocol) server adapter for zip2pdf.
// It lets AI assistants build PDFs from archives, images and text files and
// merge existing PDFs on the local machine.
package mcp

import "errors"

// ErrMissingSessionManager is returned when the session manager is not provided.
var ErrMissingSessionManager = errors.New("mcp: session manager is required")

// ErrMissingMergeService is returned by merge_pdfs when no merge service is configured.
var ErrMissingMergeService = errors.New("mcp: merge service is not configured")
