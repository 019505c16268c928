// Package file provides file-based implementations of driven port interfaces.
//
// ConfigStore keeps user settings in a TOML file. Keys are addressed with dot
// notation ("pdf.page_size") and stored as TOML tables ([pdf] page_size).
package file
