// Package pdf renders page lists into PDF documents and merges existing PDFs.
//
// Generator lays out one image per page, or flows a text file over as many
// pages as it needs, using gofpdf. Merger concatenates PDFs with pdfcpu.
// Both write to a temporary file next to the destination and rename it on
// success, so a failed run never leaves a partial file behind.
package pdf
