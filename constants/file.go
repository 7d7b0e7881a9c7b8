package constants

import (
	"path/filepath"
	"strings"
)

// SourceFormat classifies how an input document reaches the pipeline.
type SourceFormat string

const (
	// DOCUMENT covers scanned PDFs and images: page content arrives from the
	// external layout analyzer.
	DOCUMENT SourceFormat = "DOCUMENT"
	// SPREADSHEET covers tabular files that the pipeline chunks itself.
	SPREADSHEET SourceFormat = "SPREADSHEET"
	// UNSUPPORTED is everything else; document-fatal per the error policy.
	UNSUPPORTED SourceFormat = "UNSUPPORTED"
)

var documentExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"tiff": {},
}

var spreadsheetExtensions = map[string]struct{}{
	"xlsx": {},
	"xls":  {},
	"csv":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// FormatForPath classifies a file path by extension.
func FormatForPath(path string) SourceFormat {
	ext := NormalizeExt(filepath.Ext(path))
	if _, ok := spreadsheetExtensions[ext]; ok {
		return SPREADSHEET
	}
	if _, ok := documentExtensions[ext]; ok {
		return DOCUMENT
	}
	return UNSUPPORTED
}
