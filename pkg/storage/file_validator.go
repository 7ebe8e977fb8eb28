package storage

import (
	"bytes"
	"path/filepath"
	"strings"
)

// FileKind selects the whitelist a file is validated against.
type FileKind string

const (
	KindImage  FileKind = "image"  // profile pictures
	KindResume FileKind = "resume" // resumes
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	Error        string // Error message if validation failed
}

// Magic byte signatures for allowed file types.
// Maps lowercase extension to possible magic byte prefixes.
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

// Per-kind extension whitelists
var allowedExtensions = map[FileKind]map[string]bool{
	KindImage: {
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	},
	KindResume: {
		".pdf":  true,
		".doc":  true,
		".docx": true,
	},
}

// Strict MIME types - DO NOT include application/octet-stream
var strictMIMETypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	// ZIP-based documents (DOCX detection fallback)
	"application/zip": true,
}

// ValidateFile performs 3-layer file validation:
// 1. Extension whitelist check (per file kind)
// 2. Magic byte verification (content matches extension)
// 3. MIME type whitelist (application/octet-stream rejected except for doc/docx)
func ValidateFile(kind FileKind, filename string, data []byte, detectedMIME string) FileValidationResult {
	result := FileValidationResult{
		DetectedMIME: detectedMIME,
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	// Layer 1: Extension whitelist
	if !allowedExtensions[kind][ext] {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	// Layer 2: Magic byte validation
	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension (potential file spoofing detected)"
		return result
	}

	// Layer 3: MIME type whitelist.
	// application/octet-stream would allow arbitrary binary uploads;
	// doc/docx are sometimes detected as octet-stream and have already
	// passed the magic byte check above.
	if detectedMIME == "application/octet-stream" {
		if ext != ".docx" && ext != ".doc" {
			result.Error = "binary files not allowed; file type could not be determined"
			return result
		}
	} else if !strictMIMETypes[detectedMIME] {
		result.Error = "MIME type not allowed: " + detectedMIME
		return result
	}

	result.Valid = true
	return result
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false // File too small to validate
	}

	signatures, ok := magicBytes[ext]
	if !ok {
		return false
	}

	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}

	return false
}

// AllowedExtensions returns the whitelist for a kind, for error messages.
func AllowedExtensions(kind FileKind) []string {
	extensions := make([]string, 0, len(allowedExtensions[kind]))
	for ext := range allowedExtensions[kind] {
		extensions = append(extensions, ext)
	}
	return extensions
}
