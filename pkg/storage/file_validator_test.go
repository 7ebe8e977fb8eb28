package storage_test

import (
	"testing"

	"designhire-backend/pkg/storage"

	"github.com/stretchr/testify/assert"
)

var (
	jpegData = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	pngData  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	pdfData  = []byte("%PDF-1.7 rest of document")
)

func TestValidateFile(t *testing.T) {
	t.Run("Should accept a real jpeg avatar", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindImage, "photo.jpg", jpegData, "image/jpeg")
		assert.True(t, result.Valid)
		assert.Equal(t, ".jpg", result.Extension)
	})

	t.Run("Should accept a real png avatar", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindImage, "photo.PNG", pngData, "image/png")
		assert.True(t, result.Valid)
	})

	t.Run("Should accept a pdf resume", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindResume, "resume.pdf", pdfData, "application/pdf")
		assert.True(t, result.Valid)
	})

	t.Run("Should reject a disallowed extension", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindImage, "malware.exe", jpegData, "image/jpeg")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "extension not allowed")
	})

	t.Run("Should reject a pdf posing as an image", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindResume, "resume.pdf", jpegData, "application/pdf")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "does not match extension")
	})

	t.Run("Should reject content spoofed behind an image extension", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindImage, "photo.jpg", pdfData, "image/jpeg")
		assert.False(t, result.Valid)
	})

	t.Run("Should reject octet-stream for images", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindImage, "photo.jpg", jpegData, "application/octet-stream")
		assert.False(t, result.Valid)
	})

	t.Run("Should allow octet-stream only for word documents", func(t *testing.T) {
		docx := []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00}
		result := storage.ValidateFile(storage.KindResume, "resume.docx", docx, "application/octet-stream")
		assert.True(t, result.Valid)
	})

	t.Run("Should reject a file with no extension", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindResume, "resume", pdfData, "application/pdf")
		assert.False(t, result.Valid)
	})

	t.Run("Should reject a truncated file", func(t *testing.T) {
		result := storage.ValidateFile(storage.KindImage, "photo.jpg", []byte{0xFF}, "image/jpeg")
		assert.False(t, result.Valid)
	})
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_resume.pdf", storage.SanitizeFilename("my resume.pdf"))
	assert.Equal(t, "photo-1.jpg", storage.SanitizeFilename("photo-1.JPG"))
	assert.Equal(t, "rsum.pdf", storage.SanitizeFilename("résumé.pdf"))
	assert.Equal(t, "file.png", storage.SanitizeFilename("@#$%.png"))
}
