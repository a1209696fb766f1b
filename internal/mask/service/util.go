package service

import (
	"github.com/gabriel-vasile/mimetype"
)

// getMimeType determines the MIME type of a file
func getMimeType(path string) string {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		log.Error("Error detecting MIME type: %v", err)
		return "application/octet-stream"
	}
	return mime.String()
}
