package service

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ErrFileNotFound marks a download of a filename with no file behind it.
var ErrFileNotFound = fmt.Errorf("mask file not found")

// FileContent represents the content of a mask file
type FileContent struct {
	Reader   io.ReadCloser
	MimeType string
	Size     int64
}

// GetFile opens a mask file by name for download and records the access so
// the sweep leaves recently served files alone.
func (s *MaskService) GetFile(ctx context.Context, filename string) (*FileContent, error) {
	if err := s.validateFilename(filename); err != nil {
		return nil, err
	}

	fullPath := s.fullPath(filename)

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filename)
		}
		return nil, fmt.Errorf("error getting file info: %v", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filename)
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %v", err)
	}

	s.tracker.Update(filename)

	return &FileContent{
		Reader:   file,
		MimeType: getMimeType(fullPath),
		Size:     info.Size(),
	}, nil
}
