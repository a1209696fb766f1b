package service

import (
	"context"
	"fmt"
	"os"

	maskmodel "github.com/furnishlab/preview-server/pkg/mask"
)

// HeadFile gets metadata about a mask file without opening it.
func (s *MaskService) HeadFile(ctx context.Context, filename string) (*maskmodel.FileStat, error) {
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

	return &maskmodel.FileStat{
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    info.Mode().String(),
		ModTime: info.ModTime().Format("2006-01-02T15:04:05Z07:00"),
		Mime:    getMimeType(fullPath),
	}, nil
}
