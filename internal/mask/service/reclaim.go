package service

import (
	"context"
	"fmt"
	"os"
	"time"

	maskmodel "github.com/furnishlab/preview-server/pkg/mask"
)

// Reclaim deletes mask files whose modification time is past the retention
// window. Files served within the download grace period are skipped, best
// effort, so an in-flight download is unlikely to lose its file.
func (s *MaskService) Reclaim(ctx context.Context) (*maskmodel.ReclaimResult, error) {
	cutoff := time.Now().Add(-s.retention)
	var reclaimed []maskmodel.FileStat
	var failures []string

	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		return nil, fmt.Errorf("error reading temp directory: %v", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			failures = append(failures, fmt.Sprintf("Error reading %s: %v", entry.Name(), err))
			continue
		}

		if !info.ModTime().Before(cutoff) {
			continue
		}

		if last, ok := s.tracker.GetLastAccessed(entry.Name()); ok && time.Since(last) < downloadGrace {
			log.Debug("Skipping recently served file: %s", entry.Name())
			continue
		}

		path := s.fullPath(entry.Name())
		stat := maskmodel.FileStat{
			Name:    info.Name(),
			Size:    info.Size(),
			Mode:    info.Mode().String(),
			ModTime: info.ModTime().Format("2006-01-02T15:04:05Z07:00"),
			Mime:    getMimeType(path),
		}

		if err := os.Remove(path); err != nil {
			failures = append(failures, fmt.Sprintf("Error removing %s: %v", entry.Name(), err))
			continue
		}

		s.tracker.Remove(entry.Name())
		reclaimed = append(reclaimed, stat)
	}

	if len(failures) > 0 {
		log.Warn("Reclaim finished with %d errors: %v", len(failures), failures)
	}
	if len(reclaimed) > 0 {
		log.Info("Reclaimed %d expired mask files", len(reclaimed))
	}

	return &maskmodel.ReclaimResult{
		Success:   true,
		Message:   fmt.Sprintf("Reclaimed %d files", len(reclaimed)),
		Reclaimed: reclaimed,
	}, nil
}
