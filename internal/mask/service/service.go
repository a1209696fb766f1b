package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/furnishlab/preview-server/internal/tracker"
	"github.com/furnishlab/preview-server/pkg/logger"
)

var log = logger.New()

// downloadGrace is how long after a download a file survives the sweep even
// when its modification time is past the retention window. Best effort only;
// the tracker is in-memory and empty after a restart.
const downloadGrace = 5 * time.Minute

// MaskService materializes masks as PNG files in the temp directory and
// serves and expires them.
type MaskService struct {
	tempDir   string
	retention time.Duration
	tracker   tracker.AccessTracker
}

// New creates a MaskService rooted at tempDir, creating the directory if
// needed.
func New(tempDir string, retention time.Duration, tr tracker.AccessTracker) (*MaskService, error) {
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %v", err)
	}

	log.Info("Mask service initialized with temp directory: %s", tempDir)

	return &MaskService{
		tempDir:   tempDir,
		retention: retention,
		tracker:   tr,
	}, nil
}

// TempDir returns the directory mask files are written to.
func (s *MaskService) TempDir() string {
	return s.tempDir
}

// validateFilename rejects anything that could escape the temp directory.
// Mask files live flat in one directory, so a valid name has no separators.
func (s *MaskService) validateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename is required")
	}
	if strings.ContainsAny(filename, "/\\") || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return fmt.Errorf("invalid filename: %s", filename)
	}
	return nil
}

func (s *MaskService) fullPath(filename string) string {
	return filepath.Join(s.tempDir, filename)
}
