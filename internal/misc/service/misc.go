package service

import (
	"runtime"

	"github.com/furnishlab/preview-server/internal/misc/model"
)

var (
	// Version is the version of the server, set at build time
	Version = "dev"
	// BuildTime is the time when the server was built
	BuildTime = "unknown"
	// CommitID is the git commit ID of the server
	CommitID = "unknown"
)

// MiscService handles miscellaneous operations
type MiscService struct{}

// New creates a new MiscService
func New() *MiscService {
	return &MiscService{}
}

// GetVersion returns server version information
func (s *MiscService) GetVersion() *model.VersionInfo {
	return &model.VersionInfo{
		Version:    Version,
		APIVersion: "v1",
		GoVersion:  runtime.Version(),
		GitCommit:  CommitID,
		BuildTime:  BuildTime,
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}
