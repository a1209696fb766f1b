package model

// FileStat describes one mask file in the temp directory.
type FileStat struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Mode    string `json:"mode"`
	ModTime string `json:"modTime"`
	Mime    string `json:"mime"`
}

// SavedMask points at a mask file that was just written to the temp
// directory.
type SavedMask struct {
	ID       int
	Filename string
	Path     string
}

// ReclaimResult is the response payload for a retention sweep.
type ReclaimResult struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Reclaimed []FileStat `json:"reclaimed"`
}

// FileError is the structured error payload for the mask file endpoints.
type FileError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
