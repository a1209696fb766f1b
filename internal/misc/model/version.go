package model

// VersionInfo contains server version information
type VersionInfo struct {
	Version    string `json:"version"`
	APIVersion string `json:"apiVersion"`
	GoVersion  string `json:"goVersion"`
	GitCommit  string `json:"gitCommit"`
	BuildTime  string `json:"buildTime"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
}
