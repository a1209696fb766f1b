package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	v        *viper.Viper
	instance *Config
	once     sync.Once
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string
	Port int
}

// SAM2Config holds everything needed to address the SAM2 inference sidecar.
type SAM2Config struct {
	// Endpoint is the base URL of the inference sidecar.
	Endpoint string
	// Dir is the SAM2 installation directory on the sidecar host.
	Dir string
	// ModelSize selects the checkpoint: tiny, small, base_plus or large.
	ModelSize string

	// Automatic mask generator parameters, forwarded verbatim.
	PointsPerSide        int
	PredIoUThresh        float64
	StabilityScoreThresh float64
	CropNLayers          int
	CropNPointsDownscale int
	MinMaskRegionArea    int
}

// FileConfig holds mask materialization and retention settings.
type FileConfig struct {
	TempDir        string
	RetentionHours int
}

// ColorConfig holds the color-cluster strategy settings.
type ColorConfig struct {
	// Clusters is the fixed K for K-means, and therefore the number of
	// regions the color strategy returns.
	Clusters int
}

// Config is the root configuration for the server.
type Config struct {
	Server ServerConfig
	SAM2   SAM2Config
	File   FileConfig
	Color  ColorConfig
}

func init() {
	v = viper.New()

	// Set default values
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("sam2.endpoint", "http://127.0.0.1:8900")
	v.SetDefault("sam2.dir", "/opt/sam2")
	v.SetDefault("sam2.model_size", "large")
	v.SetDefault("sam2.points_per_side", 32)
	v.SetDefault("sam2.pred_iou_thresh", 0.8)
	v.SetDefault("sam2.stability_score_thresh", 0.9)
	v.SetDefault("sam2.crop_n_layers", 0)
	v.SetDefault("sam2.crop_n_points_downscale", 1)
	v.SetDefault("sam2.min_mask_region_area", 100)
	v.SetDefault("file.temp", "temp")
	v.SetDefault("file.retention_hours", 24)
	v.SetDefault("color.clusters", 6)

	// Environment variables
	v.AutomaticEnv()
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("sam2.endpoint", "SAM2_ENDPOINT")
	v.BindEnv("sam2.dir", "SAM2_DIR")
	v.BindEnv("sam2.model_size", "MODEL_SIZE")
	v.BindEnv("sam2.points_per_side", "SAM2_POINTS_PER_SIDE")
	v.BindEnv("sam2.pred_iou_thresh", "SAM2_PRED_IOU_THRESH")
	v.BindEnv("sam2.stability_score_thresh", "SAM2_STABILITY_SCORE_THRESH")
	v.BindEnv("sam2.crop_n_layers", "SAM2_CROP_N_LAYERS")
	v.BindEnv("sam2.crop_n_points_downscale", "SAM2_CROP_N_POINTS_DOWNSCALE")
	v.BindEnv("sam2.min_mask_region_area", "SAM2_MIN_MASK_REGION_AREA")
	v.BindEnv("file.temp", "TEMP_DIR")
	v.BindEnv("file.retention_hours", "TEMP_RETENTION_HOURS")
	v.BindEnv("color.clusters", "COLOR_CLUSTERS")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configPaths := []string{
		".",
		"$HOME/.preview",
		"/etc/preview",
	}
	for _, path := range configPaths {
		v.AddConfigPath(os.ExpandEnv(path))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			panic(fmt.Sprintf("Fatal error reading config file: %s", err))
		}
		// Config file not found; ignore error and use defaults
	}
}

// GetInstance returns the shared configuration, loading it on first use.
func GetInstance() *Config {
	once.Do(func() {
		instance = load()
	})
	return instance
}

func load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		SAM2: SAM2Config{
			Endpoint:             v.GetString("sam2.endpoint"),
			Dir:                  v.GetString("sam2.dir"),
			ModelSize:            v.GetString("sam2.model_size"),
			PointsPerSide:        v.GetInt("sam2.points_per_side"),
			PredIoUThresh:        v.GetFloat64("sam2.pred_iou_thresh"),
			StabilityScoreThresh: v.GetFloat64("sam2.stability_score_thresh"),
			CropNLayers:          v.GetInt("sam2.crop_n_layers"),
			CropNPointsDownscale: v.GetInt("sam2.crop_n_points_downscale"),
			MinMaskRegionArea:    v.GetInt("sam2.min_mask_region_area"),
		},
		File: FileConfig{
			TempDir:        v.GetString("file.temp"),
			RetentionHours: v.GetInt("file.retention_hours"),
		},
		Color: ColorConfig{
			Clusters: v.GetInt("color.clusters"),
		},
	}
}

// CheckpointPath returns the absolute path of the SAM2 checkpoint for the
// configured model size. The base_plus checkpoint is shipped as "b+".
func (c *SAM2Config) CheckpointPath() string {
	if c.ModelSize == "base_plus" {
		return filepath.Join(c.Dir, "checkpoints", "sam2.1_hiera_b+.pt")
	}
	return filepath.Join(c.Dir, "checkpoints", fmt.Sprintf("sam2.1_hiera_%s.pt", c.ModelSize))
}

// ModelConfig returns the relative path of the model config matching the
// configured model size. Configs are keyed by the size's first letter,
// except base_plus which uses "b+".
func (c *SAM2Config) ModelConfig() string {
	key := "l"
	switch {
	case c.ModelSize == "base_plus":
		key = "b+"
	case c.ModelSize != "":
		key = string(c.ModelSize[0])
	}
	return fmt.Sprintf("configs/sam2.1/sam2.1_hiera_%s.yaml", key)
}

// Retention returns the retention window as a duration.
func (c *FileConfig) Retention() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}
