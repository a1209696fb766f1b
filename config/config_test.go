package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/furnishlab/preview-server/config"
)

func TestCheckpointPath(t *testing.T) {
	cases := []struct {
		size     string
		expected string
	}{
		{"large", "/opt/sam2/checkpoints/sam2.1_hiera_large.pt"},
		{"small", "/opt/sam2/checkpoints/sam2.1_hiera_small.pt"},
		{"tiny", "/opt/sam2/checkpoints/sam2.1_hiera_tiny.pt"},
		{"base_plus", "/opt/sam2/checkpoints/sam2.1_hiera_b+.pt"},
	}

	for _, tc := range cases {
		t.Run(tc.size, func(t *testing.T) {
			cfg := config.SAM2Config{Dir: "/opt/sam2", ModelSize: tc.size}
			assert.Equal(t, tc.expected, cfg.CheckpointPath())
		})
	}
}

func TestModelConfig(t *testing.T) {
	cases := []struct {
		size     string
		expected string
	}{
		{"large", "configs/sam2.1/sam2.1_hiera_l.yaml"},
		{"small", "configs/sam2.1/sam2.1_hiera_s.yaml"},
		{"tiny", "configs/sam2.1/sam2.1_hiera_t.yaml"},
		{"base_plus", "configs/sam2.1/sam2.1_hiera_b+.yaml"},
		{"", "configs/sam2.1/sam2.1_hiera_l.yaml"},
	}

	for _, tc := range cases {
		cfg := config.SAM2Config{ModelSize: tc.size}
		assert.Equal(t, tc.expected, cfg.ModelConfig())
	}
}

func TestRetention(t *testing.T) {
	cfg := config.FileConfig{RetentionHours: 24}
	assert.Equal(t, 24*time.Hour, cfg.Retention())
}

func TestDefaults(t *testing.T) {
	cfg := config.GetInstance()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "large", cfg.SAM2.ModelSize)
	assert.Equal(t, 24, cfg.File.RetentionHours)
	assert.Equal(t, 6, cfg.Color.Clusters)
}
