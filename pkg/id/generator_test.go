package id_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/furnishlab/preview-server/pkg/id"
)

func TestGenerateBatchID(t *testing.T) {
	// Test multiple IDs to ensure format and uniqueness
	generatedIDs := make(map[string]bool)
	iterations := 1000

	pattern := regexp.MustCompile(`^[0-9A-Za-z]{27}$`)

	for i := 0; i < iterations; i++ {
		batchID := id.GenerateBatchID()

		assert.True(t, pattern.MatchString(batchID), "Generated ID %s does not match expected pattern", batchID)

		// Check uniqueness
		_, exists := generatedIDs[batchID]
		assert.False(t, exists, "Generated duplicate ID: %s", batchID)
		generatedIDs[batchID] = true
	}
}

func TestSanitizeBaseName(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "sofa.png", "sofa"},
		{"jpeg", "kitchen cabinet.jpeg", "kitchen_cabinet"},
		{"path stripped", "/tmp/../etc/passwd.png", "passwd"},
		{"unicode replaced", "stoł.jpg", "sto_"},
		{"empty falls back", "", "upload"},
		{"keeps dashes and underscores", "chair_01-front.PNG", "chair_01-front"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, id.SanitizeBaseName(tc.input))
		})
	}
}
