package service

import (
	"context"
	"fmt"

	model "github.com/furnishlab/preview-server/pkg/segment"
)

// PromptStrategy segments the regions selected by point/box prompts with
// SAM2's promptable predictor. It only runs when a request carries prompts
// and never takes part in the automatic fallback chain.
type PromptStrategy struct {
	client Inferencer
}

// NewPromptStrategy creates the prompt-guided SAM2 strategy.
func NewPromptStrategy(client Inferencer) *PromptStrategy {
	return &PromptStrategy{client: client}
}

// Name implements Strategy.
func (s *PromptStrategy) Name() string { return "sam2-prompt" }

// Description implements Strategy.
func (s *PromptStrategy) Description() string {
	return "SAM2 prompt-guided segmentation from point and box prompts"
}

// Segment implements Strategy.
func (s *PromptStrategy) Segment(ctx context.Context, req *model.Request) ([]model.MaskImage, error) {
	if req.Prompts.Empty() {
		return nil, ErrPromptsRequired
	}

	masks, err := s.client.Prompt(ctx, req.Image, req.Prompts)
	if err != nil {
		return nil, fmt.Errorf("sam2 prompt segmentation: %w", err)
	}
	return masks, nil
}
