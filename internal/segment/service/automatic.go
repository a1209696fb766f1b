package service

import (
	"context"
	"fmt"
	"image"
	"sort"

	model "github.com/furnishlab/preview-server/pkg/segment"
)

// Inferencer is the part of the SAM2 sidecar client the strategies need.
type Inferencer interface {
	Automatic(ctx context.Context, img image.Image) ([]model.MaskImage, error)
	Prompt(ctx context.Context, img image.Image, prompts *model.Prompts) ([]model.MaskImage, error)
}

// AutomaticStrategy segments every object in the image with SAM2's
// automatic mask generator.
type AutomaticStrategy struct {
	client Inferencer
}

// NewAutomaticStrategy creates the automatic SAM2 strategy.
func NewAutomaticStrategy(client Inferencer) *AutomaticStrategy {
	return &AutomaticStrategy{client: client}
}

// Name implements Strategy.
func (s *AutomaticStrategy) Name() string { return "sam2-automatic" }

// Description implements Strategy.
func (s *AutomaticStrategy) Description() string {
	return "SAM2 automatic mask generation over the whole image"
}

// Segment implements Strategy. Masks come back sorted by area descending so
// the largest furniture parts get the lowest mask numbers.
func (s *AutomaticStrategy) Segment(ctx context.Context, req *model.Request) ([]model.MaskImage, error) {
	masks, err := s.client.Automatic(ctx, req.Image)
	if err != nil {
		return nil, fmt.Errorf("sam2 automatic segmentation: %w", err)
	}

	sort.SliceStable(masks, func(i, j int) bool {
		return masks[i].Area > masks[j].Area
	})
	return masks, nil
}
