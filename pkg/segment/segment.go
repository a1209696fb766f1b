package model

import "image"

// Request carries one decoded upload through the segmentation pipeline.
type Request struct {
	// Image is the decoded upload.
	Image image.Image
	// BaseName is the sanitized name of the uploaded file, without extension.
	BaseName string
	// Prompts are the optional point/box prompts for prompt-guided segmentation.
	Prompts *Prompts
}

// Prompts holds point and box prompts in the shape the SAM2 predictor
// expects: points as [x, y] pairs with parallel foreground/background
// labels, boxes as [x1, y1, x2, y2].
type Prompts struct {
	Points [][]float64 `json:"points,omitempty"`
	Labels []int       `json:"labels,omitempty"`
	Boxes  [][]float64 `json:"boxes,omitempty"`
}

// Empty reports whether the prompts carry neither points nor boxes.
func (p *Prompts) Empty() bool {
	return p == nil || (len(p.Points) == 0 && len(p.Boxes) == 0)
}

// MaskImage is one segmented region before it is written to disk.
type MaskImage struct {
	// Image is the rendered mask, white foreground on black.
	Image *image.Gray
	// Area is the number of foreground pixels.
	Area int
	// StabilityScore is the model's stability score, zero for the
	// color-cluster strategy.
	StabilityScore float64
	// PredictedIoU is the model's predicted IoU, zero for the
	// color-cluster strategy.
	PredictedIoU float64
}

// MaskInfo describes one materialized mask file in an API response.
type MaskInfo struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
}

// Result is the response payload for the segmentation endpoints.
type Result struct {
	Success     bool       `json:"success"`
	Message     string     `json:"message"`
	Strategy    string     `json:"strategy"`
	Description string     `json:"description"`
	Masks       []MaskInfo `json:"masks"`
}

// Error is the structured error payload for the segmentation endpoints.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
