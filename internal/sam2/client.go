package sam2

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/furnishlab/preview-server/config"
	"github.com/furnishlab/preview-server/pkg/logger"
	model "github.com/furnishlab/preview-server/pkg/segment"
)

var log = logger.New()

const (
	automaticPath = "/v1/automatic"
	promptPath    = "/v1/prompt"

	// Inference can take tens of seconds on CPU for the large checkpoint.
	defaultTimeout = 120 * time.Second
)

// Client talks to the SAM2 inference sidecar over HTTP. Images travel as
// base64 PNG inside JSON bodies; the sidecar loads the checkpoint named in
// each request and answers with one base64 PNG per mask.
type Client struct {
	endpoint string
	cfg      config.SAM2Config
	http     *http.Client
}

// NewClient creates a client for the configured sidecar endpoint.
func NewClient(cfg config.SAM2Config) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		cfg:      cfg,
		http:     &http.Client{Timeout: defaultTimeout},
	}
}

// generatorParams mirrors the SAM2AutomaticMaskGenerator keyword arguments.
type generatorParams struct {
	PointsPerSide        int     `json:"points_per_side"`
	PredIoUThresh        float64 `json:"pred_iou_thresh"`
	StabilityScoreThresh float64 `json:"stability_score_thresh"`
	CropNLayers          int     `json:"crop_n_layers"`
	CropNPointsDownscale int     `json:"crop_n_points_downscale_factor"`
	MinMaskRegionArea    int     `json:"min_mask_region_area"`
}

type segmentRequest struct {
	Image      string          `json:"image"`
	Checkpoint string          `json:"checkpoint"`
	ModelCfg   string          `json:"model_cfg"`
	Params     generatorParams `json:"params"`

	// Prompt fields, only set for the prompt endpoint.
	Points [][]float64 `json:"points,omitempty"`
	Labels []int       `json:"labels,omitempty"`
	Boxes  [][]float64 `json:"boxes,omitempty"`
}

type maskPayload struct {
	PNG            string  `json:"png"`
	Area           int     `json:"area"`
	StabilityScore float64 `json:"stability_score"`
	PredictedIoU   float64 `json:"predicted_iou"`
}

type segmentResponse struct {
	Masks []maskPayload `json:"masks"`
	Error string        `json:"error,omitempty"`
}

// Automatic runs SAM2's automatic mask generator on the image and returns
// the decoded masks, sorted by area descending by the sidecar.
func (c *Client) Automatic(ctx context.Context, img image.Image) ([]model.MaskImage, error) {
	req, err := c.newRequest(img)
	if err != nil {
		return nil, err
	}
	return c.segment(ctx, automaticPath, req)
}

// Prompt runs SAM2's prompt-guided predictor with the given point/box
// prompts and returns the decoded masks.
func (c *Client) Prompt(ctx context.Context, img image.Image, prompts *model.Prompts) ([]model.MaskImage, error) {
	req, err := c.newRequest(img)
	if err != nil {
		return nil, err
	}
	req.Points = prompts.Points
	req.Labels = prompts.Labels
	req.Boxes = prompts.Boxes
	return c.segment(ctx, promptPath, req)
}

func (c *Client) newRequest(img image.Image) (*segmentRequest, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	return &segmentRequest{
		Image:      base64.StdEncoding.EncodeToString(buf.Bytes()),
		Checkpoint: c.cfg.CheckpointPath(),
		ModelCfg:   c.cfg.ModelConfig(),
		Params: generatorParams{
			PointsPerSide:        c.cfg.PointsPerSide,
			PredIoUThresh:        c.cfg.PredIoUThresh,
			StabilityScoreThresh: c.cfg.StabilityScoreThresh,
			CropNLayers:          c.cfg.CropNLayers,
			CropNPointsDownscale: c.cfg.CropNPointsDownscale,
			MinMaskRegionArea:    c.cfg.MinMaskRegionArea,
		},
	}, nil
}

func (c *Client) segment(ctx context.Context, path string, reqBody *segmentRequest) ([]model.MaskImage, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// Correlate sidecar logs with ours
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)
	log.Debug("Calling sam2 sidecar %s (request %s)", path, requestID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sam2 sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var segResp segmentResponse
	if err := json.Unmarshal(body, &segResp); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := segResp.Error
		if msg == "" {
			msg = string(body)
		}
		return nil, fmt.Errorf("sam2 sidecar returned status %d: %s", resp.StatusCode, msg)
	}

	masks := make([]model.MaskImage, 0, len(segResp.Masks))
	for i, m := range segResp.Masks {
		gray, err := decodeMask(m.PNG)
		if err != nil {
			log.Warn("Skipping undecodable mask %d: %v", i+1, err)
			continue
		}
		masks = append(masks, model.MaskImage{
			Image:          gray,
			Area:           m.Area,
			StabilityScore: m.StabilityScore,
			PredictedIoU:   m.PredictedIoU,
		})
	}

	return masks, nil
}

// decodeMask turns a base64 PNG into a grayscale mask image.
func decodeMask(encoded string) (*image.Gray, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	if gray, ok := img.(*image.Gray); ok {
		return gray, nil
	}
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)
	return gray, nil
}
