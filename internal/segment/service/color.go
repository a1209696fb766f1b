package service

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/furnishlab/preview-server/internal/imaging"
	model "github.com/furnishlab/preview-server/pkg/segment"
)

// sampleMaxSize bounds the image used for centroid fitting. Full-resolution
// pixels are still assigned to centroids afterwards, so mask resolution is
// unaffected.
const sampleMaxSize = 128

// ColorStrategy partitions the image into regions of similar color with
// K-means. The cluster count is fixed, so the number of returned masks is
// the same for every input.
type ColorStrategy struct {
	clusters int
}

// NewColorStrategy creates the color-cluster strategy with the given fixed
// cluster count.
func NewColorStrategy(clusterCount int) *ColorStrategy {
	if clusterCount < 2 {
		clusterCount = 2
	}
	return &ColorStrategy{clusters: clusterCount}
}

// Name implements Strategy.
func (s *ColorStrategy) Name() string { return "color-cluster" }

// Description implements Strategy.
func (s *ColorStrategy) Description() string {
	return fmt.Sprintf("K-means color clustering into %d regions", s.clusters)
}

// Segment implements Strategy. Centroids are fitted on a downscaled sample,
// then every full-resolution pixel is assigned to its nearest centroid and
// one binary mask per cluster is rendered.
func (s *ColorStrategy) Segment(ctx context.Context, req *model.Request) ([]model.MaskImage, error) {
	src := imaging.ToNRGBA(req.Image)
	sample := imaging.ResizeWithinMax(src, sampleMaxSize)

	observations := pixelObservations(sample)
	if len(observations) < s.clusters {
		return nil, fmt.Errorf("image too small for %d color clusters", s.clusters)
	}

	km := kmeans.New()
	partition, err := km.Partition(observations, s.clusters)
	if err != nil {
		return nil, fmt.Errorf("k-means partition: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	masks := make([]model.MaskImage, s.clusters)
	for i := range masks {
		masks[i].Image = image.NewGray(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := (y - bounds.Min.Y) * src.Stride
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			off := row + (x-bounds.Min.X)*4
			obs := clusters.Coordinates{
				float64(src.Pix[off]) / 255.0,
				float64(src.Pix[off+1]) / 255.0,
				float64(src.Pix[off+2]) / 255.0,
			}
			idx := partition.Nearest(obs)
			masks[idx].Image.SetGray(x, y, color.Gray{Y: 255})
			masks[idx].Area++
		}
	}

	return masks, nil
}

// pixelObservations flattens the sample image into RGB observations in the
// unit cube.
func pixelObservations(img *image.NRGBA) clusters.Observations {
	b := img.Bounds()
	observations := make(clusters.Observations, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := (y - b.Min.Y) * img.Stride
		for x := b.Min.X; x < b.Max.X; x++ {
			off := row + (x-b.Min.X)*4
			observations = append(observations, clusters.Coordinates{
				float64(img.Pix[off]) / 255.0,
				float64(img.Pix[off+1]) / 255.0,
				float64(img.Pix[off+2]) / 255.0,
			})
		}
	}
	return observations
}
