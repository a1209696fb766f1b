package service

import (
	"context"
	"fmt"

	"github.com/furnishlab/preview-server/internal/imaging"
	"github.com/furnishlab/preview-server/pkg/id"
	maskmodel "github.com/furnishlab/preview-server/pkg/mask"
	model "github.com/furnishlab/preview-server/pkg/segment"
)

// SaveMasks writes one PNG per mask into the temp directory. Filenames share
// a batch ID so one upload's masks sort together and never collide with
// another upload of the same file.
func (s *MaskService) SaveMasks(ctx context.Context, baseName string, masks []model.MaskImage) ([]maskmodel.SavedMask, error) {
	if baseName == "" {
		baseName = "upload"
	}
	batch := id.GenerateBatchID()

	saved := make([]maskmodel.SavedMask, 0, len(masks))
	for i, mask := range masks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		filename := fmt.Sprintf("%s_%s_mask_%d.png", baseName, batch, i+1)
		path := s.fullPath(filename)

		if err := imaging.WritePNG(path, mask.Image); err != nil {
			return nil, fmt.Errorf("error writing mask %d: %v", i+1, err)
		}

		log.Debug("Saved mask %d: area=%d, stability=%.3f", i+1, mask.Area, mask.StabilityScore)
		saved = append(saved, maskmodel.SavedMask{
			ID:       i + 1,
			Filename: filename,
			Path:     path,
		})
	}

	return saved, nil
}
