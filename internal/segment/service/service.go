package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/furnishlab/preview-server/config"
	"github.com/furnishlab/preview-server/internal/sam2"
	"github.com/furnishlab/preview-server/pkg/logger"
	model "github.com/furnishlab/preview-server/pkg/segment"
)

var log = logger.New()

// Strategy is one way of producing masks from an upload.
type Strategy interface {
	// Name is the stable identifier clients may pass to select the strategy.
	Name() string
	// Description is a human-readable summary returned in responses.
	Description() string
	// Segment produces zero or more masks for the request.
	Segment(ctx context.Context, req *model.Request) ([]model.MaskImage, error)
}

// Segmentation is the outcome of a successful dispatch.
type Segmentation struct {
	Masks       []model.MaskImage
	Strategy    string
	Description string
}

// Service dispatches segmentation requests across the configured strategies.
//
// Without an explicit strategy name the ordered fallback chain runs:
// sam2-automatic first, color-cluster second. A strategy "fails" if it
// returns an error or zero masks; the first strategy yielding at least one
// mask wins. The prompt strategy never participates in the chain.
type Service struct {
	chain  []Strategy
	byName map[string]Strategy
}

// New creates the service with the default strategy set backed by the SAM2
// sidecar client.
func New(cfg *config.Config) *Service {
	client := sam2.NewClient(cfg.SAM2)
	return NewWithStrategies(
		[]Strategy{
			NewAutomaticStrategy(client),
			NewColorStrategy(cfg.Color.Clusters),
		},
		NewPromptStrategy(client),
	)
}

// NewWithStrategies creates the service with an explicit fallback chain and
// prompt strategy.
func NewWithStrategies(chain []Strategy, prompt Strategy) *Service {
	byName := make(map[string]Strategy, len(chain)+1)
	for _, s := range chain {
		byName[s.Name()] = s
	}
	if prompt != nil {
		byName[prompt.Name()] = prompt
	}
	return &Service{chain: chain, byName: byName}
}

// Strategies returns the names of all registered strategies, chain order
// first.
func (s *Service) Strategies() []string {
	names := make([]string, 0, len(s.byName))
	for _, st := range s.chain {
		names = append(names, st.Name())
	}
	for name := range s.byName {
		seen := false
		for _, n := range names {
			if n == name {
				seen = true
				break
			}
		}
		if !seen {
			names = append(names, name)
		}
	}
	return names
}

// Segment runs the named strategy, or the fallback chain when name is empty.
func (s *Service) Segment(ctx context.Context, name string, req *model.Request) (*Segmentation, error) {
	if name != "" {
		strategy, ok := s.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
		}
		return s.run(ctx, strategy, req)
	}

	var failures []string
	for _, strategy := range s.chain {
		result, err := s.run(ctx, strategy, req)
		if err != nil {
			log.Warn("Strategy %s failed, trying next: %v", strategy.Name(), err)
			failures = append(failures, fmt.Sprintf("%s: %v", strategy.Name(), err))
			continue
		}
		return result, nil
	}

	return nil, fmt.Errorf("all strategies failed: %s", strings.Join(failures, "; "))
}

func (s *Service) run(ctx context.Context, strategy Strategy, req *model.Request) (*Segmentation, error) {
	masks, err := strategy.Segment(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(masks) == 0 {
		return nil, ErrNoMasks
	}

	log.Info("Strategy %s generated %d masks", strategy.Name(), len(masks))
	return &Segmentation{
		Masks:       masks,
		Strategy:    strategy.Name(),
		Description: strategy.Description(),
	}, nil
}
