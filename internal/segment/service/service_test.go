package service_test

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	service "github.com/furnishlab/preview-server/internal/segment/service"
	model "github.com/furnishlab/preview-server/pkg/segment"
)

// stubStrategy is a scripted Strategy for dispatcher tests.
type stubStrategy struct {
	name  string
	masks []model.MaskImage
	err   error
	calls int
}

func (s *stubStrategy) Name() string        { return s.name }
func (s *stubStrategy) Description() string { return "stub " + s.name }

func (s *stubStrategy) Segment(ctx context.Context, req *model.Request) ([]model.MaskImage, error) {
	s.calls++
	return s.masks, s.err
}

func someMasks(n int) []model.MaskImage {
	masks := make([]model.MaskImage, n)
	for i := range masks {
		masks[i].Image = image.NewGray(image.Rect(0, 0, 2, 2))
		masks[i].Area = 4
	}
	return masks
}

func testRequest() *model.Request {
	return &model.Request{
		Image:    image.NewNRGBA(image.Rect(0, 0, 8, 8)),
		BaseName: "sofa",
	}
}

func TestSegmentFirstStrategyWins(t *testing.T) {
	first := &stubStrategy{name: "sam2-automatic", masks: someMasks(3)}
	second := &stubStrategy{name: "color-cluster", masks: someMasks(6)}
	svc := service.NewWithStrategies([]service.Strategy{first, second}, nil)

	result, err := svc.Segment(context.Background(), "", testRequest())
	require.NoError(t, err)
	assert.Equal(t, "sam2-automatic", result.Strategy)
	assert.Len(t, result.Masks, 3)
	assert.Equal(t, 0, second.calls, "fallback must not run when the first strategy succeeds")
}

func TestSegmentFallsBackOnError(t *testing.T) {
	first := &stubStrategy{name: "sam2-automatic", err: errors.New("sidecar unreachable")}
	second := &stubStrategy{name: "color-cluster", masks: someMasks(6)}
	svc := service.NewWithStrategies([]service.Strategy{first, second}, nil)

	result, err := svc.Segment(context.Background(), "", testRequest())
	require.NoError(t, err)
	assert.Equal(t, "color-cluster", result.Strategy)
	assert.Equal(t, 1, first.calls)
}

func TestSegmentFallsBackOnZeroMasks(t *testing.T) {
	// A strategy that "succeeds" with zero masks counts as a failure.
	first := &stubStrategy{name: "sam2-automatic"}
	second := &stubStrategy{name: "color-cluster", masks: someMasks(2)}
	svc := service.NewWithStrategies([]service.Strategy{first, second}, nil)

	result, err := svc.Segment(context.Background(), "", testRequest())
	require.NoError(t, err)
	assert.Equal(t, "color-cluster", result.Strategy)
}

func TestSegmentAggregatesFailures(t *testing.T) {
	first := &stubStrategy{name: "sam2-automatic", err: errors.New("boom")}
	second := &stubStrategy{name: "color-cluster", err: errors.New("too small")}
	svc := service.NewWithStrategies([]service.Strategy{first, second}, nil)

	_, err := svc.Segment(context.Background(), "", testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sam2-automatic")
	assert.Contains(t, err.Error(), "color-cluster")
}

func TestSegmentExplicitStrategyDoesNotFallBack(t *testing.T) {
	first := &stubStrategy{name: "sam2-automatic", err: errors.New("boom")}
	second := &stubStrategy{name: "color-cluster", masks: someMasks(6)}
	svc := service.NewWithStrategies([]service.Strategy{first, second}, nil)

	_, err := svc.Segment(context.Background(), "sam2-automatic", testRequest())
	require.Error(t, err)
	assert.Equal(t, 0, second.calls)
}

func TestSegmentUnknownStrategy(t *testing.T) {
	svc := service.NewWithStrategies([]service.Strategy{&stubStrategy{name: "color-cluster", masks: someMasks(1)}}, nil)

	_, err := svc.Segment(context.Background(), "does-not-exist", testRequest())
	assert.ErrorIs(t, err, service.ErrUnknownStrategy)
}

func TestPromptStrategyReachableByNameOnly(t *testing.T) {
	prompt := &stubStrategy{name: "sam2-prompt", masks: someMasks(1)}
	auto := &stubStrategy{name: "sam2-automatic", err: errors.New("boom")}
	color := &stubStrategy{name: "color-cluster", err: errors.New("boom")}
	svc := service.NewWithStrategies([]service.Strategy{auto, color}, prompt)

	_, err := svc.Segment(context.Background(), "", testRequest())
	require.Error(t, err)
	assert.Equal(t, 0, prompt.calls, "prompt strategy must not join the fallback chain")

	result, err := svc.Segment(context.Background(), "sam2-prompt", testRequest())
	require.NoError(t, err)
	assert.Equal(t, "sam2-prompt", result.Strategy)
}
