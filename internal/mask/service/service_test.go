package service_test

import (
	"context"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	service "github.com/furnishlab/preview-server/internal/mask/service"
	"github.com/furnishlab/preview-server/internal/tracker"
	model "github.com/furnishlab/preview-server/pkg/segment"
)

func newService(t *testing.T, retention time.Duration) (*service.MaskService, *tracker.InMemoryAccessTracker) {
	t.Helper()
	tr := tracker.NewInMemoryAccessTracker()
	svc, err := service.New(t.TempDir(), retention, tr)
	require.NoError(t, err)
	return svc, tr
}

func grayMasks(n int) []model.MaskImage {
	masks := make([]model.MaskImage, n)
	for i := range masks {
		img := image.NewGray(image.Rect(0, 0, 4, 4))
		for p := range img.Pix {
			img.Pix[p] = 255
		}
		masks[i] = model.MaskImage{Image: img, Area: 16}
	}
	return masks
}

func TestSaveMasks(t *testing.T) {
	svc, _ := newService(t, 24*time.Hour)

	saved, err := svc.SaveMasks(context.Background(), "sofa", grayMasks(3))
	require.NoError(t, err)
	require.Len(t, saved, 3)

	for i, m := range saved {
		assert.Equal(t, i+1, m.ID)
		assert.FileExists(t, m.Path)
		assert.Contains(t, m.Filename, "sofa_")
		assert.Contains(t, m.Filename, "_mask_")
	}

	// Two batches from the same base name never collide
	again, err := svc.SaveMasks(context.Background(), "sofa", grayMasks(1))
	require.NoError(t, err)
	assert.NotEqual(t, saved[0].Filename, again[0].Filename)
}

func TestGetFile(t *testing.T) {
	svc, tr := newService(t, 24*time.Hour)

	saved, err := svc.SaveMasks(context.Background(), "chair", grayMasks(1))
	require.NoError(t, err)

	content, err := svc.GetFile(context.Background(), saved[0].Filename)
	require.NoError(t, err)
	defer content.Reader.Close()

	assert.Equal(t, "image/png", content.MimeType)
	data, err := io.ReadAll(content.Reader)
	require.NoError(t, err)
	assert.Equal(t, content.Size, int64(len(data)))

	// Download is recorded for the sweep's grace check
	_, found := tr.GetLastAccessed(saved[0].Filename)
	assert.True(t, found)
}

func TestGetFileNotFound(t *testing.T) {
	svc, _ := newService(t, 24*time.Hour)

	_, err := svc.GetFile(context.Background(), "nope.png")
	assert.ErrorIs(t, err, service.ErrFileNotFound)
}

func TestGetFileRejectsTraversal(t *testing.T) {
	svc, _ := newService(t, 24*time.Hour)

	for _, name := range []string{"../secret.png", "a/b.png", "..", ""} {
		_, err := svc.GetFile(context.Background(), name)
		assert.Error(t, err, "filename %q must be rejected", name)
	}
}

func TestHeadFile(t *testing.T) {
	svc, _ := newService(t, 24*time.Hour)

	saved, err := svc.SaveMasks(context.Background(), "table", grayMasks(1))
	require.NoError(t, err)

	stat, err := svc.HeadFile(context.Background(), saved[0].Filename)
	require.NoError(t, err)
	assert.Equal(t, saved[0].Filename, stat.Name)
	assert.Equal(t, "image/png", stat.Mime)
	assert.Greater(t, stat.Size, int64(0))
}

func TestReclaimExpiredOnly(t *testing.T) {
	svc, _ := newService(t, time.Hour)

	saved, err := svc.SaveMasks(context.Background(), "bed", grayMasks(2))
	require.NoError(t, err)

	// Age the first file past the retention window
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(saved[0].Path, old, old))

	result, err := svc.Reclaim(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Reclaimed, 1)
	assert.Equal(t, saved[0].Filename, result.Reclaimed[0].Name)

	assert.NoFileExists(t, saved[0].Path)
	assert.FileExists(t, saved[1].Path)
}

func TestReclaimSkipsRecentlyServed(t *testing.T) {
	svc, _ := newService(t, time.Hour)

	saved, err := svc.SaveMasks(context.Background(), "desk", grayMasks(1))
	require.NoError(t, err)

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(saved[0].Path, old, old))

	// A fresh download protects the file for the grace period
	content, err := svc.GetFile(context.Background(), saved[0].Filename)
	require.NoError(t, err)
	content.Reader.Close()

	result, err := svc.Reclaim(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Reclaimed)
	assert.FileExists(t, saved[0].Path)
}

func TestReclaimIgnoresDirectories(t *testing.T) {
	tr := tracker.NewInMemoryAccessTracker()
	dir := t.TempDir()
	svc, err := service.New(dir, time.Hour, tr)
	require.NoError(t, err)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(sub, old, old))

	result, err := svc.Reclaim(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Reclaimed)
	assert.DirExists(t, sub)
}
