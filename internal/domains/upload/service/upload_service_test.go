package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora-backend/internal/infrastructure/storage"
	"rentora-backend/internal/shared/apperror"
)

type fakeObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: make(map[string][]byte)}
}

func (f *fakeObjectStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return "http://localhost:9000/rentora/" + key, nil
}

func (f *fakeObjectStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestUploadImageStoresOriginalAndVariants(t *testing.T) {
	store := newFakeObjectStorage()
	svc := NewUploadService(store, storage.NewImageProcessor())

	img, err := svc.UploadImage(context.Background(), pngBytes(t, 40, 30))
	require.NoError(t, err)

	assert.Contains(t, img.OriginalURL, "properties/"+img.ID.String()+"/original.png")
	assert.Len(t, img.Variants, 3)
	for _, name := range []string{"large", "medium", "thumbnail"} {
		url, ok := img.Variants[name]
		require.True(t, ok, "missing variant %s", name)
		assert.Contains(t, url, name+".jpg")
	}

	assert.Len(t, store.objects, 4)
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	store := newFakeObjectStorage()
	svc := NewUploadService(store, storage.NewImageProcessor())

	_, err := svc.UploadImage(context.Background(), []byte("definitely not an image"))
	require.Error(t, err)

	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
	assert.Empty(t, store.objects)
}

func TestUploadImageRejectsOversized(t *testing.T) {
	store := newFakeObjectStorage()
	processor := storage.NewImageProcessor()
	processor.MaxSize = 64
	svc := NewUploadService(store, processor)

	_, err := svc.UploadImage(context.Background(), pngBytes(t, 40, 30))
	require.Error(t, err)
	assert.Empty(t, store.objects)
}

func TestUploadImagesFailsOnAnyInvalidFile(t *testing.T) {
	store := newFakeObjectStorage()
	svc := NewUploadService(store, storage.NewImageProcessor())

	files := [][]byte{
		pngBytes(t, 20, 20),
		[]byte("garbage"),
	}

	_, err := svc.UploadImages(context.Background(), files)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "file 2"))
}

func TestDeleteImageRemovesAllVariants(t *testing.T) {
	store := newFakeObjectStorage()
	svc := NewUploadService(store, storage.NewImageProcessor())

	img, err := svc.UploadImage(context.Background(), pngBytes(t, 40, 30))
	require.NoError(t, err)
	require.NotEmpty(t, store.objects)

	require.NoError(t, svc.DeleteImage(context.Background(), img.ID))
	assert.Empty(t, store.objects)
}
