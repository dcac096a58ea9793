package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobStore struct {
	keys         []string
	contentTypes []string
	data         [][]byte
	err          error
}

func (f *fakeBlobStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.contentTypes = append(f.contentTypes, contentType)
	f.data = append(f.data, data)
	return nil
}

// testPNG renders a solid-color PNG of the given size.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// normalizerForServer returns a normalizer whose client trusts the TLS
// test server's certificate.
func normalizerForServer(server *httptest.Server, store BlobStore) *Normalizer {
	n := NewNormalizer(store, "https://cdn.example.com", time.Second, 0)
	n.client = server.Client()
	return n
}

func TestNormalize_ResizesLargeImage(t *testing.T) {
	body := testPNG(t, 1280, 800)
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer server.Close()

	store := &fakeBlobStore{}
	n := normalizerForServer(server, store)

	desc := n.Normalize(context.Background(), server.URL)
	require.NotNil(t, desc)

	// 1280x800 fits into 640x640 as 640x400, aspect ratio preserved.
	assert.Equal(t, 640, desc.Width)
	assert.Equal(t, 400, desc.Height)
	assert.True(t, strings.HasPrefix(desc.URL, "https://cdn.example.com/images/"))
	assert.True(t, strings.HasSuffix(desc.URL, ".jpg"))

	require.Len(t, store.keys, 1)
	assert.Equal(t, "image/jpeg", store.contentTypes[0])

	// Stored bytes decode as JPEG at the reported dimensions.
	stored, format, err := image.Decode(bytes.NewReader(store.data[0]))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 640, stored.Bounds().Dx())
	assert.Equal(t, 400, stored.Bounds().Dy())
}

func TestNormalize_SmallImageKeepsDimensions(t *testing.T) {
	body := testPNG(t, 320, 200)
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	store := &fakeBlobStore{}
	n := normalizerForServer(server, store)

	desc := n.Normalize(context.Background(), server.URL)
	require.NotNil(t, desc)

	assert.Equal(t, 320, desc.Width)
	assert.Equal(t, 200, desc.Height)
}

func TestNormalize_RejectsNonHTTPS(t *testing.T) {
	store := &fakeBlobStore{}
	n := NewNormalizer(store, "https://cdn.example.com", time.Second, 0)

	assert.Nil(t, n.Normalize(context.Background(), "http://example.com/image.png"))
	assert.Nil(t, n.Normalize(context.Background(), "ftp://example.com/image.png"))
	assert.Empty(t, store.keys, "nothing should be fetched or stored")
}

func TestNormalize_NilOnNonImageBody(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer server.Close()

	store := &fakeBlobStore{}
	n := normalizerForServer(server, store)

	assert.Nil(t, n.Normalize(context.Background(), server.URL))
	assert.Empty(t, store.keys)
}

func TestNormalize_NilOnStoreFailure(t *testing.T) {
	body := testPNG(t, 100, 100)
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	store := &fakeBlobStore{err: errors.New("bucket unavailable")}
	n := normalizerForServer(server, store)

	assert.Nil(t, n.Normalize(context.Background(), server.URL))
}

func TestNormalize_NilOnOversizedBody(t *testing.T) {
	body := testPNG(t, 64, 64)
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	store := &fakeBlobStore{}
	n := normalizerForServer(server, store)
	n.maxSizeBytes = 10 // far below the PNG payload

	assert.Nil(t, n.Normalize(context.Background(), server.URL))
	assert.Empty(t, store.keys)
}

func TestFitWithin(t *testing.T) {
	wide := image.NewRGBA(image.Rect(0, 0, 2000, 500))
	scaled := fitWithin(wide, 640, 640)
	assert.Equal(t, 640, scaled.Bounds().Dx())
	assert.Equal(t, 160, scaled.Bounds().Dy())

	tall := image.NewRGBA(image.Rect(0, 0, 500, 2000))
	scaled = fitWithin(tall, 640, 640)
	assert.Equal(t, 160, scaled.Bounds().Dx())
	assert.Equal(t, 640, scaled.Bounds().Dy())

	small := image.NewRGBA(image.Rect(0, 0, 100, 50))
	assert.Same(t, image.Image(small), fitWithin(small, 640, 640), "images within bounds are untouched")
}
