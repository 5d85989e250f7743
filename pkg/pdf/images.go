package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/webp"
)

// ImageFetcher downloads an image and reports its gofpdf type (PNG, JPG or GIF).
// WebP images are converted to PNG.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

// HTTPImageFetcher fetches images over HTTP with a per-request timeout.
type HTTPImageFetcher struct {
	client   *http.Client
	maxBytes int64
}

func NewHTTPImageFetcher(timeout time.Duration) *HTTPImageFetcher {
	return &HTTPImageFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: 15 << 20,
	}
}

func (f *HTTPImageFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, "", err
	}

	data, imageType, err := embeddable(data)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", url, err)
	}
	return data, imageType, nil
}

// embeddable sniffs data and returns it in a format gofpdf can register.
func embeddable(data []byte) ([]byte, string, error) {
	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("image/png"):
		return data, "PNG", nil
	case mtype.Is("image/jpeg"):
		return data, "JPG", nil
	case mtype.Is("image/gif"):
		return data, "GIF", nil
	case mtype.Is("image/webp"):
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("decode webp: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("convert webp: %w", err)
		}
		return buf.Bytes(), "PNG", nil
	}
	return nil, "", fmt.Errorf("unsupported image format %s", mtype.String())
}
