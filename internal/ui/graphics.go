package ui

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/qeesung/image2ascii/convert"

	"foodctl/internal/food"
)

const (
	defaultPreviewCacheSize = 64
	maxPreviewBytes         = 8 << 20
)

// ImagePreviewer fetches image references and renders them as ASCII art.
type ImagePreviewer struct {
	baseURL    string
	httpClient *http.Client
	cache      *lru.Cache[string, string]
	logger     *slog.Logger

	mu       sync.Mutex
	requests map[string]int
}

// NewImagePreviewer creates a previewer. Relative references resolve against baseURL.
func NewImagePreviewer(baseURL string, timeout time.Duration, cacheSize int, logger *slog.Logger) (*ImagePreviewer, error) {
	if cacheSize <= 0 {
		cacheSize = defaultPreviewCacheSize
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview cache: %w", err)
	}
	return &ImagePreviewer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		logger:     logger.With("component", "preview"),
		requests:   make(map[string]int),
	}, nil
}

// ResolveURL turns a reference into a fetchable URL.
func (p *ImagePreviewer) ResolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return p.baseURL + "/" + strings.TrimLeft(ref, "/")
}

// Preview renders ref at width x height. A blank ref uses the fallback for class. When the
// reference fails to load, the fallback is requested once; if that fails too the error is
// returned and nothing more is fetched.
func (p *ImagePreviewer) Preview(ctx context.Context, ref string, class food.ImageClass, width, height int) (string, error) {
	resolved := food.ResolveImage(ref, class)
	cacheKey := fmt.Sprintf("%s@%dx%d", resolved, width, height)
	if art, ok := p.cache.Get(cacheKey); ok {
		return art, nil
	}

	img, err := p.fetch(ctx, resolved)
	if err != nil {
		fallback := food.Fallback(class)
		if resolved == fallback {
			return "", err
		}
		p.logger.Debug("image failed, using fallback", "ref", resolved, "error", err)
		img, err = p.fetch(ctx, fallback)
		if err != nil {
			return "", fmt.Errorf("fallback image failed: %w", err)
		}
	}

	art := convertToASCII(img, width, height)
	p.cache.Add(cacheKey, art)
	return art, nil
}

// Requests reports how many times ref was fetched.
func (p *ImagePreviewer) Requests(ref string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests[p.ResolveURL(ref)]
}

func (p *ImagePreviewer) fetch(ctx context.Context, ref string) (image.Image, error) {
	url := p.ResolveURL(ref)

	p.mu.Lock()
	p.requests[url]++
	p.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image %s: status %d", ref, resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxPreviewBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", ref, err)
	}
	return img, nil
}

// convertToASCII converts an image to colored ASCII art.
func convertToASCII(img image.Image, targetWidth, targetHeight int) string {
	converter := convert.NewImageConverter()

	opts := convert.DefaultOptions
	opts.FixedWidth = targetWidth
	opts.FixedHeight = targetHeight
	opts.Colored = true
	opts.Ratio = 0.5

	return converter.Image2ASCIIString(img, &opts)
}
