// Package assets loads sprite bitmaps, either rasterised from bundled SVGs or
// fetched over HTTP in the background.
package assets

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
)

//go:embed ant.svg
var antSVG []byte

// SpriteSize is the side of rasterised sprites in pixels
const SpriteSize = 64

// ErrBadAsset is returned for bodies that are neither SVG nor a known bitmap format
var ErrBadAsset = errors.New("unsupported asset")

// Result is a finished load
type Result struct {
	Name  string
	Image image.Image
	Err   error
}

// Loader fetches sprites off the game loop and hands them back on a channel
type Loader struct {
	client  *resty.Client
	size    int
	results chan Result
	wg      sync.WaitGroup
	logger  *zap.Logger
}

// NewLoader creates a loader with a bounded request timeout
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &Loader{
		client:  client,
		size:    SpriteSize,
		results: make(chan Result, 8),
		logger:  logger.Named("assets"),
	}
}

// Results delivers each load exactly once
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Load starts loading name from url. An empty url uses the bundled sprite of
// that name.
func (l *Loader) Load(ctx context.Context, name, url string) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		var (
			img image.Image
			err error
		)
		if url == "" {
			img, err = Bundled(name, l.size)
		} else {
			img, err = l.Fetch(ctx, url)
		}
		if err != nil {
			l.logger.Warn("sprite unavailable", zap.String("sprite", name), zap.String("url", url), zap.Error(err))
		} else {
			l.logger.Debug("sprite loaded", zap.String("sprite", name), zap.String("url", url))
		}

		select {
		case l.results <- Result{Name: name, Image: img, Err: err}:
		case <-ctx.Done():
		}
	}()
}

// Wait blocks until every started load has delivered or been cancelled
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Fetch downloads and decodes one image
func (l *Loader) Fetch(ctx context.Context, url string) (image.Image, error) {
	resp, err := l.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}
	return Decode(resp.Body(), resp.Header().Get("Content-Type"), l.size)
}

// Decode turns an asset body into an image, rasterising SVG at size x size
func Decode(body []byte, contentType string, size int) (image.Image, error) {
	if strings.Contains(contentType, "svg") || isSVG(body) {
		return Rasterize(body, size, size)
	}
	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAsset, err)
	}
	return img, nil
}

func isSVG(body []byte) bool {
	head := body[:min(len(body), 512)]
	return bytes.Contains(head, []byte("<svg"))
}

// Rasterize renders SVG data into an RGBA image
func Rasterize(svg []byte, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAsset, err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// Bundled rasterises an embedded sprite
func Bundled(name string, size int) (image.Image, error) {
	switch name {
	case "ant":
		return Rasterize(antSVG, size, size)
	default:
		return nil, fmt.Errorf("no bundled sprite %q", name)
	}
}
