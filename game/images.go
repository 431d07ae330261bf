package game

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/semaphore"

	"github.com/pthm-cable/drift/content"
	"github.com/pthm-cable/drift/systems"
)

// ImageSource opens and decodes preview bitmaps.
type ImageSource interface {
	Open(ctx context.Context, url string) (image.Image, error)
}

// FileSource reads local files or http(s) URLs and decodes PNG, JPEG, GIF
// and WebP.
type FileSource struct {
	Client *http.Client
}

// Open implements ImageSource.
func (s FileSource) Open(ctx context.Context, url string) (image.Image, error) {
	rc, err := content.Open(ctx, s.Client, url)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, format, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	slog.Debug("decoded image", "url", url, "format", format, "bounds", img.Bounds().String())
	return img, nil
}

// imageResult is a finished load, successful or not.
type imageResult struct {
	key     string
	url     string
	samples []systems.Sample
	err     error
}

// imageLoader decodes and samples images off the tick goroutine. Results
// are buffered on a channel and drained by the tick.
type imageLoader struct {
	source  ImageSource
	params  systems.SamplerParams
	results chan imageResult
	sem     *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newImageLoader(source ImageSource, params systems.SamplerParams, queueSize, maxConcurrent int) *imageLoader {
	if queueSize < 1 {
		queueSize = 1
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &imageLoader{
		source:  source,
		params:  params,
		results: make(chan imageResult, queueSize),
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// start loads url in a new goroutine. seed comes from the game RNG so the
// sampling stays reproducible for a fixed game seed.
func (l *imageLoader) start(key, url string, seed int64) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.sem.Acquire(l.ctx, 1); err != nil {
			return
		}
		res := l.load(key, url, rand.New(rand.NewSource(seed)))
		l.sem.Release(1)

		select {
		case l.results <- res:
		case <-l.ctx.Done():
		}
	}()
}

func (l *imageLoader) load(key, url string, rng *rand.Rand) imageResult {
	res := imageResult{key: key, url: url}
	img, err := l.source.Open(l.ctx, url)
	if err != nil {
		res.err = err
		return res
	}
	res.samples, res.err = systems.SampleImage(img, l.params, rng)
	return res
}

// drain returns every finished load without blocking.
func (l *imageLoader) drain() []imageResult {
	var out []imageResult
	for {
		select {
		case res := <-l.results:
			out = append(out, res)
		default:
			return out
		}
	}
}

// close stops pending sends. In-flight decodes run to completion.
func (l *imageLoader) close() {
	l.cancel()
}

// wait blocks until every started load finished or was dropped.
func (l *imageLoader) wait() {
	l.wg.Wait()
}
