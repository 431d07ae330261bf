// Package content fetches and parses the publication list and biography.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/drift/config"
)

// Fallback texts shown when a fetch fails.
const (
	PapersFallback = "Could not load publications."
	IntroFallback  = "Could not load bio."
)

// ErrNotReady is returned by Handle.Result before loading finished.
var ErrNotReady = errors.New("content not loaded yet")

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Resolve joins a relative reference onto base, which is either a
// directory or an http(s) prefix. Absolute references are returned as is.
func Resolve(base, ref string) string {
	if IsRemote(ref) || filepath.IsAbs(ref) {
		return ref
	}
	if IsRemote(base) {
		return strings.TrimRight(base, "/") + "/" + path.Clean(ref)
	}
	return filepath.Join(base, filepath.FromSlash(ref))
}

// Open returns a reader for a local file or http(s) URL.
func Open(ctx context.Context, client *http.Client, ref string) (io.ReadCloser, error) {
	if !IsRemote(ref) {
		f, err := os.Open(ref)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", ref, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", ref, err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: %s", ref, resp.Status)
	}
	return resp.Body, nil
}

// Fetch reads the whole of a local file or http(s) URL.
func Fetch(ctx context.Context, client *http.Client, ref string) ([]byte, error) {
	rc, err := Open(ctx, client, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	return data, nil
}

// Entry is a paper ready for display, with its preview resolved.
type Entry struct {
	Paper
	Key        string // Anchor key of the thumbnail
	PreviewURL string
	Names      []Author
}

// Result holds everything Load produced.
type Result struct {
	Entries []Entry
	Intro   string

	PapersErr error
	IntroErr  error
}

// PapersText returns the fallback text when papers failed to load.
func (r Result) PapersText() string {
	if r.PapersErr != nil {
		return PapersFallback
	}
	return ""
}

// IntroText returns the intro, or the fallback when it failed to load.
func (r Result) IntroText() string {
	if r.IntroErr != nil {
		return IntroFallback
	}
	return r.Intro
}

// Handle is a one-shot completion handle for Load.
type Handle struct {
	done   chan struct{}
	result Result
}

// Done is closed once loading finished, successfully or not.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Result returns the loaded content, or ErrNotReady while loading.
func (h *Handle) Result() (Result, error) {
	select {
	case <-h.done:
		return h.result, nil
	default:
		return Result{}, ErrNotReady
	}
}

// Wait blocks until loading finished or ctx is done.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.done:
		return h.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Load fetches the bibliography and intro concurrently. It returns
// immediately; the handle completes when both fetches finished.
func Load(ctx context.Context, cfg config.ContentConfig, client *http.Client) *Handle {
	h := &Handle{done: make(chan struct{})}

	go func() {
		defer close(h.done)

		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		start := time.Now()
		var g errgroup.Group
		g.Go(func() error {
			entries, err := loadPapers(ctx, cfg, client)
			h.result.Entries, h.result.PapersErr = entries, err
			return err
		})
		g.Go(func() error {
			intro, err := loadIntro(ctx, cfg, client)
			h.result.Intro, h.result.IntroErr = intro, err
			return err
		})
		if err := g.Wait(); err != nil {
			slog.Warn("content load incomplete", "error", err)
		}

		slog.Info("content loaded",
			"papers", len(h.result.Entries),
			"intro", h.result.IntroErr == nil,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}()

	return h
}

func loadPapers(ctx context.Context, cfg config.ContentConfig, client *http.Client) ([]Entry, error) {
	ref := Resolve(cfg.BaseURL, cfg.Bibliography)
	data, err := Fetch(ctx, client, ref)
	if err != nil {
		return nil, err
	}
	slog.Debug("fetched bibliography", "ref", ref, "size", humanize.Bytes(uint64(len(data))))

	papers := ParseBibliography(string(data))
	entries := make([]Entry, len(papers))
	for i, p := range papers {
		preview := cfg.DefaultPreview
		if p.Preview != "" {
			preview = p.Preview
		}
		entries[i] = Entry{
			Paper:      p,
			Key:        fmt.Sprintf("paper-%d", i),
			PreviewURL: Resolve(cfg.BaseURL, path.Join(cfg.ImageDir, preview)),
			Names:      FormatAuthors(p.Authors, cfg.HighlightAuthor),
		}
	}
	return entries, nil
}

func loadIntro(ctx context.Context, cfg config.ContentConfig, client *http.Client) (string, error) {
	ref := Resolve(cfg.BaseURL, cfg.Intro)
	data, err := Fetch(ctx, client, ref)
	if err != nil {
		return "", err
	}
	slog.Debug("fetched intro", "ref", ref, "size", humanize.Bytes(uint64(len(data))))
	return PlainText(string(data)), nil
}
