package fetch

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrNoContent is returned when a job page yields no usable text
var ErrNoContent = errors.New("no job description text found")

// JobFetcher turns job posting URLs into plain job description text
type JobFetcher struct {
	Options *Options
	// UseBrowser enables the headless Chrome fallback for pages that render client side
	UseBrowser     bool
	BrowserTimeout time.Duration

	render func(ctx context.Context, url string, timeout time.Duration) (string, error)
}

// NewJobFetcher creates a fetcher; opts may be nil for defaults
func NewJobFetcher(opts *Options, useBrowser bool) *JobFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JobFetcher{
		Options:        opts,
		UseBrowser:     useBrowser,
		BrowserTimeout: 45 * time.Second,
		render:         WithBrowser,
	}
}

// JobDescription fetches url and extracts the posting text with platform-specific selectors.
// When the text looks too short and the browser is enabled, the page is rendered in
// headless Chrome and the longer of the two extractions wins.
func (f *JobFetcher) JobDescription(ctx context.Context, url string) (string, error) {
	platform := DetectPlatform(url)
	contentSelectors := PlatformContentSelectors(platform)
	noiseSelectors := PlatformNoiseSelectors(platform)
	logger := log.With().Str("url", url).Str("platform", string(platform)).Logger()

	result, err := URL(ctx, url, f.Options)
	if err != nil {
		return "", errors.WithStack(err)
	}
	logger.Debug().Int("bytes", len(result.HTML)).Msg("fetched job page")

	text, err := ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if ShouldUseBrowser(text) && f.UseBrowser && f.render != nil {
		logger.Info().Int("chars", len(text)).Msg("job text too short, rendering with browser")
		html, rerr := f.render(ctx, url, f.BrowserTimeout)
		if rerr != nil {
			logger.Warn().Err(rerr).Msg("browser fallback failed, keeping HTTP result")
		} else if rendered, xerr := ExtractMainText(html, contentSelectors, noiseSelectors...); xerr == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	if text == "" {
		return "", errors.Wrapf(ErrNoContent, "fetch %s", url)
	}
	logger.Debug().Int("chars", len(text)).Msg("extracted job description")
	return text, nil
}
