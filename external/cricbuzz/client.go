package cricbuzz

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/scorecard"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL    = "https://www.cricbuzz.com"
	defaultSeriesPath = "/cricket-series/9351/womens-premier-league-2025/matches"
	defaultUserAgent  = "Mozilla/5.0 (compatible; fantasy-cricket-scraper/1.0)"
	scorecardAPIPath  = "/api/html/cricket-scorecard/"
	profilePath       = "/profiles/"
	maxRedirects      = 3
)

var errCricbuzzTransient = crerr.New("cricbuzz transient failure")

type ClientConfig struct {
	HTTPClient      *fasthttp.Client
	BaseURL         string
	SeriesPath      string
	Timeout         time.Duration
	MaxRetries      int
	Backoff         time.Duration
	MatchPause      time.Duration
	ProfileCacheTTL time.Duration
	Logger          *logging.Logger
	CircuitBreaker  resilience.BreakerConfig
}

// Client fetches and parses Cricbuzz pages. It implements
// usecase.ScorecardSource and player.Directory.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	seriesPath string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	logger     *logging.Logger
	breaker    *resilience.Breaker
	flight     resilience.Flight[[]byte]
	limiter    *rate.Limiter
	names      *cache.Store[string]
}

var (
	_ usecase.ScorecardSource = (*Client)(nil)
	_ player.Directory        = (*Client)(nil)
)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                defaultUserAgent,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	seriesPath := strings.TrimSpace(cfg.SeriesPath)
	if seriesPath == "" {
		seriesPath = defaultSeriesPath
	}

	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = 2 * time.Second
	}

	limit := rate.Inf
	if cfg.MatchPause > 0 {
		limit = rate.Every(cfg.MatchPause)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		seriesPath: seriesPath,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		backoff:    backoff,
		logger:     logger.Named("cricbuzz"),
		breaker:    resilience.NewBreaker(cfg.CircuitBreaker),
		limiter:    rate.NewLimiter(limit, 1),
		names:      cache.NewStore[string](cfg.ProfileCacheTTL),
	}
}

func (c *Client) FetchListing(ctx context.Context) ([]match.Descriptor, error) {
	listingURL := c.absoluteURL(c.seriesPath)
	body, err := c.getPage(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", usecase.ErrListingUnavailable, listingURL, err)
	}

	listing, err := ParseListing(body, c.baseURL)
	if err != nil {
		return nil, err
	}
	for _, item := range listing {
		if item.Date.Equal(match.FallbackDate) {
			c.logger.WarnContext(ctx, "match listing has no usable timestamp, using fallback date", "match_id", item.ID, "title", item.Title)
		}
	}
	c.logger.InfoContext(ctx, "match listing parsed", "url", listingURL, "matches", len(listing))
	return listing, nil
}

// FetchScorecard waits on the politeness limiter before every request so
// consecutive matches are spaced by the configured pause.
func (c *Client) FetchScorecard(ctx context.Context, descriptor match.Descriptor) (scorecard.Scorecard, scorecard.Diagnostics, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return scorecard.Scorecard{}, scorecard.Diagnostics{}, err
	}

	scorecardURL := c.absoluteURL(scorecardAPIPath + descriptor.ID)
	body, err := c.getPage(ctx, scorecardURL)
	if err != nil {
		if ctx.Err() != nil {
			return scorecard.Scorecard{}, scorecard.Diagnostics{}, ctx.Err()
		}
		return scorecard.Scorecard{}, scorecard.Diagnostics{}, fmt.Errorf("%w: match %s: %w", usecase.ErrScorecardUnavailable, descriptor.ID, err)
	}

	return ParseScorecard(descriptor.ID, body, descriptor.Teams)
}

// FetchPlayerOfMatch reads the award from the match page, which shares the
// scorecard path under /cricket-scores/.
func (c *Client) FetchPlayerOfMatch(ctx context.Context, descriptor match.Descriptor) (scorecard.PlayerOfMatch, bool, error) {
	matchURL := strings.Replace(descriptor.ScorecardURL, "/live-cricket-scorecard/", "/cricket-scores/", 1)
	body, err := c.getPage(ctx, c.absoluteURL(matchURL))
	if err != nil {
		return scorecard.PlayerOfMatch{}, false, fmt.Errorf("fetch match page %s: %w", descriptor.ID, err)
	}
	return ParsePlayerOfMatch(descriptor.ID, body)
}

// ResolveName returns the heading of the profile page at profileRef, or
// player.UnresolvedName when the page has none. Results are cached per ref.
func (c *Client) ResolveName(ctx context.Context, profileRef string) (string, error) {
	profileRef = strings.TrimSpace(profileRef)
	if profileRef == "" {
		return "", fmt.Errorf("profile ref is required")
	}

	return c.names.GetOrLoad(ctx, "profile:"+profileRef, func(ctx context.Context) (string, error) {
		body, err := c.getPage(ctx, c.absoluteURL(profileRef))
		if err != nil {
			return "", fmt.Errorf("fetch profile %s: %w", profileRef, err)
		}
		return ParseProfileName(body)
	})
}

func (c *Client) ResolveNameByID(ctx context.Context, playerID string) (string, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return "", fmt.Errorf("player id is required")
	}
	return c.ResolveName(ctx, profilePath+playerID)
}

func (c *Client) CountDotBalls(ctx context.Context, ref string) (int, error) {
	body, err := c.getPage(ctx, c.absoluteURL(ref))
	if err != nil {
		return 0, fmt.Errorf("fetch bowler highlights: %w", err)
	}
	return CountDotBalls(body)
}

func (c *Client) getPage(ctx context.Context, pageURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err, _ := c.flight.Do(pageURL, func() ([]byte, error) {
		var out []byte
		doErr := c.breaker.Do(func() error {
			raw, reqErr := c.executeRequest(ctx, pageURL)
			out = raw
			return reqErr
		}, isCricbuzzCircuitFailure)
		return out, doErr
	})
	if stderrors.Is(err, resilience.ErrBreakerOpen) {
		c.logger.WarnContext(ctx, "cricbuzz breaker rejected request", "state", c.breaker.State(), "url", pageURL)
		return nil, fmt.Errorf("%w: cricbuzz is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return body, err
}

func (c *Client) executeRequest(ctx context.Context, pageURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, status, err := c.doOnce(ctx, pageURL)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errCricbuzzTransient, err)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: status=%d body=%s", errCricbuzzTransient, status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff * time.Duration(1<<attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "cricbuzz request failed", "url", pageURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, pageURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(pageURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "text/html")
	req.Header.SetUserAgent(defaultUserAgent)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	req.SetTimeout(time.Until(deadline))

	if err := c.httpClient.DoRedirects(req, resp, maxRedirects); err != nil {
		return nil, 0, err
	}

	return append([]byte(nil), resp.Body()...), resp.StatusCode(), nil
}

// absoluteURL resolves a site-relative href against the base URL.
func (c *Client) absoluteURL(ref string) string {
	return joinURL(c.baseURL, strings.TrimSpace(ref))
}

func isCricbuzzCircuitFailure(err error) bool {
	return stderrors.Is(err, errCricbuzzTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	text := strings.Join(strings.Fields(string(raw)), " ")
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
