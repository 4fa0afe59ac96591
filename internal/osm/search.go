// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ufukk37/Business-Finder/internal/httputil"
	"github.com/ufukk37/Business-Finder/pkg/types"
)

// Fixed search policy. Only the first two resolved tags are queried,
// trading breadth for rate-limit headroom, and the name-substring
// fallback runs only when the tag phase yields fewer than ten unique
// businesses. Tests assume these exact values.
const (
	maxTagQueries     = 2
	fallbackThreshold = 10
	minPaceInterval   = time.Second
)

const (
	defaultOverpassURL  = "https://overpass-api.de/api/interpreter"
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	defaultUserAgent    = "Business-Finder/1.0 (business discovery)"
	defaultMaxResults   = 500
	defaultQueryTimeout = 60
)

// Service runs business searches against Overpass and Nominatim. It is
// stateless apart from injected configuration and the pacing limiter,
// so one instance per caller is cheap; the static category mapping is
// read-only and safe for concurrent use.
type Service struct {
	client  *http.Client
	cfg     types.SearchConfig
	geo     types.GeocodeConfig
	limiter *rate.Limiter
	w       io.Writer
}

// NewService builds a search service with defaults filled in for any
// zero-valued configuration. Warnings about skipped query steps are
// written to w.
func NewService(cfg types.SearchConfig, geo types.GeocodeConfig, w io.Writer) *Service {
	if cfg.OverpassURL == "" {
		cfg.OverpassURL = defaultOverpassURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = defaultQueryTimeout
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.PaceInterval < minPaceInterval {
		cfg.PaceInterval = minPaceInterval
	}
	if geo.NominatimURL == "" {
		geo.NominatimURL = defaultNominatimURL
	}
	if geo.UserAgent == "" {
		geo.UserAgent = cfg.UserAgent
	}
	if geo.Timeout <= 0 {
		geo.Timeout = 30 * time.Second
	}
	if geo.CountryCodes == "" {
		geo.CountryCodes = "tr"
	}
	if w == nil {
		w = io.Discard
	}
	return &Service{
		client:  &http.Client{},
		cfg:     cfg,
		geo:     geo,
		limiter: rate.NewLimiter(rate.Every(cfg.PaceInterval), 1),
		w:       w,
	}
}

// Search finds businesses matching the category inside the spatial
// query and returns at most maxResults unique records in first-seen
// order. Tag and fallback query failures degrade the result set but
// never abort the search; only invalid input or cancellation does.
func (s *Service) Search(ctx context.Context, categoryText string, query SpatialQuery, maxResults int) ([]types.Business, error) {
	categoryText = strings.TrimSpace(categoryText)
	if categoryText == "" {
		return nil, fmt.Errorf("category text is empty")
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spatial query: %w", err)
	}
	if maxResults <= 0 {
		maxResults = s.cfg.MaxResults
	}

	filter, err := BuildAreaFilter(query)
	if err != nil {
		return nil, fmt.Errorf("building area filter: %w", err)
	}

	tags := ResolveCategory(categoryText)
	if len(tags) > maxTagQueries {
		tags = tags[:maxTagQueries]
	}

	var found []types.Business
	seen := make(map[string]struct{})

	for _, tag := range tags {
		q := composeTagQuery(tag, filter, maxResults, s.cfg.QueryTimeout)
		businesses, err := s.runOverpassQuery(ctx, q, categoryText)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("search cancelled: %w", ctx.Err())
			}
			fmt.Fprintf(s.w, "warning: tag query %q failed: %v\n", tag, err)
			continue
		}
		for _, b := range businesses {
			found = append(found, b)
			seen[b.PlaceID] = struct{}{}
		}
		fmt.Fprintf(s.w, "tag %q matched %d elements\n", tag, len(businesses))
	}

	if len(seen) < fallbackThreshold {
		q := composeFallbackQuery(categoryText, filter, maxResults, s.cfg.QueryTimeout)
		businesses, err := s.runOverpassQuery(ctx, q, categoryText)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, fmt.Errorf("search cancelled: %w", ctx.Err())
		case err != nil:
			fmt.Fprintf(s.w, "warning: name fallback query failed: %v\n", err)
		default:
			found = append(found, businesses...)
		}
	}

	return Aggregate(found, maxResults), nil
}

// runOverpassQuery paces, posts one Overpass query and normalizes the
// elements of its response. The pacing token is consumed before the
// request, so the delay applies even when the previous call failed.
func (s *Service) runOverpassQuery(ctx context.Context, query, categoryText string) ([]types.Business, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, s.cfg.OverpassURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(callCtx, s.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Overpass returned HTTP %d", resp.StatusCode)
	}

	var or overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, fmt.Errorf("parsing Overpass response: %w", err)
	}

	var businesses []types.Business
	for _, el := range or.Elements {
		if b, ok := normalizeElement(el, categoryText); ok {
			businesses = append(businesses, b)
		}
	}
	return businesses, nil
}
