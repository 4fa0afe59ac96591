// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/ufukk37/Business-Finder/pkg/types"
)

// newTestService builds a Service pointed at a test server with pacing
// disabled so tests run instantly.
func newTestService(overpassURL string, w io.Writer) *Service {
	if w == nil {
		w = io.Discard
	}
	return &Service{
		client: &http.Client{},
		cfg: types.SearchConfig{
			HTTPConfig:   types.HTTPConfig{Timeout: 10 * time.Second, UserAgent: "test/0.1"},
			OverpassURL:  overpassURL,
			MaxResults:   500,
			QueryTimeout: 60,
		},
		geo: types.GeocodeConfig{
			HTTPConfig:   types.HTTPConfig{Timeout: 10 * time.Second, UserAgent: "test/0.1"},
			CountryCodes: "tr",
		},
		limiter: rate.NewLimiter(rate.Inf, 1),
		w:       w,
	}
}

// elementsPayload builds an Overpass JSON body with n named nodes
// whose ids start at firstID.
func elementsPayload(t *testing.T, n int, firstID int64) string {
	t.Helper()
	var resp overpassResponse
	for i := 0; i < n; i++ {
		lat, lon := 41.0, 29.0
		resp.Elements = append(resp.Elements, overpassElement{
			Type: "node",
			ID:   firstID + int64(i),
			Lat:  &lat,
			Lon:  &lon,
			Tags: map[string]string{"name": fmt.Sprintf("Business %d", firstID+int64(i))},
		})
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}
	return string(data)
}

// overpassStub records the query text of each request and answers from
// a scripted list of responses.
type overpassStub struct {
	t       *testing.T
	queries []string
	replies []func(w http.ResponseWriter)
}

func (s *overpassStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			s.t.Errorf("parsing form: %v", err)
		}
		n := len(s.queries)
		s.queries = append(s.queries, r.PostFormValue("data"))
		if n >= len(s.replies) {
			s.t.Errorf("unexpected request #%d", n+1)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		s.replies[n](w)
	}
}

func okReply(body string) func(http.ResponseWriter) {
	return func(w http.ResponseWriter) { io.WriteString(w, body) }
}

func failReply(status int) func(http.ResponseWriter) {
	return func(w http.ResponseWriter) { w.WriteHeader(status) }
}

func radiusQuery() SpatialQuery {
	return SpatialQuery{Center: types.Coordinate{Lat: 41.0, Lon: 29.0}, RadiusMeters: 3000}
}

func TestSearchSingleTagNoFallback(t *testing.T) {
	// "eczane" maps to exactly one tag, and 12 unique hits keep the
	// fallback query from running: exactly one request goes out.
	stub := &overpassStub{t: t, replies: []func(http.ResponseWriter){
		okReply(elementsPayload(t, 12, 100)),
	}}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	svc := newTestService(ts.URL, nil)
	results, err := svc.Search(context.Background(), "eczane", radiusQuery(), 500)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 12 {
		t.Errorf("len(results) = %d, want 12", len(results))
	}
	if len(stub.queries) != 1 {
		t.Fatalf("%d requests issued, want 1", len(stub.queries))
	}
	if !strings.Contains(stub.queries[0], `["amenity"="pharmacy"]`) {
		t.Errorf("query = %q, want amenity=pharmacy selector", stub.queries[0])
	}
	if !strings.Contains(stub.queries[0], "(around:3000,41,29)") {
		t.Errorf("query = %q, want radius filter", stub.queries[0])
	}
}

func TestSearchFallbackBelowThreshold(t *testing.T) {
	// Nine unique results after the tag phase is below the threshold
	// of ten, so the name fallback runs once.
	stub := &overpassStub{t: t, replies: []func(http.ResponseWriter){
		okReply(elementsPayload(t, 9, 100)),
		okReply(elementsPayload(t, 3, 900)),
	}}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	svc := newTestService(ts.URL, nil)
	results, err := svc.Search(context.Background(), "eczane", radiusQuery(), 500)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(stub.queries) != 2 {
		t.Fatalf("%d requests issued, want tag query + fallback", len(stub.queries))
	}
	if !strings.Contains(stub.queries[1], `["name"~"eczane",i]`) {
		t.Errorf("second query = %q, want name fallback", stub.queries[1])
	}
	if len(results) != 12 {
		t.Errorf("len(results) = %d, want 12", len(results))
	}
}

func TestSearchNoFallbackAtExactThreshold(t *testing.T) {
	// Exactly ten unique hits from the tag phase never trigger the
	// fallback.
	stub := &overpassStub{t: t, replies: []func(http.ResponseWriter){
		okReply(elementsPayload(t, 10, 100)),
	}}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	svc := newTestService(ts.URL, nil)
	if _, err := svc.Search(context.Background(), "eczane", radiusQuery(), 500); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(stub.queries) != 1 {
		t.Errorf("%d requests issued, want 1 (no fallback at threshold)", len(stub.queries))
	}
}

func TestSearchOnlyFirstTwoTagsQueried(t *testing.T) {
	// "oto" maps to three tags; only the first two may be queried even
	// though they return nothing at all.
	stub := &overpassStub{t: t, replies: []func(http.ResponseWriter){
		okReply(`{"elements":[]}`),
		okReply(`{"elements":[]}`),
		okReply(`{"elements":[]}`), // fallback
	}}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	svc := newTestService(ts.URL, nil)
	if _, err := svc.Search(context.Background(), "oto", radiusQuery(), 500); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(stub.queries) != 3 {
		t.Fatalf("%d requests issued, want 2 tag queries + fallback", len(stub.queries))
	}
	if !strings.Contains(stub.queries[0], `["shop"="car"]`) {
		t.Errorf("first query = %q", stub.queries[0])
	}
	if !strings.Contains(stub.queries[1], `["shop"="car_repair"]`) {
		t.Errorf("second query = %q", stub.queries[1])
	}
	if strings.Contains(stub.queries[2], "car_parts") {
		t.Errorf("third tag must never be queried, got %q", stub.queries[2])
	}
}

func TestSearchDeduplicatesAcrossQueries(t *testing.T) {
	// The same element returned by both tag queries with different
	// attribute snapshots collapses to one record keeping the
	// first-seen attributes.
	lat, lon := 41.0, 29.0
	first := overpassResponse{Elements: []overpassElement{
		{Type: "node", ID: 1, Lat: &lat, Lon: &lon, Tags: map[string]string{"name": "Salon Deniz", "phone": "111"}},
	}}
	second := overpassResponse{Elements: []overpassElement{
		{Type: "node", ID: 1, Lat: &lat, Lon: &lon, Tags: map[string]string{"name": "Salon Deniz Beauty", "phone": "222"}},
	}}
	firstBody, _ := json.Marshal(first)
	secondBody, _ := json.Marshal(second)

	stub := &overpassStub{t: t, replies: []func(http.ResponseWriter){
		okReply(string(firstBody)),
		okReply(string(secondBody)),
		okReply(`{"elements":[]}`), // fallback: one unique is below threshold
	}}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	svc := newTestService(ts.URL, nil)
	results, err := svc.Search(context.Background(), "kuaför", radiusQuery(), 500)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Name != "Salon Deniz" || results[0].Phone != "111" {
		t.Errorf("first-seen attributes must win, got %+v", results[0])
	}
}

func TestSearchTagFailureIsNotFatal(t *testing.T) {
	var warnings strings.Builder
	stub := &overpassStub{t: t, replies: []func(http.ResponseWriter){
		failReply(http.StatusInternalServerError),
		okReply(elementsPayload(t, 11, 100)),
	}}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	svc := newTestService(ts.URL, &warnings)
	results, err := svc.Search(context.Background(), "kuaför", radiusQuery(), 500)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 11 {
		t.Errorf("len(results) = %d, want survivors of the second tag", len(results))
	}
	if !strings.Contains(warnings.String(), "warning") {
		t.Errorf("failed step must be logged, got %q", warnings.String())
	}
}

func TestSearchAllStepsFailDegradesToEmpty(t *testing.T) {
	stub := &overpassStub{t: t, replies: []func(http.ResponseWriter){
		failReply(http.StatusInternalServerError),
		failReply(http.StatusInternalServerError), // fallback
	}}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	svc := newTestService(ts.URL, nil)
	results, err := svc.Search(context.Background(), "eczane", radiusQuery(), 500)
	if err != nil {
		t.Fatalf("external failures must degrade, not abort: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestSearchInvalidInputBeforeNetwork(t *testing.T) {
	stub := &overpassStub{t: t}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	svc := newTestService(ts.URL, nil)

	if _, err := svc.Search(context.Background(), "   ", radiusQuery(), 500); err == nil {
		t.Error("empty category must be rejected")
	}
	if _, err := svc.Search(context.Background(), "eczane", SpatialQuery{RadiusMeters: 10}, 500); err == nil {
		t.Error("out-of-range radius must be rejected")
	}
	if len(stub.queries) != 0 {
		t.Errorf("validation errors must precede any network call, saw %d requests", len(stub.queries))
	}
}

func TestSearchCapAppliedToOutput(t *testing.T) {
	stub := &overpassStub{t: t, replies: []func(http.ResponseWriter){
		okReply(elementsPayload(t, 30, 100)),
	}}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	svc := newTestService(ts.URL, nil)
	results, err := svc.Search(context.Background(), "eczane", radiusQuery(), 25)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 25 {
		t.Errorf("len(results) = %d, want cap 25", len(results))
	}
	if !strings.Contains(stub.queries[0], "out center 25;") {
		t.Errorf("cap must be pushed into the query: %q", stub.queries[0])
	}
}

func TestSearchCancelledContext(t *testing.T) {
	stub := &overpassStub{t: t}
	ts := httptest.NewServer(stub.handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(ts.URL, nil)
	if _, err := svc.Search(ctx, "eczane", radiusQuery(), 500); err == nil {
		t.Error("cancelled search must return an error")
	}
}
