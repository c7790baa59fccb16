package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/internal/search"
)

func TestHandleRoot(t *testing.T) {
	s := newTestServer(t, testOptions(t))
	_, resp := get(t, s, "/")

	var info RootInfo
	decodeData(t, resp, &info)
	if info.Name != "scriptorium" || info.Version != "test" {
		t.Errorf("root = %+v", info)
	}
	if len(info.Endpoints) != len(endpoints) {
		t.Errorf("len(Endpoints) = %d, want %d", len(info.Endpoints), len(endpoints))
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, testOptions(t))
	_, resp := get(t, s, "/health")

	var health HealthInfo
	decodeData(t, resp, &health)
	if health.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", health.Status)
	}
	if health.Books != 15 {
		t.Errorf("Books = %d, want 15", health.Books)
	}
	if want := bookOfMormon(t).VerseCount(); health.Verses != want {
		t.Errorf("Verses = %d, want %d", health.Verses, want)
	}
}

func TestHandleVerse(t *testing.T) {
	s := newTestServer(t, testOptions(t))

	w, resp := get(t, s, "/verse/0/2/15")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var v VerseResponse
	decodeData(t, resp, &v)
	if v.Text != "And my father dwelt in a tent." {
		t.Errorf("Text = %q", v.Text)
	}
	if v.Citation != "1 Nephi 2:15" {
		t.Errorf("Citation = %q, want 1 Nephi 2:15", v.Citation)
	}
	if want := "https://www.churchofjesuschrist.org/study/scriptures/bofm/1-ne/2?lang=eng&id=p15-p15#p15"; v.URL != want {
		t.Errorf("URL = %q, want %q", v.URL, want)
	}
	if v.Reference != corpus.NewVerseReference(corpus.BookOfMormon, 0, 2, 15) {
		t.Errorf("Reference = %+v", v.Reference)
	}
}

func TestHandleVerseErrors(t *testing.T) {
	s := newTestServer(t, testOptions(t))

	tests := []struct {
		path     string
		wantCode int
		wantErr  string
	}{
		{"/verse/0/99/1", http.StatusNotFound, "NOT_FOUND"},
		{"/verse/0/0/1", http.StatusNotFound, "NOT_FOUND"},
		{"/verse/15/1/1", http.StatusNotFound, "NOT_FOUND"},
		{"/verse/x/1/1", http.StatusBadRequest, "INVALID_PARAMETER"},
		{"/verse/0/1/one", http.StatusBadRequest, "INVALID_PARAMETER"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, resp := get(t, s, tt.path)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if resp.Success || resp.Error == nil || resp.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want %s", resp.Error, tt.wantErr)
			}
		})
	}
}

func TestHandleVerses(t *testing.T) {
	s := newTestServer(t, testOptions(t))

	w, resp := get(t, s, "/verses/"+url.PathEscape("1 Nephi 3:4, 3"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %+v", w.Code, resp.Error)
	}
	var verses []corpus.VerseWithReference
	decodeData(t, resp, &verses)
	if len(verses) != 2 || resp.Meta.Total != 2 {
		t.Fatalf("got %d verses, total %d, want 2", len(verses), resp.Meta.Total)
	}
	// Citation order, not canonical order.
	if verses[0].Reference.Verse != 4 || verses[1].Reference.Verse != 3 {
		t.Errorf("verse order = %d, %d, want 4, 3", verses[0].Reference.Verse, verses[1].Reference.Verse)
	}

	_, resp = get(t, s, "/verses/"+url.PathEscape("1 Nephi 3-5"))
	if resp.Meta.Total != 91 {
		t.Errorf("1 Nephi 3-5 total = %d, want 91", resp.Meta.Total)
	}
}

func TestHandleVersesErrors(t *testing.T) {
	s := newTestServer(t, testOptions(t))

	tests := []struct {
		reference string
		wantCode  int
		wantErr   string
	}{
		{"Foo 1:1", http.StatusBadRequest, "INVALID_REFERENCE"},
		{"Alma 3:1:2", http.StatusBadRequest, "INVALID_REFERENCE"},
		{"Alma 5-5", http.StatusBadRequest, "INVALID_REFERENCE"},
		{"Alma 64", http.StatusNotFound, "NOT_FOUND"},
		{"Alma 63:18", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.reference, func(t *testing.T) {
			w, resp := get(t, s, "/verses/"+url.PathEscape(tt.reference))
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want %s", resp.Error, tt.wantErr)
			}
		})
	}
}

func TestHandleRandom(t *testing.T) {
	s := newTestServer(t, testOptions(t))
	s.intN = func(n int) int { return 20 }

	_, resp := get(t, s, "/verse/random")
	var v VerseResponse
	decodeData(t, resp, &v)
	// 1 Nephi 1 has 20 verses, so position 20 is the first verse of chapter 2.
	if v.Citation != "1 Nephi 2:1" {
		t.Errorf("Citation = %q, want 1 Nephi 2:1", v.Citation)
	}
}

func TestHandleDaily(t *testing.T) {
	s := newTestServer(t, testOptions(t))
	day := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }
	pick := 0
	s.intN = func(n int) int { return pick }

	citationOf := func() string {
		_, resp := get(t, s, "/verse/daily")
		var v VerseResponse
		decodeData(t, resp, &v)
		return v.Citation
	}

	if got := citationOf(); got != "1 Nephi 1:1" {
		t.Fatalf("daily = %q, want 1 Nephi 1:1", got)
	}
	pick = 1
	if got := citationOf(); got != "1 Nephi 1:1" {
		t.Errorf("same day daily = %q, want 1 Nephi 1:1", got)
	}

	day = day.Add(24 * time.Hour)
	if got := citationOf(); got != "1 Nephi 1:2" {
		t.Errorf("next day daily = %q, want 1 Nephi 1:2", got)
	}
}

func TestHandleCanonicalize(t *testing.T) {
	s := newTestServer(t, testOptions(t))

	tests := []struct {
		in        string
		canonical string
		valid     bool
		url       string
	}{
		{"Alma 5; Alma 3", "Alma 3, 5", true, ""},
		{"1 Nephi 3:5, 3-4", "1 Ne. 3:3–5", true, "https://www.churchofjesuschrist.org/study/scriptures/bofm/1-ne/3?lang=eng&id=p3-p5#p3"},
		{"Alma 63:17-18", "Alma 63:17–18", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, resp := get(t, s, "/canonicalize/"+url.PathEscape(tt.in))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %+v", w.Code, resp.Error)
			}
			var got CanonicalResponse
			decodeData(t, resp, &got)
			want := CanonicalResponse{OriginalReference: tt.in, ParsedReference: tt.canonical, IsValid: tt.valid, URL: tt.url}
			if got != want {
				t.Errorf("canonicalize = %+v, want %+v", got, want)
			}
		})
	}

	if s.citations.Len() != len(tests) {
		t.Errorf("citation cache Len() = %d, want %d", s.citations.Len(), len(tests))
	}
	get(t, s, "/canonicalize/"+url.PathEscape("Alma 5; Alma 3"))
	if hits := s.citations.Stats().Hits; hits != 1 {
		t.Errorf("cache hits = %d, want 1", hits)
	}

	w, resp := get(t, s, "/canonicalize/"+url.PathEscape("Nowhere 1"))
	if w.Code != http.StatusBadRequest || resp.Error.Code != "INVALID_REFERENCE" {
		t.Errorf("bad citation: status %d, error %+v", w.Code, resp.Error)
	}
}

func TestHandleSearchRegex(t *testing.T) {
	s := newTestServer(t, testOptions(t))

	w, resp := get(t, s, "/search?q=tent&limit=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var verses []corpus.VerseWithReference
	decodeData(t, resp, &verses)
	if len(verses) != 1 || resp.Meta.Total != 2 {
		t.Errorf("got %d verses, total %d, want 1 and 2", len(verses), resp.Meta.Total)
	}

	_, resp = get(t, s, "/search?q=zarahemla")
	decodeData(t, resp, &verses)
	if len(verses) != 0 || !resp.Success {
		t.Errorf("no match: success %v, %d verses", resp.Success, len(verses))
	}
}

func TestHandleSearchErrors(t *testing.T) {
	s := newTestServer(t, testOptions(t))

	tests := []struct {
		query   string
		wantErr string
	}{
		{"", "INVALID_PARAMETER"},
		{"q=tent&limit=0", "INVALID_PARAMETER"},
		{"q=tent&limit=ten", "INVALID_PARAMETER"},
		{"q=tent&mode=fuzzy", "INVALID_PARAMETER"},
		{"q=tent&mode=fts", "SEARCH_UNAVAILABLE"},
		{"q=" + url.QueryEscape("(tent"), "INVALID_PARAMETER"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w, resp := get(t, s, "/search?"+tt.query)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantErr {
				t.Errorf("error = %+v, want %s", resp.Error, tt.wantErr)
			}
		})
	}
}

func TestHandleSearchFTS(t *testing.T) {
	ctx := context.Background()
	ix, err := search.Open(ctx, "")
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer ix.Close()
	if err := ix.Build(ctx, bookOfMormon(t)); err != nil {
		t.Fatalf("build index: %v", err)
	}

	opts := testOptions(t)
	opts.Index = ix
	s := newTestServer(t, opts)

	// mode defaults to fts when an index is configured
	_, resp := get(t, s, "/search?q="+url.QueryEscape("Laban records"))
	var verses []corpus.VerseWithReference
	decodeData(t, resp, &verses)
	if len(verses) != 1 || !strings.HasPrefix(verses[0].Text, "Wherefore, the Lord hath commanded") {
		t.Errorf("fts search = %+v", verses)
	}

	_, resp = get(t, s, "/search?mode=regex&q="+url.QueryEscape("laban"))
	if resp.Meta.Total != 2 {
		t.Errorf("regex total = %d, want 2", resp.Meta.Total)
	}
}
