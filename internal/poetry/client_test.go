package poetry

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	c := New(url)
	c.timeout = 200 * time.Millisecond
	return c
}

func TestFetchSuitablePoem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/random" {
			t.Errorf("path = %q, want /random", r.URL.Path)
		}
		fmt.Fprint(w, `[{"title":"Ozymandias","author":"Percy Bysshe Shelley","lines":["I met a traveller from an antique land"],"linecount":"14"}]`)
	}))
	defer srv.Close()

	poem, ok := newTestClient(srv.URL + "/").FetchSuitablePoem(context.Background())
	if !ok {
		t.Fatal("FetchSuitablePoem() found nothing")
	}
	if poem.Title != "Ozymandias" || poem.Author != "Percy Bysshe Shelley" {
		t.Errorf("poem = %+v", poem)
	}
	if poem.LineCount != 14 {
		t.Errorf("LineCount = %d, want 14", poem.LineCount)
	}
	if len(poem.Lines) != 1 {
		t.Errorf("Lines = %v", poem.Lines)
	}
}

func TestFetchSuitablePoemSkipsLongPoems(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 4 {
			fmt.Fprint(w, `[{"title":"Paradise Lost","author":"John Milton","lines":[],"linecount":10565}]`)
			return
		}
		fmt.Fprint(w, `[{"title":"Short","author":"Someone","lines":["one"],"linecount":1}]`)
	}))
	defer srv.Close()

	poem, ok := newTestClient(srv.URL).FetchSuitablePoem(context.Background())
	if !ok {
		t.Fatal("FetchSuitablePoem() found nothing")
	}
	if poem.Title != "Short" {
		t.Errorf("Title = %q, want Short", poem.Title)
	}
	if got := calls.Load(); got != 4 {
		t.Errorf("calls = %d, want 4", got)
	}
}

func TestFetchSuitablePoemBoundary(t *testing.T) {
	tests := []struct {
		name      string
		linecount string
		wantOK    bool
	}{
		{"just under limit", "999", true},
		{"at limit", "1000", false},
		{"float count", "12.0", true},
		{"huge integer", "99999999999999999999", false},
		{"huge exponent", "1e20", false},
		{"beyond float range", `"1e400"`, false},
		{"infinity", `"Infinity"`, false},
		{"not a number", `"NaN"`, false},
		{"negative", "-5", false},
		{"negative float", `"-0.5"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `[{"title":"T","author":"A","lines":["x"],"linecount":%s}]`, tt.linecount)
			}))
			defer srv.Close()

			poem, ok := newTestClient(srv.URL).FetchSuitablePoem(context.Background())
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && poem.LineCount >= 1000 {
				t.Errorf("accepted poem with %d lines", poem.LineCount)
			}
		})
	}
}

func TestFetchSuitablePoemExhaustsAttempts(t *testing.T) {
	responses := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"malformed json": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status":404,"reason":"Not found"`)
		},
		"empty array": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		},
		"bad linecount": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"title":"T","linecount":"many"}]`)
		},
	}

	for name, handler := range responses {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				handler(w, r)
			}))
			defer srv.Close()

			if _, ok := newTestClient(srv.URL).FetchSuitablePoem(context.Background()); ok {
				t.Fatal("FetchSuitablePoem() reported success")
			}
			if got := calls.Load(); got != 20 {
				t.Errorf("calls = %d, want 20", got)
			}
		})
	}
}

func TestFetchSuitablePoemTimeoutCountsAsAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.timeout = 10 * time.Millisecond
	c.maxAttempts = 3

	if _, ok := c.FetchSuitablePoem(context.Background()); ok {
		t.Fatal("FetchSuitablePoem() reported success")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestFetchSuitablePoemDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{}]`)
	}))
	defer srv.Close()

	poem, ok := newTestClient(srv.URL).FetchSuitablePoem(context.Background())
	if !ok {
		t.Fatal("FetchSuitablePoem() found nothing")
	}
	if poem.Title != "Untitled" || poem.Author != "Unknown" || poem.LineCount != 0 {
		t.Errorf("poem = %+v, want defaults", poem)
	}
	if poem.Lines == nil || len(poem.Lines) != 0 {
		t.Errorf("Lines = %#v, want empty slice", poem.Lines)
	}
}

func TestIsReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"title":"T","linecount":"2000"}]`)
	}))
	if !newTestClient(srv.URL).IsReachable(context.Background()) {
		t.Error("IsReachable() = false for a working service")
	}
	srv.Close()

	if newTestClient(srv.URL).IsReachable(context.Background()) {
		t.Error("IsReachable() = true for a closed server")
	}
}

func TestLineCountDecoding(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{`"14"`, 14, false},
		{`14`, 14, false},
		{`"12.0"`, 12, false},
		{`null`, 0, false},
		{`99999999999999999999`, math.MaxInt, false},
		{`"Infinity"`, math.MaxInt, false},
		{`"NaN"`, 0, true},
		{`"-Infinity"`, 0, true},
		{`-3`, 0, true},
		{`"many"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var l lineCount
			err := json.Unmarshal([]byte(tt.raw), &l)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && int(l) != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.raw, l, tt.want)
			}
		})
	}
}
