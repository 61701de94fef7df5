/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikeb26/vttc-ratings/internal"
)

const resultsText = "Alice(3),3,Bob(3),1\nCarol(4),2,Dave(4),3\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/results.txt", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != internal.UserAgent {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, resultsText)
	})
	mux.HandleFunc("/results.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "<html><body><h1>Monday</h1><pre>%s</pre>"+
			"<pre id=\"players\">1,Alice(3),1500,</pre></body></html>", resultsText)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		path     string
		selector string
		want     string
		wantErr  bool
	}{
		{name: "plain text", path: "/results.txt", want: resultsText},
		{name: "html default selector", path: "/results.html", want: resultsText},
		{name: "html id selector", path: "/results.html", selector: "#players",
			want: "1,Alice(3),1500,"},
		{name: "html no match", path: "/results.html", selector: "textarea",
			wantErr: true},
		{name: "not found", path: "/missing", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := New(srv.Client(), tc.selector)
			got, err := f.Fetch(ctx, srv.URL+tc.path)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q; want %q", got, tc.want)
			}
		})
	}
}

func TestFetchNoSelection(t *testing.T) {
	srv := newTestServer(t)
	f := New(srv.Client(), "table")
	_, err := f.Fetch(context.Background(), srv.URL+"/results.html")
	if !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v; want ErrNoSelection", err)
	}
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	f := New(srv.Client(), "")
	f.MaxBody = int64(len(resultsText))
	got, err := f.Fetch(ctx, srv.URL+"/results.txt")
	if err != nil || got != resultsText {
		t.Errorf("body at the limit: got %q, %v", got, err)
	}

	f.MaxBody = int64(len(resultsText)) - 1
	if _, err := f.Fetch(ctx, srv.URL+"/results.txt"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v; want ErrTooLarge", err)
	}
	if _, err := f.Fetch(ctx, srv.URL+"/results.html"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("html err = %v; want ErrTooLarge", err)
	}
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.txt")
	if err := os.WriteFile(path, []byte("1,Alice(3),1500,\n"), 0o600); err != nil {
		t.Fatalf("writing players: %v", err)
	}
	f := &Fetcher{Stdin: strings.NewReader("from stdin")}
	ctx := context.Background()

	got, err := f.Read(ctx, path)
	if err != nil || got != "1,Alice(3),1500,\n" {
		t.Errorf("Read(file) = %q, %v", got, err)
	}
	got, err = f.Read(ctx, Stdin)
	if err != nil || got != "from stdin" {
		t.Errorf("Read(stdin) = %q, %v", got, err)
	}
	if _, err := f.Read(ctx, filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Errorf("expected error for missing file")
	}
	if _, err := f.Read(ctx, ""); err == nil {
		t.Errorf("expected error for empty reference")
	}
}

func TestReadBoth(t *testing.T) {
	srv := newTestServer(t)
	path := filepath.Join(t.TempDir(), "players.txt")
	if err := os.WriteFile(path, []byte("1,Alice(3),1500,\n"), 0o600); err != nil {
		t.Fatalf("writing players: %v", err)
	}
	f := New(srv.Client(), "")
	ctx := context.Background()

	results, players, err := f.ReadBoth(ctx, srv.URL+"/results.txt", path)
	if err != nil {
		t.Fatalf("ReadBoth: %v", err)
	}
	if results != resultsText || players != "1,Alice(3),1500,\n" {
		t.Errorf("ReadBoth = %q, %q", results, players)
	}

	_, _, err = f.ReadBoth(ctx, srv.URL+"/missing", path)
	if err == nil || !strings.HasPrefix(err.Error(), "results: ") {
		t.Errorf("err = %v; want results error", err)
	}

	if _, _, err := f.ReadBoth(ctx, Stdin, Stdin); err == nil {
		t.Errorf("expected error when both inputs use stdin")
	}
}
