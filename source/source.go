/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package source reads results and player list text from local files, stdin
// or the web.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/vttc-ratings/internal"
)

// Stdin is the reference that reads from standard input.
const Stdin = "-"

// defaultMaxBody bounds how much of a remote document is read.
const defaultMaxBody = 4 << 20

var (
	ErrNoSelection = errors.New("no element matched selector")
	ErrTooLarge    = errors.New("document exceeds size limit")
)

// Fetcher loads input text. Client is used for http(s) references and
// defaults to http.DefaultClient. For HTML documents the text of the first
// element matching Selector is returned instead of the markup.
type Fetcher struct {
	Client   *http.Client
	Selector string
	Stdin    io.Reader
	// MaxBody limits remote documents; zero means 4 MiB.
	MaxBody int64
}

// New returns a Fetcher using client and selector.
func New(client *http.Client, selector string) *Fetcher {
	return &Fetcher{Client: client, Selector: selector}
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://")
}

// Read returns the text behind ref, which may be a URL, a file path or "-".
func (f *Fetcher) Read(ctx context.Context, ref string) (string, error) {
	switch {
	case ref == "":
		return "", fmt.Errorf("no input given")
	case ref == Stdin:
		in := f.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case isURL(ref):
		return f.Fetch(ctx, ref)
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("failed to read %v: %w", ref, err)
	}
	return string(data), nil
}

// Fetch retrieves url. Plain text bodies are returned as is.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("unable to fetch %v: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	limit := f.MaxBody
	if limit <= 0 {
		limit = defaultMaxBody
	}
	// one byte past the limit tells a full document from an oversized one
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("failed to read %v: %w", url, err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: %v is over %d bytes", ErrTooLarge, url, limit)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "html") {
		return string(data), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse %v: %w", url, err)
	}
	return f.extract(doc)
}

func (f *Fetcher) extract(doc *goquery.Document) (string, error) {
	selector := f.Selector
	if selector == "" {
		selector = internal.DefaultSelector
	}
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w %q", ErrNoSelection, selector)
	}

	// textareas and inputs keep their text in a value attribute when
	// pre-filled by script
	if val, ok := sel.Attr("value"); ok && strings.TrimSpace(sel.Text()) == "" {
		return val, nil
	}
	return sel.Text(), nil
}

// ReadBoth reads the results and player list references concurrently.
func (f *Fetcher) ReadBoth(ctx context.Context, resultsRef string,
	playersRef string) (string, string, error) {

	if resultsRef == Stdin && playersRef == Stdin {
		return "", "", fmt.Errorf("only one input can be read from stdin")
	}

	var results, players string
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		results, err = f.Read(ctx, resultsRef)
		if err != nil {
			return fmt.Errorf("results: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		players, err = f.Read(ctx, playersRef)
		if err != nil {
			return fmt.Errorf("players: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}

	return results, players, nil
}
