package crawler

import (
	"context"
	"io"
	"net/http"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

const maxDocSize = 4 * 1024 * 1024

// Fetcher retrieves and decodes one document page. The source serves
// EUC-KR regardless of what the response headers claim, so decoding always
// goes through the korean codec before any parsing. The fetcher never
// retries; that policy belongs to the caller.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, userAgent: userAgent}
}

// Fetch returns the decoded document text or a *RetrievalError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &RetrievalError{URL: rawURL, Err: err}
	}

	// The source rejects obviously non-browser traffic.
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &RetrievalError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &RetrievalError{URL: rawURL, Status: resp.StatusCode}
	}

	decoded := transform.NewReader(io.LimitReader(resp.Body, maxDocSize), korean.EUCKR.NewDecoder())
	body, err := io.ReadAll(decoded)
	if err != nil {
		return "", &RetrievalError{URL: rawURL, Status: resp.StatusCode, Err: err}
	}

	return string(body), nil
}
