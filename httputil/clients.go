package httputil

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

type Clients struct {
	Scraping *http.Client // for the auction source, session cookies enabled
	API      *http.Client // direct, for everything else
}

// NewClients builds the shared HTTP clients. The scraping client keeps a
// cookie jar because the source issues a session cookie on first contact
// and serves error pages without one. proxyURL may be empty.
func NewClients(timeout time.Duration, proxyURL string) *Clients {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}

	jar, _ := cookiejar.New(nil)

	scraping := &http.Client{
		Timeout:   timeout,
		Transport: transport,
		Jar:       jar,
	}

	return &Clients{
		Scraping: scraping,
		API:      &http.Client{Timeout: 30 * time.Second},
	}
}
