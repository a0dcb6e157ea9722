package crawler

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// ExtractImages collects photo and scan URLs from the photo-list
// document, resolved against the source base URL so stored references are
// always absolute.
func ExtractImages(html, baseURL string) ([]string, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, &ExtractionError{Doc: "documents", Err: err}
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &ExtractionError{Doc: "documents", Err: err}
	}

	var urls []string
	seen := make(map[string]bool)
	doc.Find("div.photo_area img, ul.photo_list img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return
		}
		ref, err := url.Parse(src)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()
		if !seen[abs] {
			seen[abs] = true
			urls = append(urls, abs)
		}
	})
	return urls, nil
}
