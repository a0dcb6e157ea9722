// Package crawler retrieves the per-case documents from the auction
// source, extracts typed records from them, and assembles the crawl
// aggregate for one case.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/cenkalti/backoff/v4"

	"github.com/onsia-realty/auction-crawler/caseno"
	"github.com/onsia-realty/auction-crawler/models"
)

// fetchKinds are the documents one crawl fans out to. The statement page
// (매각물건명세서) is resolvable but not consumed by the current pipeline.
var fetchKinds = []DocKind{
	DocDetail, DocProperties, DocSchedule, DocRights, DocTenants, DocDocuments,
}

// Crawler fans out the document fetch+extract pipelines for one case and
// merges their results. Only the case-detail pipeline is mandatory; every
// other failure degrades to an empty collection.
type Crawler struct {
	fetcher *Fetcher
	baseURL string
	courts  map[string]string // court code -> name, injected
}

func New(fetcher *Fetcher, baseURL string, courts map[string]string) *Crawler {
	return &Crawler{fetcher: fetcher, baseURL: baseURL, courts: courts}
}

type docResult struct {
	body string
	err  error
}

// Crawl produces the aggregate for one case, or an error when the case
// number cannot be parsed or the case-detail document cannot be obtained.
func (c *Crawler) Crawl(ctx context.Context, courtCode, rawCaseNo string) (*models.AuctionCrawlData, error) {
	id, ok := caseno.Parse(rawCaseNo)
	if !ok {
		return nil, &IdentifierParseError{Raw: rawCaseNo}
	}

	results := c.fetchAll(ctx, courtCode, id)

	detailRes := results[DocDetail]
	if detailRes.err != nil {
		return nil, fmt.Errorf("case detail: %w", detailRes.err)
	}
	detail, err := ExtractCaseDetail(detailRes.body)
	if err != nil {
		return nil, fmt.Errorf("case detail: %w", err)
	}
	detail.CourtCode = courtCode
	detail.CourtName = c.courts[courtCode]
	if detail.CaseNo == "" {
		detail.CaseNo = id.String()
	}

	data := &models.AuctionCrawlData{Detail: *detail}

	// Optional documents: a court that did not publish one is not a
	// pipeline defect, so failures collapse to empty collections here.
	if body, ok := c.settled(results, DocProperties, rawCaseNo); ok {
		if props, err := ExtractProperties(body); err == nil {
			data.Properties = props
		} else {
			log.Printf("Warning: %s %s: %v", courtCode, rawCaseNo, err)
		}
	}
	if body, ok := c.settled(results, DocSchedule, rawCaseNo); ok {
		if entries, err := ExtractSchedule(body); err == nil {
			data.Schedules = entries
		} else {
			log.Printf("Warning: %s %s: %v", courtCode, rawCaseNo, err)
		}
	}
	if body, ok := c.settled(results, DocRights, rawCaseNo); ok {
		if rights, err := ExtractRights(body); err == nil {
			data.Rights = rights
		} else {
			log.Printf("Warning: %s %s: %v", courtCode, rawCaseNo, err)
		}
	}
	if body, ok := c.settled(results, DocTenants, rawCaseNo); ok {
		if tenants, err := ExtractTenants(body); err == nil {
			data.Tenants = tenants
		} else {
			log.Printf("Warning: %s %s: %v", courtCode, rawCaseNo, err)
		}
	}
	if body, ok := c.settled(results, DocDocuments, rawCaseNo); ok {
		if images, err := ExtractImages(body, c.baseURL); err == nil {
			data.Images = images
		} else {
			log.Printf("Warning: %s %s: %v", courtCode, rawCaseNo, err)
		}
	}

	return data, nil
}

// fetchAll runs every document fetch concurrently and waits for all of
// them to settle into a per-kind result map.
func (c *Crawler) fetchAll(ctx context.Context, courtCode string, id caseno.CaseID) map[DocKind]docResult {
	results := make(map[DocKind]docResult, len(fetchKinds))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, kind := range fetchKinds {
		wg.Add(1)
		go func(kind DocKind) {
			defer wg.Done()
			body, err := c.fetchDoc(ctx, courtCode, id, kind)
			mu.Lock()
			results[kind] = docResult{body: body, err: err}
			mu.Unlock()
		}(kind)
	}
	wg.Wait()

	return results
}

// fetchDoc retrieves one document. The mandatory detail document gets a
// bounded retry on transient transport failures; the fetcher itself stays
// retry-free.
func (c *Crawler) fetchDoc(ctx context.Context, courtCode string, id caseno.CaseID, kind DocKind) (string, error) {
	u := EndpointURL(c.baseURL, courtCode, id, kind)
	if kind != DocDetail {
		return c.fetcher.Fetch(ctx, u)
	}

	var body string
	op := func() error {
		var err error
		body, err = c.fetcher.Fetch(ctx, u)
		if err == nil {
			return nil
		}
		var rerr *RetrievalError
		if errors.As(err, &rerr) && rerr.Transient() {
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return "", err
	}
	return body, nil
}

func (c *Crawler) settled(results map[DocKind]docResult, kind DocKind, caseNo string) (string, bool) {
	res := results[kind]
	if res.err != nil {
		log.Printf("Warning: %s not available for %s: %v", kind, caseNo, res.err)
		return "", false
	}
	return res.body, true
}
