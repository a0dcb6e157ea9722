package crawler

import "fmt"

// IdentifierParseError reports a case-number string the parser could not
// derive an identifier from. It aborts that case only.
type IdentifierParseError struct {
	Raw string
}

func (e *IdentifierParseError) Error() string {
	return fmt.Sprintf("cannot parse case number %q", e.Raw)
}

// RetrievalError reports a transport failure or a non-success status for
// one document fetch. Status is 0 when the request never completed.
type RetrievalError struct {
	URL    string
	Status int
	Err    error
}

func (e *RetrievalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Transient reports whether a retry could plausibly succeed.
func (e *RetrievalError) Transient() bool {
	return e.Status == 0 || e.Status >= 500
}

// ExtractionError reports a document whose shape could not be parsed.
// Outside the case-detail document it is treated the same as an empty
// result, not surfaced as fatal.
type ExtractionError struct {
	Doc string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Doc, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
