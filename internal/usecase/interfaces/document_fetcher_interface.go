package interfaces

import "context"

// Document is the body of a fetched document reference.
type Document struct {
	URL         string
	ContentType string
	Body        []byte
}

// IDocumentFetcher retrieves a referenced document (calibration report,
// scrub sheet). Implementations bound every call by a timeout.
type IDocumentFetcher interface {
	Fetch(ctx context.Context, url string) (Document, error)
}
