// Package documents retrieves document references attached to work orders:
// s3://bucket/key objects through the AWS SDK and http(s) links through a
// bounded HTTP GET.
package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"adas_workorders/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 5 << 20
)

var (
	ErrUnsupportedReference = errors.New("unsupported document reference")
	ErrDocumentTooLarge     = errors.New("document exceeds size limit")
)

// S3API is the subset of the S3 client the fetcher uses.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Config struct {
	Timeout  time.Duration
	MaxBytes int64
	// Mock accepts every reference without contacting the origin.
	Mock bool
}

type Fetcher struct {
	http     *http.Client
	s3       S3API
	timeout  time.Duration
	maxBytes int64
	mock     bool
	logger   *zap.Logger
}

var _ interfaces.IDocumentFetcher = (*Fetcher)(nil)

// NewFetcher builds a fetcher. s3Client may be nil, in which case s3://
// references are rejected.
func NewFetcher(cfg Config, httpClient *http.Client, s3Client S3API, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		http:     httpClient,
		s3:       s3Client,
		timeout:  cfg.Timeout,
		maxBytes: cfg.MaxBytes,
		mock:     cfg.Mock,
		logger:   logger,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, ref string) (interfaces.Document, error) {
	ref = strings.TrimSpace(ref)
	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" {
		return interfaces.Document{}, fmt.Errorf("%w: %q", ErrUnsupportedReference, ref)
	}
	if f.mock {
		f.logger.Debug("[documents][fetcher] mock mode; skipping fetch", zap.String("url", ref))
		return interfaces.Document{URL: ref}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	switch strings.ToLower(u.Scheme) {
	case "s3":
		return f.fetchS3(ctx, ref, u)
	case "http", "https":
		return f.fetchHTTP(ctx, ref)
	}
	return interfaces.Document{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedReference, u.Scheme)
}

func (f *Fetcher) fetchHTTP(ctx context.Context, ref string) (interfaces.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return interfaces.Document{}, err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return interfaces.Document{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return interfaces.Document{}, fmt.Errorf("fetch %s: unexpected status %d", ref, resp.StatusCode)
	}
	body, err := f.readLimited(resp.Body)
	if err != nil {
		return interfaces.Document{}, err
	}
	f.logger.Debug("[documents][fetcher] http document fetched", zap.String("url", ref), zap.Int("bytes", len(body)))
	return interfaces.Document{URL: ref, ContentType: resp.Header.Get("Content-Type"), Body: body}, nil
}

func (f *Fetcher) fetchS3(ctx context.Context, ref string, u *url.URL) (interfaces.Document, error) {
	if f.s3 == nil {
		return interfaces.Document{}, fmt.Errorf("%w: s3 client not configured", ErrUnsupportedReference)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return interfaces.Document{}, fmt.Errorf("%w: %q", ErrUnsupportedReference, ref)
	}
	out, err := f.s3.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return interfaces.Document{}, fmt.Errorf("get s3 object: %w", err)
	}
	defer func() { _ = out.Body.Close() }()
	body, err := f.readLimited(out.Body)
	if err != nil {
		return interfaces.Document{}, err
	}
	f.logger.Debug("[documents][fetcher] s3 document fetched",
		zap.String("bucket", bucket), zap.String("key", key), zap.Int("bytes", len(body)))
	return interfaces.Document{URL: ref, ContentType: aws.ToString(out.ContentType), Body: body}, nil
}

func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBytes {
		return nil, ErrDocumentTooLarge
	}
	return body, nil
}
