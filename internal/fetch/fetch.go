package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/h2non/filetype"
)

// XLSXContentType is the media type a server must send for an .xlsx resource.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	defaultUserAgent = "stickview/1.0"
	defaultTimeout   = 30 * time.Second
	// maxBodyBytes caps how much of a response is read; structural sheets are small.
	maxBodyBytes = 64 << 20
	// bodyPreview is how much of an unexpected body is kept for the log.
	bodyPreview = 512
)

var (
	// ErrUnexpectedContentType is returned when a server answers with something other than
	// a spreadsheet, typically an HTML fallback page for a missing file.
	ErrUnexpectedContentType = errors.New("fetch: response is not a spreadsheet")
	// ErrNotSpreadsheet is returned when the bytes are not an xlsx (zip) container.
	ErrNotSpreadsheet = errors.New("fetch: data is not an xlsx container")
)

// StatusError is returned for a non-2xx HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: HTTP error! status %d", e.Code)
}

// ContentTypeError carries the offending content type and the start of the body.
type ContentTypeError struct {
	ContentType string
	Preview     string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("fetch: received %q instead of a spreadsheet", e.ContentType)
}

func (e *ContentTypeError) Unwrap() error {
	return ErrUnexpectedContentType
}

// Options tune a fetch. The zero value uses defaults.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client
}

// Resource is a fetched spreadsheet.
type Resource struct {
	Source      string
	ContentType string
	Data        []byte
}

// IsURL reports whether src is fetched over HTTP rather than read from disk.
func IsURL(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch reads src, an http(s) URL or a local path, and checks it holds a spreadsheet.
func Fetch(ctx context.Context, src string, opts Options) (Resource, error) {
	if IsURL(src) {
		return fetchURL(ctx, src, opts)
	}
	return readFile(src)
}

func fetchURL(ctx context.Context, url string, opts Options) (Resource, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Resource{}, fmt.Errorf("fetch: %w", err)
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", XLSXContentType+", application/octet-stream;q=0.5")
	resp, err := client.Do(req)
	if err != nil {
		return Resource{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Resource{}, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Resource{}, fmt.Errorf("fetch: read body: %w", err)
	}
	ct := resp.Header.Get("Content-Type")
	if !acceptContentType(ct, body) {
		return Resource{}, &ContentTypeError{ContentType: ct, Preview: preview(body)}
	}
	return Resource{Source: url, ContentType: ct, Data: body}, nil
}

// acceptContentType passes the xlsx media type, and a generic binary type only when the
// bytes themselves look like a spreadsheet container.
func acceptContentType(ct string, body []byte) bool {
	ct = strings.ToLower(ct)
	if strings.Contains(ct, XLSXContentType) {
		return true
	}
	if strings.Contains(ct, "application/octet-stream") {
		return sniffSpreadsheet(body)
	}
	return false
}

func readFile(path string) (Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resource{}, fmt.Errorf("fetch: %w", err)
	}
	if !sniffSpreadsheet(data) {
		return Resource{}, fmt.Errorf("%w: %s", ErrNotSpreadsheet, path)
	}
	return Resource{Source: path, ContentType: XLSXContentType, Data: data}, nil
}

// sniffSpreadsheet accepts xlsx and, since not every writer orders zip entries the way
// the xlsx matcher expects, any zip container; the decoder rejects the rest.
func sniffSpreadsheet(data []byte) bool {
	return filetype.Is(data, "xlsx") || filetype.Is(data, "zip")
}

func preview(body []byte) string {
	if len(body) > bodyPreview {
		body = body[:bodyPreview]
	}
	return strings.ToValidUTF8(string(body), "?")
}
