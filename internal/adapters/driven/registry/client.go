package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/histograph/importer/internal/core/domain"
	"github.com/histograph/importer/internal/core/ports/driven"
	"github.com/histograph/importer/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Registry = (*Client)(nil)

const (
	// ForceHeader signals the registry to overwrite existing data.
	ForceHeader = "X-Histograph-Force"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 * 1024
)

// Config holds the registry client configuration.
type Config struct {
	// BaseURL is the registry API base URL.
	BaseURL string

	// Admin and Password are the basic-auth admin credentials.
	Admin    string
	Password string

	// Timeout bounds each request. Zero means no client timeout; a hung
	// request then hangs the run.
	Timeout time.Duration

	// RateLimit throttles requests to this many per second.
	// Zero disables throttling.
	RateLimit float64
}

// Client is the HTTP client for the registry API.
type Client struct {
	client   *http.Client
	base     *url.URL
	admin    string
	password string
	limiter  *rate.Limiter
}

// NewClient creates a registry client from configuration.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		client:   &http.Client{Timeout: cfg.Timeout},
		base:     base,
		admin:    cfg.Admin,
		password: cfg.Password,
		limiter:  limiter,
	}, nil
}

// endpoint builds the authenticated URL for a resource path. Credentials
// are embedded in the userinfo component, re-derived per request because
// the path changes.
func (c *Client) endpoint(parts ...string) string {
	u := *c.base
	u.User = url.UserPassword(c.admin, c.password)
	u.Path = path.Join(append([]string{"/", u.Path}, parts...)...)
	return u.String()
}

// CreateDataset issues the create request with the raw descriptor file
// content as body. 201 and 409 are both success; the returned bool is
// true only for 201.
func (c *Client) CreateDataset(ctx context.Context, descriptor []byte) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("datasets"), bytes.NewReader(descriptor))
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(ctx, req)
	if err != nil {
		return false, err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusCreated:
		return true, nil
	case http.StatusConflict:
		return false, nil
	default:
		return false, parseError(resp)
	}
}

// DeleteDataset issues the delete request. Only 200 is success.
func (c *Client) DeleteDataset(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.endpoint("datasets", id), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return parseError(resp)
	}
	return nil
}

// UploadFile streams one data file as the multipart form field "file".
// The body is piped, not buffered, so large ndjson files never live in
// memory whole. Only 200 is success.
func (c *Client) UploadFile(ctx context.Context, id string, kind domain.FileKind, r io.Reader, force bool) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreatePart(fileHeader(id, kind))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.endpoint("datasets", id, string(kind)), pr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(ForceHeader, strconv.FormatBool(force))

	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return parseError(resp)
	}
	return nil
}

// do waits for the rate limiter and executes the request. Transport
// errors come back wrapped, distinct from API errors.
func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	logger.Debug("%s %s", req.Method, req.URL.Redacted())
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request: %w", err)
	}
	return resp, nil
}

// fileHeader builds the MIME header for the upload form part: field name
// "file", the data file's base name, content-type application/x-ndjson.
func fileHeader(id string, kind domain.FileKind) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s.%s.ndjson"`, id, kind))
	h.Set("Content-Type", "application/x-ndjson")
	return h
}

// errorBody is the registry's JSON error shape.
type errorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// parseError extracts an APIError from a non-success response. The
// message comes from the JSON body's "message" field; a body that is not
// valid JSON is used verbatim.
func parseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return &domain.APIError{
			Status:  resp.StatusCode,
			Message: body.Message,
			Details: body.Details,
		}
	}

	return &domain.APIError{
		Status:  resp.StatusCode,
		Message: string(bytes.TrimSpace(raw)),
	}
}

// drain discards any unread body and closes it so the connection can be
// reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body) //nolint:errcheck // best effort
	resp.Body.Close()
}
