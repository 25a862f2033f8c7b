package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/waabox/buildboard/internal/domain"
)

// DefaultBaseURL is the publisher frontend API on a local install.
const DefaultBaseURL = "http://localhost:9191/api/"

// Response headers describing an output segment.
const (
	HeaderLines     = "vnd.io.helidon.publisher.lines"
	HeaderRemaining = "vnd.io.helidon.publisher.remaining"
	HeaderPosition  = "vnd.io.helidon.publisher.position"
)

// Client implements domain.PipelineSource over the publisher REST API.
type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// Ensure Client fully implements domain.PipelineSource.
var _ domain.PipelineSource = (*Client)(nil)

// NewClient creates a client for the API rooted at baseURL.
// Pass an empty baseURL to use DefaultBaseURL and a nil logger to discard logs.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.Named("publisher"),
	}
}

// BaseURL returns the API root without trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListPipelines returns one page of pipeline summaries, most recent first.
func (c *Client) ListPipelines(ctx context.Context, page, size int) (domain.PipelinePage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("pagenum", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("numitems", strconv.Itoa(size))
	}
	var result domain.PipelinePage
	if err := c.getJSON(ctx, c.endpoint(q), &result); err != nil {
		return domain.PipelinePage{}, err
	}
	return result, nil
}

// GetPipeline returns a pipeline with its full stage tree.
func (c *Client) GetPipeline(ctx context.Context, id string) (domain.Pipeline, error) {
	var p domain.Pipeline
	if err := c.getJSON(ctx, c.endpoint(nil, id), &p); err != nil {
		return domain.Pipeline{}, err
	}
	return p, nil
}

// GetOutput returns a segment of a step log as plain text.
func (c *Client) GetOutput(ctx context.Context, pipelineID string, stepID int, oq domain.OutputQuery) (domain.Output, error) {
	q := url.Values{}
	if oq.Lines > 0 {
		q.Set("lines", strconv.Itoa(oq.Lines))
	}
	if oq.Position > 0 {
		q.Set("position", strconv.FormatInt(oq.Position, 10))
	}
	if oq.Backward {
		q.Set("backward", "true")
	}
	if oq.LinesOnly {
		q.Set("lines_only", "true")
	}
	resp, err := c.do(ctx, c.endpoint(q, pipelineID, "output", strconv.Itoa(stepID)))
	if err != nil {
		return domain.Output{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Output{}, fmt.Errorf("reading output: %w", err)
	}
	out := domain.Output{Content: string(body)}
	out.Lines, _ = strconv.Atoi(resp.Header.Get(HeaderLines))
	out.Remaining, _ = strconv.ParseInt(resp.Header.Get(HeaderRemaining), 10, 64)
	out.Position, _ = strconv.ParseInt(resp.Header.Get(HeaderPosition), 10, 64)
	return out, nil
}

// GetTests returns the test suites recorded by a stage.
func (c *Client) GetTests(ctx context.Context, pipelineID string, stageID int) ([]domain.TestSuite, error) {
	var result struct {
		Items []domain.TestSuite `json:"items"`
	}
	if err := c.getJSON(ctx, c.endpoint(nil, pipelineID, "tests", strconv.Itoa(stageID)), &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// GetArtifacts returns the artifact tree archived by a stage.
func (c *Client) GetArtifacts(ctx context.Context, pipelineID string, stageID int) ([]domain.Artifact, error) {
	var items []domain.Artifact
	if err := c.getJSON(ctx, c.endpoint(nil, pipelineID, "artifacts", strconv.Itoa(stageID)), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetArtifact returns the content of one artifact file. path is relative to
// the stage artifacts root and may contain slashes.
func (c *Client) GetArtifact(ctx context.Context, pipelineID string, stageID int, path string) (string, error) {
	segments := []string{pipelineID, "artifacts", strconv.Itoa(stageID)}
	for _, s := range strings.Split(strings.Trim(path, "/"), "/") {
		if s == "" || s == "." || s == ".." {
			return "", fmt.Errorf("invalid artifact path %q", path)
		}
		segments = append(segments, s)
	}
	resp, err := c.do(ctx, c.endpoint(nil, segments...))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading artifact: %w", err)
	}
	return string(body), nil
}

// endpoint joins escaped path segments onto the base URL.
func (c *Client) endpoint(q url.Values, segments ...string) string {
	var sb strings.Builder
	sb.WriteString(c.baseURL)
	for _, s := range segments {
		sb.WriteString("/")
		sb.WriteString(url.PathEscape(s))
	}
	if len(segments) == 0 {
		sb.WriteString("/")
	}
	if len(q) > 0 {
		sb.WriteString("?")
		sb.WriteString(q.Encode())
	}
	return sb.String()
}

func (c *Client) getJSON(ctx context.Context, u string, target interface{}) error {
	resp, err := c.do(ctx, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// do issues a GET and maps error statuses. The caller closes the body.
func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.log.Warn("request failed", zap.String("url", u), zap.Error(err))
		return nil, fmt.Errorf("executing request: %w", err)
	}
	c.log.Debug("request",
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("publisher API error: %s: %w", resp.Status, domain.ErrNotFound)
	case resp.StatusCode >= 400:
		resp.Body.Close()
		return nil, fmt.Errorf("publisher API error: %s", resp.Status)
	}
	return resp, nil
}
