package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ytget/photo-feed/internal/model"
	"github.com/ytget/photo-feed/internal/platform"
)

// API constants
const (
	DefaultBaseURL  = "https://api.unsplash.com"
	RandomPath      = "/photos/random"
	SearchPath      = "/search/photos"
	APIVersion      = "v1"
	DefaultPageSize = 30
	MaxPageSize     = 30
)

// Client talks to the Unsplash API
type Client struct {
	http      *http.Client
	baseURL   string
	accessKey string
	pageSize  int
}

// NewClient creates a gateway client. An empty baseURL selects DefaultBaseURL
// and pageSize is clamped to 1..MaxPageSize.
func NewClient(baseURL, accessKey string, pageSize int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:      &http.Client{},
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		pageSize:  clampPageSize(pageSize),
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(client *http.Client) {
	if client != nil {
		c.http = client
	}
}

// PageSize returns the number of photos requested per call
func (c *Client) PageSize() int { return c.pageSize }

// GetRandomPhotos fetches one page of photos. A blank query means random mode.
func (c *Client) GetRandomPhotos(ctx context.Context, query string) ([]model.Photo, error) {
	if strings.TrimSpace(query) != "" {
		return c.searchPhotos(ctx, query)
	}
	return c.randomPhotos(ctx)
}

// randomPhotos requests a random set of photos
func (c *Client) randomPhotos(ctx context.Context) ([]model.Photo, error) {
	qParam := url.Values{}
	qParam.Add("count", strconv.Itoa(c.pageSize))

	var data []unsplashPhoto
	if err := c.get(ctx, RandomPath, qParam, &data); err != nil {
		return nil, err
	}
	return toModels(data), nil
}

// searchPhotos requests the first page of search results for query
func (c *Client) searchPhotos(ctx context.Context, query string) ([]model.Photo, error) {
	qParam := url.Values{}
	qParam.Add("query", query)
	qParam.Add("page", "1")
	qParam.Add("per_page", strconv.Itoa(c.pageSize))

	data := unsplashSearchResult{}
	if err := c.get(ctx, SearchPath, qParam, &data); err != nil {
		return nil, err
	}
	return toModels(data.Results), nil
}

// get performs one GET round trip and decodes the JSON body into out
func (c *Client) get(ctx context.Context, path string, qParam url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + qParam.Encode()

	getReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("(unsplash) Failed to create http request: %v", err)
		return &model.NetworkError{URL: endpoint, Err: err}
	}
	getReq.Header.Set("Accept-Version", APIVersion)
	getReq.Header.Set("Accept-Encoding", platform.AcceptEncoding)
	if c.accessKey != "" {
		getReq.Header.Set("Authorization", "Client-ID "+c.accessKey)
	}

	resp, err := c.http.Do(getReq)
	if err != nil {
		log.Printf("(unsplash) Failed to fetch %s: %v", path, err)
		return &model.NetworkError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		log.Printf("(unsplash) Unexpected status %d for %s", resp.StatusCode, path)
		return &model.NetworkError{URL: endpoint, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	body, err := platform.DecodedBody(resp)
	if err != nil {
		return &model.DecodeError{URL: endpoint, Err: err}
	}
	defer body.Close()

	data, err := platform.ReadBody(ctx, endpoint, body)
	if err != nil {
		log.Printf("(unsplash) Failed to read response of %s: %v", path, err)
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("(unsplash) Failed to decode response: %v", err)
		return &model.DecodeError{URL: endpoint, Err: err}
	}
	return nil
}

func clampPageSize(n int) int {
	if n <= 0 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}
