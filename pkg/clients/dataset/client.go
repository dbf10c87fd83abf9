package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client downloads the inventory dataset from a remote source.
type Client interface {
	Download(ctx context.Context, dest string) error
}

// HTTPClient is a resty-backed implementation of Client.
type HTTPClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a dataset download client for the given URL.
func NewClient(url string) *HTTPClient {
	restyClient := resty.New()
	restyClient.SetTimeout(60 * time.Second)

	return &HTTPClient{
		httpClient: restyClient,
		url:        url,
	}
}

// Download fetches the dataset file and writes it to dest.
func (c *HTTPClient) Download(ctx context.Context, dest string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetOutput(dest).
		Get(c.url)
	if err != nil {
		return fmt.Errorf("download dataset from %s: %w", c.url, err)
	}
	if resp.IsError() {
		return fmt.Errorf("download dataset from %s: unexpected status %s", c.url, resp.Status())
	}
	return nil
}
