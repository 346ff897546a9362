package network

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient is the live Network. Only status 200 counts as success.
type HTTPClient struct {
	httpClient *http.Client
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{httpClient: &http.Client{Timeout: timeout}}
}

var _ Network = (*HTTPClient)(nil)

func (c *HTTPClient) Send(ctx context.Context, req Request, out any) error {
	u, err := url.Parse(req.URL)
	if err != nil {
		return TransportFailure(err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NonHTTPResponse()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, nil)
	if err != nil {
		return TransportFailure(err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return TransportFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return InvalidStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportFailure(err)
	}
	if err := decodeInto(body, out); err != nil {
		return DecodingFailed(err)
	}
	return nil
}
