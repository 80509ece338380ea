// internal/scoring/client.go
package scoring

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	commonerrors "credit-intake/internal/common/errors"
	commonhttp "credit-intake/internal/common/http"
	"credit-intake/internal/common/logger"
)

// Client calls the remote scoring endpoint.
type Client struct {
	endpoint   string
	httpClient *commonhttp.Client
	logger     logger.Logger
}

func NewClient(endpoint string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: commonhttp.NewClient(timeout),
		logger:     log,
	}
}

// GetScore posts the payload with the bearer token and returns the raw
// response body. A non-2xx status is a failure carrying the status text,
// never a parsed result.
func (c *Client) GetScore(ctx context.Context, payload *Payload, token string) ([]byte, error) {
	c.logger.Info("Requesting credit score", map[string]interface{}{
		"endpoint":    c.endpoint,
		"form_fields": len(payload.FormData),
		"files":       len(payload.FileUploads),
	})

	resp, err := c.httpClient.PostJSON(ctx, c.endpoint, token, payload)
	if err != nil {
		return nil, commonerrors.NewScoreRequestError(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, commonerrors.NewScoreRequestError(fmt.Sprintf("read response: %v", err))
	}

	if !commonhttp.IsSuccess(resp) {
		return nil, commonerrors.NewScoreRequestError(fmt.Sprintf("API call failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}
	return raw, nil
}
