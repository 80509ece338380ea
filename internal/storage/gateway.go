// internal/storage/gateway.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"credit-intake/internal/common/auth"
	commonhttp "credit-intake/internal/common/http"
	"credit-intake/internal/common/logger"
)

// GatewayIssuer obtains presigned credentials from the upload HTTP
// endpoint. Every call carries the session's bearer token.
type GatewayIssuer struct {
	endpoint   string
	tokens     auth.TokenProvider
	httpClient *commonhttp.Client
	logger     logger.Logger
}

type gatewayRequest struct {
	Operation   string `json:"operation,omitempty"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	S3Key       string `json:"s3Key,omitempty"`
}

type gatewayResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		PresignedURL string `json:"presignedUrl"`
		S3Key        string `json:"s3Key"`
		UUID         string `json:"uuid"`
	} `json:"data"`
}

func NewGatewayIssuer(endpoint string, tokens auth.TokenProvider, log logger.Logger) *GatewayIssuer {
	return &GatewayIssuer{
		endpoint:   endpoint,
		tokens:     tokens,
		httpClient: commonhttp.NewClient(30 * time.Second),
		logger:     log.WithFields(map[string]interface{}{"component": "storage-gateway"}),
	}
}

func (g *GatewayIssuer) IssueWrite(ctx context.Context, filename, contentType string) (*WriteCredential, error) {
	resp, err := g.call(ctx, gatewayRequest{
		Filename:    filename,
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}

	if resp.Data.PresignedURL == "" || resp.Data.S3Key == "" {
		return nil, fmt.Errorf("gateway returned an incomplete write credential")
	}

	return &WriteCredential{
		PresignedURL: resp.Data.PresignedURL,
		S3Key:        resp.Data.S3Key,
		UUID:         resp.Data.UUID,
	}, nil
}

func (g *GatewayIssuer) IssueDownload(ctx context.Context, s3Key string) (string, error) {
	resp, err := g.call(ctx, gatewayRequest{
		Operation: "download",
		S3Key:     s3Key,
	})
	if err != nil {
		return "", err
	}

	if resp.Data.PresignedURL == "" {
		return "", fmt.Errorf("gateway returned no download URL")
	}
	return resp.Data.PresignedURL, nil
}

func (g *GatewayIssuer) call(ctx context.Context, payload gatewayRequest) (*gatewayResponse, error) {
	token, err := g.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	httpResp, err := g.httpClient.PostJSON(ctx, g.endpoint, token, payload)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if !commonhttp.IsSuccess(httpResp) {
		raw, _ := io.ReadAll(httpResp.Body)
		return nil, fmt.Errorf("gateway returned status %d: %s", httpResp.StatusCode, string(raw))
	}

	var resp gatewayResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "gateway reported failure"
		}
		return nil, fmt.Errorf("%s", msg)
	}

	return &resp, nil
}
