// internal/common/auth/oidc.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"credit-intake/internal/common/errors"
)

// TokenProvider supplies the bearer credential attached to scoring and
// upload-credential requests. An empty token with a nil error never occurs:
// providers either return a usable token or an error.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenProvider wraps an already-issued token, e.g. an id_token the
// hosting application obtained from its own OIDC redirect flow.
type StaticTokenProvider struct {
	token string
}

func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

func (p *StaticTokenProvider) Token(_ context.Context) (string, error) {
	if strings.TrimSpace(p.token) == "" {
		return "", errors.NewAuthTokenMissingError()
	}
	return p.token, nil
}

// OIDCClient fetches bearer tokens from an OIDC token endpoint using the
// client credentials grant (Cognito app-client style). Tokens are cached
// until shortly before expiry.
type OIDCClient struct {
	tokenURL     string
	clientID     string
	clientSecret string
	scope        string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// TokenResponse holds the response from the provider's token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func NewOIDCClient(tokenURL, clientID, clientSecret, scope string) *OIDCClient {
	return &OIDCClient{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		scope:        scope,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *OIDCClient) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tokenExpiry.After(time.Now()) && c.accessToken != "" {
		return c.accessToken, nil
	}

	if err := c.fetchToken(ctx); err != nil {
		return "", errors.NewAuthTokenFetchError(err)
	}
	return c.accessToken, nil
}

func (c *OIDCClient) fetchToken(ctx context.Context) error {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)
	if c.scope != "" {
		data.Set("scope", c.scope)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}

	token := tokenResp.AccessToken
	if token == "" {
		token = tokenResp.IDToken
	}
	if token == "" {
		return fmt.Errorf("token endpoint returned no usable token")
	}

	// Refresh one minute early so in-flight requests never carry an
	// expired credential.
	c.accessToken = token
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - time.Minute)

	return nil
}
