package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nerd-math/internal/config"
	"nerd-math/internal/domain"
	"nerd-math/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

// ServiceTokenHeader carries the shared secret between this service and the
// analysis service, in both directions.
const ServiceTokenHeader = "X-Service-Token"

const defaultTimeout = 10 * time.Second

// HTTPClient posts completed diagnostic transcripts to the analysis service.
type HTTPClient struct {
	endpoint     string
	serviceToken string
	httpClient   *http.Client
}

// NewHTTPClient builds the client. When OAuth2 client credentials are configured
// the transport attaches bearer tokens obtained from the token URL.
func NewHTTPClient(cfg config.AnalysisConfig) (*HTTPClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("analysis service URL is not configured")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.OAuth2.ClientID != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.OAuth2.ClientID,
			ClientSecret: cfg.OAuth2.ClientSecret,
			TokenURL:     cfg.OAuth2.TokenURL,
			Scopes:       cfg.OAuth2.Scopes,
		}
		httpClient = cc.Client(context.Background())
		httpClient.Timeout = timeout
	}

	return &HTTPClient{
		endpoint:     strings.TrimRight(cfg.URL, "/") + "/analyze",
		serviceToken: cfg.ServiceToken,
		httpClient:   httpClient,
	}, nil
}

// RequestAnalysis hands req over. Any non-2xx answer is an error; the analysis
// itself arrives later through the callback endpoint.
func (c *HTTPClient) RequestAnalysis(ctx context.Context, req *domain.AnalysisRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode analysis request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build analysis request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.serviceToken != "" {
		httpReq.Header.Set(ServiceTokenHeader, c.serviceToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("analysis request for test %s failed: %w", req.TestID, err)
	}
	defer resp.Body.Close()

	logger.Get().Debug("Analysis service responded",
		zap.String("testId", req.TestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("analysis service returned status %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}
