package accountsvc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/choreworld/choreworld/internal/domain/member"
	"github.com/choreworld/choreworld/internal/platform/cache"
	"github.com/choreworld/choreworld/internal/platform/logging"
	"github.com/choreworld/choreworld/internal/platform/resilience"
	"github.com/choreworld/choreworld/internal/usecase"
)

// Client resolves bearer tokens against the household account service.
// Introspection results are cached by token hash so chatty UI polling does
// not hammer the account service, and a circuit breaker sheds load while
// the service is down.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	breaker       *resilience.CircuitBreaker
	breakerOn     bool
	principals    *cache.Store
	logger        *logging.Logger
}

func NewClient(
	httpClient *http.Client,
	baseURL string,
	introspectPath string,
	adminKey string,
	breakerCfg resilience.CircuitBreakerConfig,
	cacheTTL time.Duration,
	logger *logging.Logger,
) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	normalized := resilience.NormalizeCircuitBreakerConfig(breakerCfg)

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(baseURL, introspectPath),
		adminKey:      strings.TrimSpace(adminKey),
		breaker:       resilience.NewCircuitBreaker(normalized.FailureThreshold, normalized.OpenTimeout, normalized.ProbeLimit),
		breakerOn:     breakerCfg.Enabled,
		principals:    cache.NewStore(cacheTTL),
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (member.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return member.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := "principal:" + hashToken(token)
	if cached, ok := c.principals.Get(ctx, cacheKey); ok {
		if principal, ok := cached.(member.Principal); ok {
			return principal, nil
		}
	}

	principal, err := c.introspect(ctx, token)
	if err != nil {
		return member.Principal{}, err
	}

	c.principals.Set(ctx, cacheKey, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (member.Principal, error) {
	if c.breakerOn {
		if err := c.breaker.Allow(); err != nil {
			return member.Principal{}, fmt.Errorf("%w: account service circuit open", usecase.ErrDependencyUnavailable)
		}
	}

	principal, err := c.doIntrospect(ctx, token)
	if c.breakerOn {
		if isCircuitFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}

	return principal, err
}

func (c *Client) doIntrospect(ctx context.Context, token string) (member.Principal, error) {
	encoded, err := jsoniter.Marshal(introspectRequest{Token: token})
	if err != nil {
		return member.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return member.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return member.Principal{}, fmt.Errorf("%w: request account introspection: %v", usecase.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return member.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}
	if resp.StatusCode == http.StatusForbidden {
		// 403 means our admin key is rejected, which is a deployment
		// problem rather than a caller problem.
		return member.Principal{}, fmt.Errorf("%w: account service rejected admin key", usecase.ErrDependencyUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return member.Principal{}, fmt.Errorf("read introspect response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "account introspection non-200",
			"status_code", resp.StatusCode,
		)
		return member.Principal{}, fmt.Errorf("%w: account introspection failed with status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var decoded introspectResponse
	if err := jsoniter.Unmarshal(body, &decoded); err != nil {
		return member.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	if !decoded.Active {
		return member.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.MemberID) == "" {
		return member.Principal{}, fmt.Errorf("invalid introspect response: member_id is empty")
	}
	if strings.TrimSpace(decoded.HouseholdID) == "" {
		return member.Principal{}, fmt.Errorf("invalid introspect response: household_id is empty")
	}

	return member.Principal{
		MemberID:    decoded.MemberID,
		HouseholdID: decoded.HouseholdID,
		DisplayName: decoded.DisplayName,
		Privileged:  decoded.Privileged,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active      bool   `json:"active"`
	MemberID    string `json:"member_id"`
	HouseholdID string `json:"household_id"`
	DisplayName string `json:"display_name"`
	Privileged  bool   `json:"privileged"`
}
