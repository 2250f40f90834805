package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client provides HTTP communication with a voteledger-server.
type Client struct {
	baseURL string
	client  *http.Client
	keyID   string
	secret  string
}

// NewClient creates a client for the given server address. keyID and
// secret are the operator credential; both may be empty for read-only
// use.
func NewClient(server, keyID, secret string) *Client {
	baseURL := server
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		keyID:   keyID,
		secret:  secret,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the base URL of the client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is an error response from the server.
type APIError struct {
	Code    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// WeightResult is the decoded weight query response.
type WeightResult struct {
	Account string `json:"account"`
	Step    uint32 `json:"step"`
	Weight  uint32 `json:"weight"`
}

// CheckpointEntry is one entry of an account's checkpoint log.
type CheckpointEntry struct {
	Step   uint32 `json:"step"`
	Weight uint32 `json:"weight"`
}

// CheckpointsResult is the decoded checkpoint log response.
type CheckpointsResult struct {
	Account     string            `json:"account"`
	Checkpoints []CheckpointEntry `json:"checkpoints"`
}

// TokenResult is the decoded token lookup response.
type TokenResult struct {
	TokenID uint64 `json:"token_id"`
	Owner   string `json:"owner"`
}

// SupplyResult is the decoded supply response.
type SupplyResult struct {
	Supply    uint64 `json:"supply"`
	MaxSupply uint64 `json:"max_supply"`
}

// MintResult is the decoded mint response.
type MintResult struct {
	TokenID   uint64 `json:"token_id"`
	Recipient string `json:"recipient"`
	Step      uint32 `json:"step"`
}

// TransferResult is the decoded transfer response.
type TransferResult struct {
	TokenID uint64 `json:"token_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Step    uint32 `json:"step"`
}

// StepResult is the decoded step advance response.
type StepResult struct {
	Step uint32 `json:"step"`
}

// GCResult is the decoded garbage collection response.
type GCResult struct {
	Success        bool   `json:"success"`
	ReclaimedBytes uint64 `json:"reclaimed_bytes"`
	TriggeredAt    string `json:"triggered_at"`
}

// Health checks the server's liveness endpoint and returns its status
// string.
func (c *Client) Health(ctx context.Context) (string, error) {
	var result struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", &result); err != nil {
		return "", err
	}
	return result.Status, nil
}

// CurrentWeight returns the account's weight at the current step.
func (c *Client) CurrentWeight(ctx context.Context, account string) (*WeightResult, error) {
	var result WeightResult
	if err := c.get(ctx, "/v1/accounts/"+account+"/weight", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// WeightAt returns the account's weight at the given historical step.
func (c *Client) WeightAt(ctx context.Context, account string, step uint32) (*WeightResult, error) {
	var result WeightResult
	path := fmt.Sprintf("/v1/accounts/%s/weight/at?step=%d", account, step)
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Checkpoints returns the account's full checkpoint log.
func (c *Client) Checkpoints(ctx context.Context, account string) (*CheckpointsResult, error) {
	var result CheckpointsResult
	if err := c.get(ctx, "/v1/accounts/"+account+"/checkpoints", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Token looks up a token's current owner.
func (c *Client) Token(ctx context.Context, id uint64) (*TokenResult, error) {
	var result TokenResult
	if err := c.get(ctx, fmt.Sprintf("/v1/tokens/%d", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Supply returns the total and maximum token supply.
func (c *Client) Supply(ctx context.Context) (*SupplyResult, error) {
	var result SupplyResult
	if err := c.get(ctx, "/v1/supply", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Mint creates a token for the recipient. Requires operator
// credentials.
func (c *Client) Mint(ctx context.Context, recipient string) (*MintResult, error) {
	var result MintResult
	body := map[string]string{"recipient": recipient}
	if err := c.post(ctx, "/v1/tokens/mint", body, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Transfer moves a token from its owner to another account. The from
// account is sent as the caller identity.
func (c *Client) Transfer(ctx context.Context, tokenID uint64, from, to string) (*TransferResult, error) {
	var result TransferResult
	body := map[string]string{"to": to}
	headers := map[string]string{"X-Account": from}
	path := fmt.Sprintf("/v1/tokens/%d/transfer", tokenID)
	if err := c.post(ctx, path, body, headers, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AdvanceStep moves the step clock to the given step. Requires
// operator credentials.
func (c *Client) AdvanceStep(ctx context.Context, step uint32) (*StepResult, error) {
	var result StepResult
	body := map[string]uint32{"step": step}
	if err := c.post(ctx, "/admin/v1/step/advance", body, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TickStep advances the step clock by one. Requires operator
// credentials.
func (c *Client) TickStep(ctx context.Context) (*StepResult, error) {
	var result StepResult
	if err := c.post(ctx, "/admin/v1/step/advance", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Status returns the server's status summary. Requires operator
// credentials.
func (c *Client) Status(ctx context.Context) (map[string]any, error) {
	var result map[string]any
	if err := c.get(ctx, "/admin/v1/status/summary", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// TriggerGC runs storage garbage collection. Requires operator
// credentials.
func (c *Client) TriggerGC(ctx context.Context) (*GCResult, error) {
	var result GCResult
	if err := c.post(ctx, "/admin/v1/gc/trigger", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.addHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	return parseEnvelope(resp, target)
}

func (c *Client) post(ctx context.Context, path string, body any, headers map[string]string, target any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.addHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	return parseEnvelope(resp, target)
}

// addHeaders attaches the operator credential and common headers.
func (c *Client) addHeaders(req *http.Request) {
	if c.keyID != "" && c.secret != "" {
		req.Header.Set("X-Operator-Key-ID", c.keyID)
		req.Header.Set("X-Operator-Key", c.secret)
	}
	req.Header.Set("User-Agent", "voteledger-cli/1.0")
}

// parseEnvelope unwraps the server's response envelope into target.
func parseEnvelope(resp *http.Response, target any) error {
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{
				Code:    "UNKNOWN",
				Message: fmt.Sprintf("request failed with status %d", resp.StatusCode),
				Status:  resp.StatusCode,
			}
		}
		return fmt.Errorf("parse response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{
			Code:    env.Code,
			Message: env.Message,
			Status:  resp.StatusCode,
		}
	}

	if target != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, target); err != nil {
			return fmt.Errorf("parse response data: %w", err)
		}
	}
	return nil
}
