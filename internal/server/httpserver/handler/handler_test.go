package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yndnr/voteledger-go/internal/core/domain"
	"github.com/yndnr/voteledger-go/internal/core/service"
	"github.com/yndnr/voteledger-go/internal/server/httpserver"
	"github.com/yndnr/voteledger-go/internal/server/httpserver/handler"
	"github.com/yndnr/voteledger-go/internal/storage"
	"github.com/yndnr/voteledger-go/internal/storage/memory"
	"github.com/yndnr/voteledger-go/internal/telemetry/metric"
)

// testServer bundles the API under test with an operator credential.
type testServer struct {
	*httptest.Server
	keyID  string
	secret string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := memory.New()
	t.Cleanup(func() { kv.Close() })

	checkpoints := storage.NewCheckpointStore(kv, logger)
	weights := service.NewWeightService(checkpoints, logger)
	tokens := service.NewTokenService(kv, storage.NewTokenStore(kv), weights,
		&service.TokenServiceConfig{MaxSupply: 100}, logger)
	clock := storage.NewStepClock(kv)

	key, secret, err := domain.GenerateOperatorKey("test")
	if err != nil {
		t.Fatalf("GenerateOperatorKey failed: %v", err)
	}
	auth := service.NewAuthService([]*domain.OperatorKey{key}, logger)

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		WeightService: weights,
		TokenService:  tokens,
		AuthService:   auth,
		StepClock:     clock,
		KV:            kv,
		Metrics:       metric.NewRegistry(),
		Logger:        logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, keyID: key.KeyID, secret: secret}
}

// do issues a request and decodes the envelope. asOperator attaches
// the operator credential headers.
func (s *testServer) do(t *testing.T, method, path string, body any, asOperator bool) (int, *handler.Response) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if asOperator {
		req.Header.Set("X-Operator-Key-ID", s.keyID)
		req.Header.Set("X-Operator-Key", s.secret)
	}

	resp, err := s.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var envelope handler.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	return resp.StatusCode, &envelope
}

// data re-decodes the envelope's data field into out.
func decodeData(t *testing.T, envelope *handler.Response, out any) {
	t.Helper()
	buf, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func (s *testServer) advanceStep(t *testing.T, step uint32) {
	t.Helper()
	status, _ := s.do(t, http.MethodPost, "/admin/v1/step/advance", handler.StepAdvanceRequest{Step: step}, true)
	if status != http.StatusOK {
		t.Fatalf("step advance to %d: status %d", step, status)
	}
}

func (s *testServer) mint(t *testing.T, recipient string) uint64 {
	t.Helper()
	status, envelope := s.do(t, http.MethodPost, "/v1/tokens/mint", handler.MintRequest{Recipient: recipient}, true)
	if status != http.StatusCreated {
		t.Fatalf("mint for %s: status %d, code %s", recipient, status, envelope.Code)
	}
	var minted handler.MintResponse
	decodeData(t, envelope, &minted)
	return minted.TokenID
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/ready"} {
		status, envelope := srv.do(t, http.MethodGet, path, nil, false)
		if status != http.StatusOK {
			t.Errorf("GET %s: status %d, want 200", path, status)
		}
		if envelope.Code != "OK" {
			t.Errorf("GET %s: code %q, want OK", path, envelope.Code)
		}
		if envelope.RequestID == "" {
			t.Errorf("GET %s: missing request ID", path)
		}
	}
}

func TestWeightNoHistory(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := srv.do(t, http.MethodGet, "/v1/accounts/alice/weight", nil, false)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var weight handler.WeightResponse
	decodeData(t, envelope, &weight)
	if weight.Weight != 0 {
		t.Errorf("weight = %d, want 0", weight.Weight)
	}
	if weight.Account != "alice" {
		t.Errorf("account = %q, want alice", weight.Account)
	}
}

func TestMintRequiresOperatorKey(t *testing.T) {
	srv := newTestServer(t)

	status, _ := srv.do(t, http.MethodPost, "/v1/tokens/mint", handler.MintRequest{Recipient: "alice"}, false)
	if status != http.StatusUnauthorized {
		t.Errorf("unauthenticated mint: status %d, want 401", status)
	}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/v1/tokens/mint", bytes.NewReader([]byte(`{"recipient":"alice"}`)))
	req.Header.Set("X-Operator-Key-ID", srv.keyID)
	req.Header.Set("X-Operator-Key", "vlos_not_the_secret")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("mint with bad secret: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad secret mint: status %d, want 401", resp.StatusCode)
	}
}

func TestMintAndQueryWeight(t *testing.T) {
	srv := newTestServer(t)
	srv.advanceStep(t, 1)

	id := srv.mint(t, "alice")
	if id != 1 {
		t.Errorf("first token ID = %d, want 1", id)
	}

	status, envelope := srv.do(t, http.MethodGet, "/v1/accounts/alice/weight", nil, false)
	if status != http.StatusOK {
		t.Fatalf("weight query: status %d", status)
	}
	var weight handler.WeightResponse
	decodeData(t, envelope, &weight)
	if weight.Weight != 1 {
		t.Errorf("weight = %d, want 1", weight.Weight)
	}

	status, envelope = srv.do(t, http.MethodGet, "/v1/tokens/1", nil, false)
	if status != http.StatusOK {
		t.Fatalf("token query: status %d", status)
	}
	var token handler.TokenResponse
	decodeData(t, envelope, &token)
	if token.Owner != "alice" {
		t.Errorf("owner = %q, want alice", token.Owner)
	}

	status, envelope = srv.do(t, http.MethodGet, "/v1/supply", nil, false)
	if status != http.StatusOK {
		t.Fatalf("supply query: status %d", status)
	}
	var supply handler.SupplyResponse
	decodeData(t, envelope, &supply)
	if supply.Supply != 1 {
		t.Errorf("supply = %d, want 1", supply.Supply)
	}
	if supply.MaxSupply != 100 {
		t.Errorf("max supply = %d, want 100", supply.MaxSupply)
	}
}

func TestMintValidation(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := srv.do(t, http.MethodPost, "/v1/tokens/mint", handler.MintRequest{}, true)
	if status != http.StatusBadRequest {
		t.Errorf("empty recipient: status %d, want 400", status)
	}
	if envelope.Code != domain.ErrInvalidArgument.Code {
		t.Errorf("empty recipient: code %q, want %q", envelope.Code, domain.ErrInvalidArgument.Code)
	}

	status, _ = srv.do(t, http.MethodPost, "/v1/tokens/mint", handler.MintRequest{Recipient: "has space"}, true)
	if status != http.StatusBadRequest {
		t.Errorf("invalid recipient: status %d, want 400", status)
	}
}

func TestTransferFlow(t *testing.T) {
	srv := newTestServer(t)
	srv.advanceStep(t, 1)
	srv.mint(t, "alice")
	srv.advanceStep(t, 2)

	status, envelope := srv.do(t, http.MethodPost, "/v1/tokens/1/transfer",
		handler.TransferRequest{From: "alice", To: "bob"}, false)
	if status != http.StatusOK {
		t.Fatalf("transfer: status %d, code %s", status, envelope.Code)
	}
	var transfer handler.TransferResponse
	decodeData(t, envelope, &transfer)
	if transfer.From != "alice" || transfer.To != "bob" || transfer.Step != 2 {
		t.Errorf("transfer = %+v, want alice->bob at step 2", transfer)
	}

	// Ownership and weights follow the transfer.
	status, envelope = srv.do(t, http.MethodGet, "/v1/tokens/1", nil, false)
	if status != http.StatusOK {
		t.Fatalf("token query: status %d", status)
	}
	var token handler.TokenResponse
	decodeData(t, envelope, &token)
	if token.Owner != "bob" {
		t.Errorf("owner after transfer = %q, want bob", token.Owner)
	}

	// Historical query: alice still held the token at step 1.
	status, envelope = srv.do(t, http.MethodGet, "/v1/accounts/alice/weight/at?step=1", nil, false)
	if status != http.StatusOK {
		t.Fatalf("weight at: status %d", status)
	}
	var weight handler.WeightResponse
	decodeData(t, envelope, &weight)
	if weight.Weight != 1 {
		t.Errorf("alice weight at step 1 = %d, want 1", weight.Weight)
	}

	status, envelope = srv.do(t, http.MethodGet, "/v1/accounts/alice/weight/at?step=2", nil, false)
	if status != http.StatusOK {
		t.Fatalf("weight at: status %d", status)
	}
	decodeData(t, envelope, &weight)
	if weight.Weight != 0 {
		t.Errorf("alice weight at step 2 = %d, want 0", weight.Weight)
	}
}

func TestTransferCallerFromHeader(t *testing.T) {
	srv := newTestServer(t)
	srv.advanceStep(t, 1)
	srv.mint(t, "alice")

	body, _ := json.Marshal(handler.TransferRequest{To: "bob"})
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/tokens/1/transfer", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("X-Account", "alice")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("transfer with X-Account: status %d, want 200", resp.StatusCode)
	}
}

func TestTransferErrors(t *testing.T) {
	srv := newTestServer(t)
	srv.advanceStep(t, 1)
	srv.mint(t, "alice")

	tests := []struct {
		name       string
		path       string
		body       handler.TransferRequest
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown token",
			path:       "/v1/tokens/99/transfer",
			body:       handler.TransferRequest{From: "alice", To: "bob"},
			wantStatus: http.StatusNotFound,
			wantCode:   domain.ErrTokenNotFound.Code,
		},
		{
			name:       "not the owner",
			path:       "/v1/tokens/1/transfer",
			body:       handler.TransferRequest{From: "mallory", To: "bob"},
			wantStatus: http.StatusForbidden,
			wantCode:   domain.ErrNotTokenOwner.Code,
		},
		{
			name:       "self transfer",
			path:       "/v1/tokens/1/transfer",
			body:       handler.TransferRequest{From: "alice", To: "alice"},
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.ErrSelfTransfer.Code,
		},
		{
			name:       "missing caller",
			path:       "/v1/tokens/1/transfer",
			body:       handler.TransferRequest{To: "bob"},
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.ErrInvalidArgument.Code,
		},
		{
			name:       "missing recipient",
			path:       "/v1/tokens/1/transfer",
			body:       handler.TransferRequest{From: "alice"},
			wantStatus: http.StatusBadRequest,
			wantCode:   domain.ErrInvalidArgument.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := srv.do(t, http.MethodPost, tt.path, tt.body, false)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if envelope.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", envelope.Code, tt.wantCode)
			}
		})
	}
}

func TestWeightAtValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing step", "/v1/accounts/alice/weight/at"},
		{"non-numeric step", "/v1/accounts/alice/weight/at?step=abc"},
		{"negative step", "/v1/accounts/alice/weight/at?step=-1"},
		{"overflow step", "/v1/accounts/alice/weight/at?step=4294967296"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := srv.do(t, http.MethodGet, tt.path, nil, false)
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if envelope.Code != domain.ErrInvalidArgument.Code {
				t.Errorf("code = %q, want %q", envelope.Code, domain.ErrInvalidArgument.Code)
			}
		})
	}
}

func TestCheckpointsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	srv.advanceStep(t, 1)
	srv.mint(t, "alice")
	srv.advanceStep(t, 3)
	srv.mint(t, "alice")

	status, envelope := srv.do(t, http.MethodGet, "/v1/accounts/alice/checkpoints", nil, false)
	if status != http.StatusOK {
		t.Fatalf("checkpoints: status %d", status)
	}

	var log handler.CheckpointsResponse
	decodeData(t, envelope, &log)
	want := []handler.CheckpointEntry{{Step: 1, Weight: 1}, {Step: 3, Weight: 2}}
	if len(log.Checkpoints) != len(want) {
		t.Fatalf("checkpoints = %v, want %v", log.Checkpoints, want)
	}
	for i := range want {
		if log.Checkpoints[i] != want[i] {
			t.Errorf("checkpoints[%d] = %v, want %v", i, log.Checkpoints[i], want[i])
		}
	}
}

func TestTokenNotFound(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := srv.do(t, http.MethodGet, "/v1/tokens/42", nil, false)
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if envelope.Code != domain.ErrTokenNotFound.Code {
		t.Errorf("code = %q, want %q", envelope.Code, domain.ErrTokenNotFound.Code)
	}

	status, _ = srv.do(t, http.MethodGet, "/v1/tokens/0", nil, false)
	if status != http.StatusBadRequest {
		t.Errorf("token id 0: status %d, want 400", status)
	}
}

func TestStepAdvance(t *testing.T) {
	srv := newTestServer(t)

	// Empty body ticks by one.
	status, envelope := srv.do(t, http.MethodPost, "/admin/v1/step/advance", nil, true)
	if status != http.StatusOK {
		t.Fatalf("tick: status %d", status)
	}
	var advanced handler.StepAdvanceResponse
	decodeData(t, envelope, &advanced)
	if advanced.Step != 1 {
		t.Errorf("step after tick = %d, want 1", advanced.Step)
	}

	srv.advanceStep(t, 5)

	// The clock never moves backward.
	status, envelope = srv.do(t, http.MethodPost, "/admin/v1/step/advance", handler.StepAdvanceRequest{Step: 3}, true)
	if status != http.StatusUnprocessableEntity {
		t.Errorf("regression: status %d, code %s, want 422", status, envelope.Code)
	}
}

func TestAdminStatusSummary(t *testing.T) {
	srv := newTestServer(t)
	srv.advanceStep(t, 2)
	srv.mint(t, "alice")

	status, _ := srv.do(t, http.MethodGet, "/admin/v1/status/summary", nil, false)
	if status != http.StatusUnauthorized {
		t.Errorf("unauthenticated status: %d, want 401", status)
	}

	status, envelope := srv.do(t, http.MethodGet, "/admin/v1/status/summary", nil, true)
	if status != http.StatusOK {
		t.Fatalf("status summary: %d", status)
	}
	summary, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("summary data has type %T", envelope.Data)
	}
	if summary["step"] != float64(2) {
		t.Errorf("step = %v, want 2", summary["step"])
	}
	if summary["supply"] != float64(1) {
		t.Errorf("supply = %v, want 1", summary["supply"])
	}
}

func TestGCTrigger(t *testing.T) {
	srv := newTestServer(t)

	status, envelope := srv.do(t, http.MethodPost, "/admin/v1/gc/trigger", nil, true)
	if status != http.StatusOK {
		t.Fatalf("gc trigger: status %d, code %s", status, envelope.Code)
	}
}

func TestSupplyCapOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	srv.advanceStep(t, 1)
	for i := 0; i < 100; i++ {
		srv.mint(t, "alice")
	}

	status, envelope := srv.do(t, http.MethodPost, "/v1/tokens/mint", handler.MintRequest{Recipient: "alice"}, true)
	if status != http.StatusConflict {
		t.Errorf("mint past cap: status %d, want 409", status)
	}
	if envelope.Code != domain.ErrMaxSupplyReached.Code {
		t.Errorf("code = %q, want %q", envelope.Code, domain.ErrMaxSupplyReached.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Contains(body, []byte("voteledger_")) {
		t.Error("exposition missing voteledger_ metrics")
	}
}
