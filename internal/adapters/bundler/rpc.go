package bundler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
)

const maxRPCResponseBytes = 1 << 20

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// rpcCaller posts JSON-RPC requests to a single endpoint. Request ids
// are process-unique; responses are size-capped before decoding.
type rpcCaller struct {
	endpoint       string
	httpClient     *http.Client
	requestTimeout time.Duration
	nextID         atomic.Int64
}

func newRPCCaller(endpoint string, httpClient *http.Client, requestTimeout time.Duration) (*rpcCaller, error) {
	if err := validateEndpoint(endpoint); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &rpcCaller{
		endpoint:       endpoint,
		httpClient:     httpClient,
		requestTimeout: requestTimeout,
	}, nil
}

// call performs one JSON-RPC round trip. result may be nil when the
// caller only cares about success; a JSON null result with a non-nil
// destination is surfaced as errNullResult so callers can distinguish
// "not there yet" from transport failure.
func (c *rpcCaller) call(ctx context.Context, method string, result any, params ...any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	requestCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		requestCtx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s: status %d", method, resp.StatusCode)
	}

	var envelope rpcResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRPCResponseBytes)).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("%s: %w", method, envelope.Error)
	}
	if result == nil {
		return nil
	}
	if len(envelope.Result) == 0 || bytes.Equal(envelope.Result, []byte("null")) {
		return fmt.Errorf("%s: %w", method, errNullResult)
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

var errNullResult = errors.New("null result")

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return errors.New("rpc endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("parse rpc endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("rpc endpoint must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("rpc endpoint host is required")
	}
	return nil
}

// joinEndpoint appends the API key path segment the way hosted bundler
// URLs expect (…/v2/<key>). A key already embedded in the URL is left
// alone.
func joinEndpoint(baseURL string, apiKey string) string {
	if apiKey == "" || strings.HasSuffix(baseURL, apiKey) {
		return baseURL
	}
	return strings.TrimRight(baseURL, "/") + "/" + apiKey
}
