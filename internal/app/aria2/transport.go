package aria2

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/supchaser/aria2bot/internal/utils/errs"
)

const defaultHTTPTimeout = 10 * time.Second

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	ID      string `json:"id"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Transport speaks aria2 JSON-RPC over HTTP POST.
type Transport struct {
	rpcURL string
	token  string
	client *http.Client
	seq    atomic.Uint64
}

// CreateTransport accepts the secret either bare or already in "token:..." form.
func CreateTransport(rpcURL, secret string, timeout time.Duration) *Transport {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	token := ""
	if secret != "" {
		token = secret
		if !strings.HasPrefix(token, "token:") {
			token = "token:" + token
		}
	}

	return &Transport{
		rpcURL: rpcURL,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

func (t *Transport) Call(ctx context.Context, method string, params []any, result any) error {
	finalParams := make([]any, 0, len(params)+1)
	if t.token != "" {
		finalParams = append(finalParams, t.token)
	}
	finalParams = append(finalParams, params...)

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		ID:      strconv.FormatUint(t.seq.Add(1), 10),
		Params:  finalParams,
	})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	// aria2 reports rpc errors with a non-200 status and a JSON body, so the
	// body is decoded before the status code is looked at.
	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s: unexpected status %d", method, resp.StatusCode)
		}
		return fmt.Errorf("decode %s response: %w", method, err)
	}

	if rpcResp.Error != nil {
		return &errs.RPCError{Code: rpcResp.Error.Code, Message: rpcResp.Error.Message}
	}

	if result == nil || len(rpcResp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}

	return nil
}
