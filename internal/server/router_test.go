package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"

	"batch-sender/pkg/batch"
	"batch-sender/pkg/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAddr(b byte) string {
	return address.NewAddress(0, 0, bytes.Repeat([]byte{b}, 32)).String()
}

// fakePreparer 直接使用真实 Assembler，resolver 可替换
type fakePreparer struct {
	assembler *batch.Assembler
	got       batch.TransferRequest
}

func (f *fakePreparer) PrepareSend(ctx context.Context, req batch.TransferRequest) (*batch.PreparedTransaction, error) {
	f.got = req
	return f.assembler.Assemble(ctx, req)
}

type resolverFunc func(ctx context.Context, owner, master string) (string, error)

func (f resolverFunc) ResolveWallet(ctx context.Context, owner, master string) (string, error) {
	return f(ctx, owner, master)
}

func newTestRouter(t *testing.T, resolver batch.WalletResolver, limiter ratelimit.Limiter) (*gin.Engine, *fakePreparer) {
	t.Helper()
	fixed := time.Unix(1_700_000_000, 0)
	p := &fakePreparer{assembler: batch.NewAssembler(resolver, batch.WithClock(func() time.Time { return fixed }))}
	return NewHTTPRouter(RouterDeps{Transfer: p, Limiter: limiter}), p
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, nil, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"UP"`)
}

func TestPrepareSend_Native(t *testing.T) {
	r, p := newTestRouter(t, nil, nil)
	var addrs []string
	for i := 1; i <= 5; i++ {
		addrs = append(addrs, testAddr(byte(i)))
	}
	body := fmt.Sprintf(`{"addresses":["%s"],"amount":"1.5","walletAddress":""}`, strings.Join(addrs, `","`))

	w := postJSON(r, "/prepare-send", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		Messages [][]struct {
			Address string `json:"address"`
			Amount  string `json:"amount"`
			Payload string `json:"payload"`
		} `json:"messages"`
		ValidUntil int64 `json:"validUntil"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Messages, 2)
	assert.Len(t, got.Messages[0], 4)
	assert.Len(t, got.Messages[1], 1)
	assert.Equal(t, addrs[4], got.Messages[1][0].Address)
	assert.Equal(t, "1500000000", got.Messages[0][0].Amount)
	assert.Empty(t, got.Messages[0][0].Payload)
	assert.Equal(t, int64(1_700_000_600), got.ValidUntil)
	assert.Len(t, p.got.Recipients, 5)
}

func TestPrepareSend_Jetton(t *testing.T) {
	jettonWallet := testAddr(0xEE)
	calls := 0
	r, _ := newTestRouter(t, resolverFunc(func(context.Context, string, string) (string, error) {
		calls++
		return jettonWallet, nil
	}), nil)

	body := fmt.Sprintf(`{"addresses":["%s","%s"],"amount":2,"tokenAddress":"%s","tokenDecimals":"6","walletAddress":"%s"}`,
		testAddr(1), testAddr(2), testAddr(3), testAddr(4))
	w := postJSON(r, "/prepare-send", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, calls)

	var raw struct {
		Messages [][]map[string]string `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	msgs := raw.Messages
	require.Len(t, msgs, 1)
	require.Len(t, msgs[0], 2)
	for _, m := range msgs[0] {
		assert.Equal(t, jettonWallet, m["address"])
		assert.Equal(t, "500000000", m["amount"])
		assert.NotEmpty(t, m["payload"])
	}
}

func TestPrepareSend_Errors(t *testing.T) {
	failing := resolverFunc(func(context.Context, string, string) (string, error) {
		return "", fmt.Errorf("liteserver unreachable")
	})
	r, _ := newTestRouter(t, failing, nil)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"not json", `{`, http.StatusBadRequest},
		{"missing addresses", `{"amount":"1"}`, http.StatusBadRequest},
		{"empty addresses", `{"addresses":[],"amount":"1"}`, http.StatusBadRequest},
		{"zero amount", fmt.Sprintf(`{"addresses":["%s"],"amount":"0"}`, testAddr(1)), http.StatusBadRequest},
		{"token without decimals", fmt.Sprintf(`{"addresses":["%s"],"amount":"1","tokenAddress":"%s","walletAddress":"%s"}`,
			testAddr(1), testAddr(2), testAddr(3)), http.StatusBadRequest},
		{"bad wallet address", fmt.Sprintf(`{"addresses":["%s"],"amount":"1","tokenAddress":"%s","tokenDecimals":9,"walletAddress":"nope"}`,
			testAddr(1), testAddr(2)), http.StatusBadRequest},
		{"decimals wrapping int32", fmt.Sprintf(`{"addresses":["%s"],"amount":"2.345","tokenAddress":"%s","tokenDecimals":4294967302,"walletAddress":"%s"}`,
			testAddr(1), testAddr(2), testAddr(3)), http.StatusBadRequest},
		{"decimals above max", fmt.Sprintf(`{"addresses":["%s"],"amount":"1","tokenAddress":"%s","tokenDecimals":"37","walletAddress":"%s"}`,
			testAddr(1), testAddr(2), testAddr(3)), http.StatusBadRequest},
		{"huge exponent native", fmt.Sprintf(`{"addresses":["%s"],"amount":"1e5000000"}`, testAddr(1)), http.StatusBadRequest},
		{"huge exponent jetton", fmt.Sprintf(`{"addresses":["%s"],"amount":"1e5000000","tokenAddress":"%s","tokenDecimals":9,"walletAddress":"%s"}`,
			testAddr(1), testAddr(2), testAddr(3)), http.StatusBadRequest},
		{"above coin range", fmt.Sprintf(`{"addresses":["%s"],"amount":"1e30"}`, testAddr(1)), http.StatusBadRequest},
		{"resolution failure", fmt.Sprintf(`{"addresses":["%s"],"amount":"1","tokenAddress":"%s","tokenDecimals":9,"walletAddress":"%s"}`,
			testAddr(1), testAddr(2), testAddr(3)), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/prepare-send", tt.body)
			assert.Equal(t, tt.status, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestUpload(t *testing.T) {
	r, _ := newTestRouter(t, nil, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("csv", "recipients.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("name,Address\nalice,EQA\nbob,\ncarol,EQC\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `[{"address":"EQA"},{"address":"EQC"}]`, w.Body.String())
}

func TestUpload_Missing(t *testing.T) {
	r, _ := newTestRouter(t, nil, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No CSV file uploaded")
}

func TestRateLimit(t *testing.T) {
	r, _ := newTestRouter(t, nil, ratelimit.NewMemoryLimiter(2, time.Minute))

	for i := 0; i < 2; i++ {
		w := postJSON(r, "/prepare-send", `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	w := postJSON(r, "/prepare-send", `{`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests, please try again later"}`, w.Body.String())

	// 运维接口不受限流影响
	hw := httptest.NewRecorder()
	r.ServeHTTP(hw, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, hw.Code)
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>batch</html>"), 0o644))

	r := NewHTTPRouter(RouterDeps{Transfer: &fakePreparer{assembler: batch.NewAssembler(nil)}, StaticDir: dir})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "batch")
}

func TestAppServe_Shutdown(t *testing.T) {
	app := New(Config{HttpPort: "0", ShutdownTimeout: time.Second}, gin.New())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
