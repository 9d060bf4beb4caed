package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"video_asset_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_ProcessOnce(t *testing.T) {
	logger.SetNewNop()

	var gotReq *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		_, _ = w.Write([]byte(`{"processed":1,"results":[{"asset_id":"asset-1","status":"ready"}]}`))
	}))
	defer server.Close()

	p := NewPoller(server.URL, "secret", time.Second, 2, 5*time.Second)
	err := p.ProcessOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotReq.Method)
	assert.Equal(t, "/process_pending", gotReq.URL.Path)
	assert.Equal(t, "2", gotReq.URL.Query().Get("max"))
	assert.Equal(t, "secret", gotReq.Header.Get("X-API-KEY"))
}

func TestPoller_NoKeyHeaderWhenUnset(t *testing.T) {
	logger.SetNewNop()

	var gotReq *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		_, _ = w.Write([]byte(`{"processed":0,"results":[]}`))
	}))
	defer server.Close()

	p := NewPoller(server.URL, "", time.Second, 2, 5*time.Second)
	err := p.ProcessOnce(context.Background())

	require.NoError(t, err)
	// 沒設定 key 就不帶 header，和 worker 環境變數未設定時一致
	assert.Empty(t, gotReq.Header.Get("X-API-KEY"))
}

func TestPoller_NonOKStatusLoggedNotFatal(t *testing.T) {
	logger.SetNewNop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer server.Close()

	p := NewPoller(server.URL, "wrong", time.Second, 2, 5*time.Second)
	err := p.ProcessOnce(context.Background())

	// 非 2xx 只記 log，輪詢要繼續跑
	assert.NoError(t, err)
}

func TestPoller_TransportError(t *testing.T) {
	logger.SetNewNop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	p := NewPoller(server.URL, "", time.Second, 2, time.Second)
	err := p.ProcessOnce(context.Background())

	assert.Error(t, err)
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	logger.SetNewNop()

	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		_, _ = w.Write([]byte(`{"processed":0,"results":[]}`))
	}))
	defer server.Close()

	p := NewPoller(server.URL, "", 10*time.Millisecond, 2, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// 至少跑完啟動那一輪再取消
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after context cancel")
	}

	assert.GreaterOrEqual(t, atomic.LoadInt64(&hits), int64(1))
}
