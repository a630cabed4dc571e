package scoreserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/block-breaker/internal/storage"
)

func startTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := New(store, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postScore(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/scores", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSubmitAndList(t *testing.T) {
	_, ts := startTestServer(t)

	resp := postScore(t, ts.URL, `{"score": 42}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created storage.Submission
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, 42, created.Score)

	postScore(t, ts.URL, `{"score": -10}`)

	list, err := http.Get(ts.URL + "/scores")
	require.NoError(t, err)
	defer list.Body.Close()
	require.Equal(t, http.StatusOK, list.StatusCode)

	body, err := io.ReadAll(list.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"score":42},{"id":2,"score":-10}]`, string(body))
}

func TestListEmpty(t *testing.T) {
	_, ts := startTestServer(t)

	resp, err := http.Get(ts.URL + "/scores")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))
}

func TestSubmitRejectsBadBody(t *testing.T) {
	_, ts := startTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"score":`},
		{"wrong type", `{"score": "lots"}`},
		{"missing score", `{"points": 3}`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postScore(t, ts.URL, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, ts := startTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/scores", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

type failingStore struct{}

func (failingStore) SubmitScore(int) (storage.Submission, error) {
	return storage.Submission{}, errors.New("disk full")
}

func (failingStore) Submissions() ([]storage.Submission, error) {
	return nil, errors.New("disk full")
}

func TestStoreFailure(t *testing.T) {
	ts := httptest.NewServer(New(failingStore{}, log.New(io.Discard)).Handler())
	defer ts.Close()

	resp := postScore(t, ts.URL, `{"score": 1}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	list, err := http.Get(ts.URL + "/scores")
	require.NoError(t, err)
	defer list.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, list.StatusCode)
}

func TestLiveFeed(t *testing.T) {
	srv, ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/scores/live", nil)
	require.NoError(t, err)
	defer conn.CloseNow() //nolint:errcheck

	require.Eventually(t, func() bool { return srv.hub.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	postScore(t, ts.URL, `{"score": 7}`)

	typ, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageText, typ)
	assert.JSONEq(t, `{"id":1,"score":7}`, string(data))

	conn.Close(websocket.StatusNormalClosure, "") //nolint:errcheck
	assert.Eventually(t, func() bool { return srv.hub.count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := newHub()
	ch := h.subscribe()

	for i := 0; i < cap(ch); i++ {
		assert.Equal(t, 1, h.publish([]byte("x")))
	}
	assert.Equal(t, 0, h.publish([]byte("overflow")))

	h.unsubscribe(ch)
	h.unsubscribe(ch)
	assert.Equal(t, 0, h.count())
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := New(failingStore{}, log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
