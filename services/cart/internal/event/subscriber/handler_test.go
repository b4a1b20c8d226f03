package subscriber

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	logger := zap.NewNop()
	hub := NewHub(logger)
	handler := NewHandler(Config{PubSubName: "pubsub", Topic: "cart-updates", Route: "/cart-updates"}, hub, logger)
	srv := httptest.NewServer(NewRouter(handler, logger))
	t.Cleanup(srv.Close)
	return hub, srv
}

// openStream подключается к SSE и возвращает reader после приветствия connected
func openStream(t *testing.T, srv *httptest.Server) *bufio.Reader {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/cart-updates", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	require.JSONEq(t, `{"type":"connected"}`, readData(t, reader))
	return reader
}

func readData(t *testing.T, reader *bufio.Reader) string {
	t.Helper()
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}
}

func postEvent(t *testing.T, srv *httptest.Server, contentType, body string) {
	t.Helper()
	resp, err := srv.Client().Post(srv.URL+"/cart-updates", contentType, strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSubscriptions(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/dapr/subscribe")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `[{"pubsubname":"pubsub","topic":"cart-updates","route":"/cart-updates"}]`, string(body))
}

func TestReceiveEvent_FansOutToAllClients(t *testing.T) {
	hub, srv := newTestServer(t)

	first := openStream(t, srv)
	second := openStream(t, srv)
	require.Equal(t, 2, hub.Clients())

	event := `{"event_id":"e1","event_type":"cart_updated","order_id":1,` +
		`"order":{"id":1,"items":[{"product_id":1,"name":"Widget","quantity":2,"price":9.99}]},"timestamp":"t"}`
	postEvent(t, srv, "application/cloudevents+json",
		`{"specversion":"1.0","type":"com.dapr.event.sent","topic":"cart-updates","data":`+event+`}`)

	require.JSONEq(t, event, readData(t, first))
	require.JSONEq(t, event, readData(t, second))
}

func TestReceiveEvent_PlainJSON(t *testing.T) {
	_, srv := newTestServer(t)
	stream := openStream(t, srv)

	postEvent(t, srv, "application/json", `{"event_type":"cart_updated","order_id":1}`)
	require.JSONEq(t, `{"event_type":"cart_updated","order_id":1}`, readData(t, stream))
}

func TestStream_ClientDisconnectUnsubscribes(t *testing.T) {
	hub, srv := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/cart-updates", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"connected"}`, readData(t, bufio.NewReader(resp.Body)))
	require.Equal(t, 1, hub.Clients())

	cancel()
	_ = resp.Body.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestUnwrapCloudEvent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "cloud event", body: `{"specversion":"1.0","data":{"order_id":1}}`, want: `{"order_id":1}`},
		{name: "null data", body: `{"data":null,"order_id":1}`, want: `{"data":null,"order_id":1}`},
		{name: "plain object", body: `{"order_id": 1}`, want: `{"order_id":1}`},
		{name: "not json", body: `oops`, want: `{}`},
		{name: "empty", body: ``, want: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, string(UnwrapCloudEvent([]byte(tt.body))))
		})
	}
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ch := hub.subscribe()
	defer hub.unsubscribe(ch)

	for i := 0; i < clientBuffer; i++ {
		require.Equal(t, 1, hub.Broadcast([]byte(`{}`)))
	}
	require.Equal(t, 0, hub.Broadcast([]byte(`{}`)))
}
