package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	h := New()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(srv.Close)
	return h, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func join(t *testing.T, conn *websocket.Conn, orderID string) {
	t.Helper()
	data, _ := json.Marshal(orderID)
	msg, _ := json.Marshal(Message{Event: "join_order", Data: data})
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}

func (h *Hub) channelSize(name string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[name])
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func TestHub_SubscribedClientReceivesChannelEvents(t *testing.T) {
	h, srv := newTestServer(t)
	conn := dial(t, srv)

	join(t, conn, "order-1")
	require.Eventually(t, func() bool { return h.channelSize("order-1") == 1 },
		time.Second, 10*time.Millisecond)

	h.PublishToOrder("order-1", "order_status_updated", map[string]string{
		"orderId": "order-1",
		"status":  "preparing",
	})

	msg := readMessage(t, conn)
	assert.Equal(t, "order_status_updated", msg.Event)

	var payload struct {
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, "order-1", payload.OrderID)
	assert.Equal(t, "preparing", payload.Status)
}

func TestHub_UnsubscribedClientReceivesNothing(t *testing.T) {
	h, srv := newTestServer(t)
	subscriber := dial(t, srv)
	bystander := dial(t, srv)

	join(t, subscriber, "order-1")
	require.Eventually(t, func() bool { return h.channelSize("order-1") == 1 },
		time.Second, 10*time.Millisecond)

	h.PublishToOrder("order-1", "order_status_updated", map[string]string{"orderId": "order-1", "status": "ready"})

	readMessage(t, subscriber)
	expectSilence(t, bystander)
}

func TestHub_PublishToEmptyChannelIsNoop(t *testing.T) {
	h, srv := newTestServer(t)
	conn := dial(t, srv)

	// Nobody joined this channel; the event is silently dropped.
	h.PublishToOrder("order-nobody", "order_status_updated", map[string]string{"status": "ready"})
	expectSilence(t, conn)
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	h, srv := newTestServer(t)
	first := dial(t, srv)
	second := dial(t, srv)

	join(t, first, "order-1")
	require.Eventually(t, func() bool { return h.clientCount() == 2 },
		time.Second, 10*time.Millisecond)

	h.Broadcast("orderUpdated", nil)

	msg := readMessage(t, first)
	assert.Equal(t, "orderUpdated", msg.Event)
	assert.Empty(t, msg.Data)

	msg = readMessage(t, second)
	assert.Equal(t, "orderUpdated", msg.Event)
}

func TestHub_JoinIsIdempotent(t *testing.T) {
	h, srv := newTestServer(t)
	conn := dial(t, srv)

	join(t, conn, "order-1")
	join(t, conn, "order-1")
	require.Eventually(t, func() bool { return h.channelSize("order-1") == 1 },
		time.Second, 10*time.Millisecond)

	h.PublishToOrder("order-1", "order_status_updated", map[string]string{"status": "ready"})

	readMessage(t, conn)
	expectSilence(t, conn)
}

func TestHub_DisconnectDropsAllMemberships(t *testing.T) {
	h, srv := newTestServer(t)
	conn := dial(t, srv)

	join(t, conn, "order-1")
	join(t, conn, "order-2")
	require.Eventually(t, func() bool {
		return h.channelSize("order-1") == 1 && h.channelSize("order-2") == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return h.clientCount() == 0 && h.channelSize("order-1") == 0 && h.channelSize("order-2") == 0
	}, time.Second, 10*time.Millisecond)
}

func TestHub_StatusRelayFromSocket(t *testing.T) {
	h, srv := newTestServer(t)
	customer := dial(t, srv)
	admin := dial(t, srv)

	join(t, customer, "order-1")
	require.Eventually(t, func() bool { return h.channelSize("order-1") == 1 },
		time.Second, 10*time.Millisecond)

	relay, _ := json.Marshal(map[string]string{"orderId": "order-1", "status": "ready"})
	msg, _ := json.Marshal(Message{Event: "update_order_status", Data: relay})
	require.NoError(t, admin.WriteMessage(websocket.TextMessage, msg))

	received := readMessage(t, customer)
	assert.Equal(t, "order_status_updated", received.Event)
}
