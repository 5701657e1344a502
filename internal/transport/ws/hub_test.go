package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"mindbridge/internal/model"
	"mindbridge/internal/service"
)

var _ service.Broadcaster = (*Hub)(nil)

func receive(t *testing.T, conn *Connection) Message {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		require.True(t, ok, "send queue closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
	return Message{}
}

func TestHubRoutesByChannel(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zap.NewNop())
	admin := NewConnection(service.ChannelAdmin, "admin-1")
	reader := NewConnection(service.ChannelForum, "")
	hub.Register(admin)
	hub.Register(reader)

	hub.Broadcast(service.ChannelForum, service.MsgNewPost, map[string]string{"id": "post-1"})
	hub.Broadcast(service.ChannelAdmin, service.MsgAlert, model.Alert{Kind: "high_risk_chat"})

	msg := receive(t, reader)
	assert.Equal(t, service.MsgNewPost, msg.Type)
	assert.Equal(t, service.ChannelForum, msg.Channel)
	assert.JSONEq(t, `{"id":"post-1"}`, string(msg.Payload))

	msg = receive(t, admin)
	assert.Equal(t, service.MsgAlert, msg.Type)

	assert.Equal(t, 1, hub.Subscribers(service.ChannelForum))
	hub.Unregister(reader)
	_, open := <-reader.Send
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers(service.ChannelForum))

	hub.Close()
	_, open = <-admin.Send
	assert.False(t, open)
}

func TestHubCloseIsIdempotentAndNonBlocking(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(zap.NewNop())
	hub.Close()
	hub.Close()

	// none of these may block after close
	hub.Broadcast(service.ChannelForum, service.MsgNewPost, nil)
	late := NewConnection(service.ChannelForum, "")
	hub.Register(late)
	_, open := <-late.Send
	assert.False(t, open)
	hub.Unregister(late)
}

type stubTokens map[string]*model.UserClaims

func (s stubTokens) ValidateToken(token string) (*model.UserClaims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("invalid")
}

func TestAdminWSRequiresAdminToken(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	student := &model.UserClaims{Role: model.RoleStudent}
	h := NewHandler(hub, stubTokens{"student": student}, "*", zap.NewNop())

	w := httptest.NewRecorder()
	h.AdminWS(w, httptest.NewRequest(http.MethodGet, "/v1/ws/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	h.AdminWS(w, httptest.NewRequest(http.MethodGet, "/v1/ws/admin?token=forged", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	h.AdminWS(w, httptest.NewRequest(http.MethodGet, "/v1/ws/admin?token=student", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestForumWSDeliversBroadcasts(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	h := NewHandler(hub, stubTokens{}, "*", zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(h.ForumWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return hub.Subscribers(service.ChannelForum) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast(service.ChannelForum, service.MsgPostLiked, map[string]int{"likes": 4})

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, service.MsgPostLiked, msg.Type)
	assert.JSONEq(t, `{"likes":4}`, string(msg.Payload))
}
