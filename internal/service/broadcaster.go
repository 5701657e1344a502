package service

// Broadcast channels
const (
	ChannelAdmin = "admin"
	ChannelForum = "forum"
)

// Broadcast message types
const (
	MsgAlert     = "alert"
	MsgNewPost   = "new_post"
	MsgNewReply  = "new_reply"
	MsgPostLiked = "post_liked"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	Broadcast(channel string, msgType string, payload interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, string, interface{}) {}
