// Package ws pushes blog changes to connected browsers over WebSocket.
//
// Layout:
//   - Hub: owns every connection and fans events out (observer pattern)
//   - Client: one WebSocket connection
//   - Event: the frame format in both directions
//
// Flow:
//  1. A client writes a blog over HTTP (POST/PUT/DELETE)
//  2. BlogService stores it, then calls Hub.BroadcastToAll
//  3. The hub queues the frame on every client's send channel
//  4. Each client's WritePump writes it to the socket
package ws

// Event is one frame on the socket.
//
// Seq grows by one for every outbound event, so a client that sees 5 then 7
// knows it missed 6 and should refetch the list.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → server.
const (
	OpHeartbeat = "heartbeat" // keeps the connection alive, sent every 30s
)

// Server → client.
const (
	OpReady        = "ready"         // first frame after connecting
	OpHeartbeatAck = "heartbeat_ack" // answer to heartbeat
	OpBlogCreate   = "blog_create"   // d: the blog
	OpBlogUpdate   = "blog_update"   // d: the blog
	OpBlogDelete   = "blog_delete"   // d: {"id": ...}
)

// ReadyData is the payload of OpReady.
type ReadyData struct {
	UserID string `json:"user_id,omitempty"` // empty for anonymous viewers
	Seq    int64  `json:"last_seq"`
}

// BlogDeleteData is the payload of OpBlogDelete.
type BlogDeleteData struct {
	ID string `json:"id"`
}
