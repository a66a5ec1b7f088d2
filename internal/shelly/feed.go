package shelly

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// FeedURL builds the push feed address for a cloud server and access
// key. A server value carrying a scheme is used verbatim, which lets
// tests point the feed at a local listener.
func FeedURL(server, authKey string) string {
	if strings.Contains(server, "://") {
		return fmt.Sprintf("%s/shelly/wss/hk_sock?t=%s", server, authKey)
	}
	return fmt.Sprintf("wss://%s:6113/shelly/wss/hk_sock?t=%s", server, authKey)
}

// RedactFeedURL masks the access key embedded in a feed address so the
// address can be logged.
func RedactFeedURL(feedURL, authKey string) string {
	if authKey == "" {
		return feedURL
	}
	return strings.ReplaceAll(feedURL, authKey, "XXX")
}

// Feed is one live push connection. Next blocks until a message
// arrives; Close unblocks a pending Next and is safe to call more
// than once.
type Feed struct {
	conn      *websocket.Conn
	closeOnce sync.Once
	closeErr  error
}

// DialFeed opens the push feed connection. Connection failure is fatal
// to the process, so there is no retry here.
func DialFeed(ctx context.Context, feedURL string) (*Feed, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("shelly: feed connect: %w", err)
	}
	return &Feed{conn: conn}, nil
}

// Next returns the next message from the feed. Any error means the
// stream has ended; the feed cannot be read again afterwards.
func (f *Feed) Next() ([]byte, error) {
	_, msg, err := f.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("shelly: feed read: %w", err)
	}
	return msg, nil
}

// Close tears down the connection.
func (f *Feed) Close() error {
	f.closeOnce.Do(func() {
		f.closeErr = f.conn.Close()
	})
	return f.closeErr
}
