// Package hashsync mirrors the URL fragment of remote browsers over a
// WebSocket so a router.Dispatcher can run against it.
//
// The browser side is ClientScript. It reports every hashchange as
//
//	{"type":"hash","token":"<fragment without #>"}
//
// and applies
//
//	{"type":"navigate","token":"..."}
//
// by assigning location.hash. The dev server reuses Message and Peers for
// its reload socket, with the reload, css, error and clear types.
package hashsync

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/hashview/pkg/loop"
	"github.com/vango-dev/hashview/pkg/router"
)

// Message types.
const (
	TypeHash     = "hash"
	TypeNavigate = "navigate"

	TypeReload = "reload"
	TypeCSS    = "css"
	TypeError  = "error"
	TypeClear  = "clear"
)

// Message is the wire format in both directions. File and Error are only
// set on css and error messages.
type Message struct {
	Type  string `json:"type"`
	Token string `json:"token"`
	File  string `json:"file,omitempty"`
	Error string `json:"error,omitempty"`
}

var _ router.Surface = (*Bridge)(nil)

// Bridge is a router.Surface whose token is the fragment last reported by a
// connected browser. SetToken navigates every connected browser.
type Bridge struct {
	loop     *loop.Loop
	logger   *slog.Logger
	upgrader websocket.Upgrader

	peers Peers

	mu    sync.RWMutex
	token string
	sub   func(string)
	subID int
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLoop delivers change notifications on l instead of the connection's
// read goroutine.
func WithLoop(l *loop.Loop) Option {
	return func(b *Bridge) {
		b.loop = l
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithCheckOrigin sets the origin check used when upgrading connections.
// The default accepts every origin.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(b *Bridge) {
		b.upgrader.CheckOrigin = fn
	}
}

// New creates a Bridge with an empty token.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.logger = b.logger.With("component", "hashsync")
	return b
}

// ServeHTTP upgrades the request and serves one browser until it
// disconnects. A newly connected browser is sent the current token, if any.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Debug("upgrade failed", "error", err)
		return
	}
	peer := b.peers.Join(conn)
	if token := b.Token(); token != "" {
		peer.Send(Message{Type: TypeNavigate, Token: token})
	}

	b.peers.Serve(peer, b.logger, func(msg Message) {
		switch msg.Type {
		case TypeHash:
			b.update(strings.TrimPrefix(msg.Token, "#"))
		default:
			b.logger.Debug("ignoring message", "type", msg.Type)
		}
	})
}

// Token implements router.Surface.
func (b *Bridge) Token() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token
}

// SetToken implements router.Surface. It records the token, notifies
// subscribers and sends a navigate message to every browser.
func (b *Bridge) SetToken(token string) {
	token = strings.TrimPrefix(token, "#")
	if !b.update(token) {
		return
	}
	b.peers.Broadcast(Message{Type: TypeNavigate, Token: token}, b.logger)
}

// Subscribe implements router.Surface. fn replaces any previous
// subscriber; the returned function removes fn if it is still current.
func (b *Bridge) Subscribe(fn func(token string)) func() {
	b.mu.Lock()
	b.subID++
	id := b.subID
	b.sub = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		if b.subID == id {
			b.sub = nil
		}
		b.mu.Unlock()
	}
}

// ClientCount returns the number of connected browsers.
func (b *Bridge) ClientCount() int {
	return b.peers.Len()
}

// Close disconnects every browser.
func (b *Bridge) Close() {
	b.peers.Close()
}

// update stores token and notifies subscribers if it changed.
func (b *Bridge) update(token string) bool {
	b.mu.Lock()
	if b.token == token {
		b.mu.Unlock()
		return false
	}
	b.token = token
	b.mu.Unlock()

	deliver := func() {
		b.mu.RLock()
		fn := b.sub
		b.mu.RUnlock()
		if fn != nil {
			fn(token)
		}
	}
	if b.loop != nil {
		b.loop.Post(deliver)
	} else {
		deliver()
	}
	return true
}
