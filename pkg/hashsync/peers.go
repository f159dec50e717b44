package hashsync

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Peer is one connected browser. Writes are serialized.
type Peer struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

// Send writes msg to the browser.
func (p *Peer) Send(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.write(data)
}

func (p *Peer) write(data []byte) error {
	p.wmu.Lock()
	defer p.wmu.Unlock()
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

// Peers is a set of browser connections speaking Message. The zero value is
// ready to use.
type Peers struct {
	mu    sync.RWMutex
	peers map[*Peer]struct{}
}

// Join adds conn to the set.
func (ps *Peers) Join(conn *websocket.Conn) *Peer {
	p := &Peer{conn: conn}
	ps.mu.Lock()
	if ps.peers == nil {
		ps.peers = make(map[*Peer]struct{})
	}
	ps.peers[p] = struct{}{}
	ps.mu.Unlock()
	return p
}

// Serve reads messages from p until its connection fails, then removes and
// closes it. Malformed frames are logged and skipped.
func (ps *Peers) Serve(p *Peer, logger *slog.Logger, handle func(Message)) {
	defer ps.leave(p)
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("ignoring malformed message", "error", err)
			continue
		}
		if handle != nil {
			handle(msg)
		}
	}
}

// Broadcast sends msg to every peer, dropping those that fail.
func (ps *Peers) Broadcast(msg Message, logger *slog.Logger) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	ps.mu.RLock()
	peers := make([]*Peer, 0, len(ps.peers))
	for p := range ps.peers {
		peers = append(peers, p)
	}
	ps.mu.RUnlock()

	for _, p := range peers {
		if err := p.write(data); err != nil {
			logger.Debug("dropping client", "type", msg.Type, "error", err)
			ps.leave(p)
		}
	}
}

// Len returns the number of connected peers.
func (ps *Peers) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.peers)
}

// Close disconnects every peer.
func (ps *Peers) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for p := range ps.peers {
		p.conn.Close()
		delete(ps.peers, p)
	}
}

func (ps *Peers) leave(p *Peer) {
	ps.mu.Lock()
	delete(ps.peers, p)
	ps.mu.Unlock()
	p.conn.Close()
}
