package network

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/offwall/core"
)

// PeerID uniquely identifies a connected feed client
type PeerID uint32

// Peer is one WebSocket client of the feed
type Peer struct {
	ID   PeerID
	Addr string

	conn   *websocket.Conn
	config *Config

	// Send queue, drop on full
	sendCh chan []byte

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
}

func newPeer(id PeerID, conn *websocket.Conn, cfg *Config) *Peer {
	return &Peer{
		ID:      id,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		config:  cfg,
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
}

// Send queues an encoded frame
// Returns false if the peer is closed or its queue is full
func (p *Peer) Send(data []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}

	select {
	case p.sendCh <- data:
		return true
	default:
		return false
	}
}

// Close tears the connection down once
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		p.conn.Close()
	})
}

// Done is closed when the peer disconnects
func (p *Peer) Done() <-chan struct{} {
	return p.closeCh
}

// readLoop drains client messages so control frames are processed
// The feed is one-way; data frames from clients are ignored
func (p *Peer) readLoop() {
	defer p.Close()

	p.conn.SetReadDeadline(time.Now().Add(p.config.PongTimeout))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(p.config.PongTimeout))
	})

	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("feed: peer %d read: %v", p.ID, err)
			}
			return
		}
	}
}

// writeLoop sends queued frames and keepalive pings
func (p *Peer) writeLoop() {
	ticker := time.NewTicker(p.config.PingInterval)
	defer func() {
		ticker.Stop()
		p.Close()
	}()

	for {
		select {
		case <-p.closeCh:
			return

		case data := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				log.Printf("feed: peer %d write: %v", p.ID, err)
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PeerManager tracks connected feed clients
type PeerManager struct {
	mu       sync.RWMutex
	peers    map[PeerID]*Peer
	nextID   atomic.Uint32
	maxPeers int
	config   *Config

	dropped atomic.Int64

	onDisconnect func(PeerID)
}

// NewPeerManager creates a peer manager
func NewPeerManager(cfg *Config) *PeerManager {
	return &PeerManager{
		peers:    make(map[PeerID]*Peer),
		maxPeers: cfg.MaxPeers,
		config:   cfg,
	}
}

// Add registers an upgraded connection and starts its I/O loops
// greeting is called under the manager lock, so a frame published concurrently
// either is the greeting or reaches the peer through Broadcast
func (pm *PeerManager) Add(conn *websocket.Conn, greeting func() []byte) (*Peer, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if len(pm.peers) >= pm.maxPeers {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, ErrMaxPeers.Error()),
			time.Now().Add(pm.config.WriteTimeout))
		conn.Close()
		return nil, ErrMaxPeers
	}

	id := PeerID(pm.nextID.Add(1))
	peer := newPeer(id, conn, pm.config)
	pm.peers[id] = peer
	if greeting != nil {
		if data := greeting(); data != nil {
			peer.Send(data)
		}
	}

	core.Go(peer.readLoop)
	core.Go(peer.writeLoop)
	core.Go(func() { pm.monitorPeer(peer) })

	return peer, nil
}

// monitorPeer removes a peer once it disconnects
func (pm *PeerManager) monitorPeer(peer *Peer) {
	<-peer.closeCh

	pm.mu.Lock()
	delete(pm.peers, peer.ID)
	pm.mu.Unlock()

	if pm.onDisconnect != nil {
		pm.onDisconnect(peer.ID)
	}
}

// Broadcast queues a frame on every peer, returning how many accepted it
func (pm *PeerManager) Broadcast(data []byte) int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	sent := 0
	for _, peer := range pm.peers {
		if peer.Send(data) {
			sent++
		} else {
			pm.dropped.Add(1)
		}
	}
	return sent
}

// PeerCount returns current connected peer count
func (pm *PeerManager) PeerCount() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Dropped returns frames discarded on full queues
func (pm *PeerManager) Dropped() int64 {
	return pm.dropped.Load()
}

// Close disconnects all peers
func (pm *PeerManager) Close() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	for _, peer := range pm.peers {
		peer.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, MsgBye),
			time.Now().Add(pm.config.WriteTimeout))
		peer.Close()
	}
	pm.peers = make(map[PeerID]*Peer)
}
