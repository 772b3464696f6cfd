package network

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/status"
)

// Feed publishes score updates to WebSocket clients and serves a status endpoint
// It is an engine.Display; ShowScore is called from the game goroutine
type Feed struct {
	config    *Config
	peers     *PeerManager
	transport *Transport
	upgrader  websocket.Upgrader
	status    *status.Registry

	// Latest encoded frame, sent to clients on connect
	last     atomic.Pointer[[]byte]
	lastSnap atomic.Pointer[engine.ScoreSnapshot]

	statPeers   *atomic.Int64
	statFrames  *atomic.Int64
	statDropped *atomic.Int64
}

// StatusResponse is the JSON body of GET /status
type StatusResponse struct {
	Score   engine.ScoreSnapshot `json:"score"`
	Peers   int                  `json:"peers"`
	Metrics map[string]any       `json:"metrics"`
}

// NewFeed creates a feed; nil cfg uses DefaultConfig
func NewFeed(cfg *Config, reg *status.Registry) *Feed {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	f := &Feed{
		config: cfg,
		peers:  NewPeerManager(cfg),
		status: reg,

		statPeers:   reg.Ints.Get("feed.peers"),
		statFrames:  reg.Ints.Get("feed.frames"),
		statDropped: reg.Ints.Get("feed.dropped"),
	}
	f.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return cfg.allowsOrigin(r.Header.Get("Origin"))
		},
	}
	f.peers.onDisconnect = func(PeerID) {
		f.statPeers.Store(int64(f.peers.PeerCount()))
	}
	f.transport = NewTransport(cfg, f.Handler())

	return f
}

// Name identifies the feed in logs
func (f *Feed) Name() string {
	return "feed"
}

// Handler returns the feed routes, usable without Start in tests
func (f *Feed) Handler() http.Handler {
	return newRouter(f.config, f.handleStatus, f.handleWS)
}

// Start serves on the configured address
func (f *Feed) Start() error {
	return f.transport.Start()
}

// Addr returns the bound address once started
func (f *Feed) Addr() string {
	return f.transport.Addr()
}

// Stop disconnects all clients and shuts the server down
func (f *Feed) Stop(ctx context.Context) error {
	f.peers.Close()
	f.statPeers.Store(0)
	return f.transport.Stop(ctx)
}

// PeerCount returns connected client count
func (f *Feed) PeerCount() int {
	return f.peers.PeerCount()
}

// ShowScore implements engine.Display
func (f *Feed) ShowScore(snap engine.ScoreSnapshot) {
	data, err := NewScoreFrame(snap).Encode()
	if err != nil {
		log.Printf("feed: %v", err)
		return
	}

	f.lastSnap.Store(&snap)
	f.last.Store(&data)

	f.peers.Broadcast(data)
	f.statFrames.Add(1)
	f.statDropped.Store(f.peers.Dropped())
}

// lastFrame returns the most recent encoded frame, nil before the first score
func (f *Feed) lastFrame() []byte {
	if last := f.last.Load(); last != nil {
		return *last
	}
	return nil
}

func (f *Feed) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Peers:   f.peers.PeerCount(),
		Metrics: f.status.Snapshot(),
	}
	if snap := f.lastSnap.Load(); snap != nil {
		resp.Score = *snap
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("feed: status encode: %v", err)
	}
}

func (f *Feed) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		log.Printf("feed: upgrade: %v", err)
		return
	}

	peer, err := f.peers.Add(conn, f.lastFrame)
	if err != nil {
		log.Printf("feed: %s rejected: %v", r.RemoteAddr, err)
		return
	}

	f.statPeers.Store(int64(f.peers.PeerCount()))
	log.Printf("feed: peer %d connected from %s", peer.ID, peer.Addr)
}
