package network

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/offwall/engine"
	"github.com/lixenwraith/offwall/status"
)

func startFeed(t *testing.T, cfg *Config) (*Feed, *httptest.Server) {
	t.Helper()
	feed := NewFeed(cfg, status.NewRegistry())
	srv := httptest.NewServer(feed.Handler())
	t.Cleanup(func() {
		feed.peers.Close()
		srv.Close()
	})
	return feed, srv
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) ScoreFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Fatalf("message kind = %d, want binary", kind)
	}
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func waitPeers(t *testing.T, feed *Feed, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for feed.PeerCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("peer count = %d, want %d", feed.PeerCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFeedGreetsWithLastScore(t *testing.T) {
	feed, srv := startFeed(t, nil)
	feed.ShowScore(engine.ScoreSnapshot{Current: 3, High: 7, Turn: 2, Scoring: true})

	conn := dial(t, srv, nil)
	got := readFrame(t, conn)
	want := ScoreFrame{Type: MsgScore, Current: 3, High: 7, Turn: 2, Scoring: true}
	if got != want {
		t.Errorf("greeting = %+v, want %+v", got, want)
	}
}

func TestFeedBroadcast(t *testing.T) {
	feed, srv := startFeed(t, nil)

	a := dial(t, srv, nil)
	b := dial(t, srv, nil)
	waitPeers(t, feed, 2)

	feed.ShowScore(engine.ScoreSnapshot{Current: 1, High: 1, Turn: 1, Scoring: true})
	feed.ShowScore(engine.ScoreSnapshot{Current: 2, High: 2, Turn: 1, Scoring: true})

	for name, conn := range map[string]*websocket.Conn{"a": a, "b": b} {
		if f := readFrame(t, conn); f.Current != 1 {
			t.Errorf("%s first frame current = %d, want 1", name, f.Current)
		}
		if f := readFrame(t, conn); f.Current != 2 || f.High != 2 {
			t.Errorf("%s second frame = %+v", name, f)
		}
	}

	if got := feed.status.Ints.Get("feed.frames").Load(); got != 2 {
		t.Errorf("feed.frames = %d, want 2", got)
	}
}

func TestPeerManagerGreetingUnderLock(t *testing.T) {
	pm := NewPeerManager(DefaultConfig())
	t.Cleanup(pm.Close)

	locked := make(chan bool, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		pm.Add(conn, func() []byte {
			// A broadcast must not slip in between reading the greeting and registering
			held := !pm.mu.TryRLock()
			if !held {
				pm.mu.RUnlock()
			}
			locked <- held
			data, _ := NewScoreFrame(engine.ScoreSnapshot{Current: 4, High: 4}).Encode()
			return data
		})
	}))
	t.Cleanup(srv.Close)

	conn := dial(t, srv, nil)
	if f := readFrame(t, conn); f.Current != 4 {
		t.Errorf("greeting current = %d, want 4", f.Current)
	}
	if !<-locked {
		t.Error("greeting read outside the peer manager lock")
	}
}

func TestFeedJoinDuringScoringSeesFinalScore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SendQueueSize = 1024
	feed, srv := startFeed(t, cfg)

	const last = 300
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= last; i++ {
			feed.ShowScore(engine.ScoreSnapshot{Current: i, High: i, Turn: 1, Scoring: true})
		}
	}()

	conns := make([]*websocket.Conn, 4)
	for i := range conns {
		conns[i] = dial(t, srv, nil)
	}
	<-done

	for i, conn := range conns {
		for {
			f := readFrame(t, conn)
			if f.Current == last {
				break
			}
			if f.Current > last {
				t.Fatalf("client %d: current %d beyond %d", i, f.Current, last)
			}
		}
	}
}

func TestFeedDisconnectRemovesPeer(t *testing.T) {
	feed, srv := startFeed(t, nil)

	conn := dial(t, srv, nil)
	waitPeers(t, feed, 1)

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitPeers(t, feed, 0)
}

func TestFeedMaxPeers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPeers = 1
	feed, srv := startFeed(t, cfg)

	dial(t, srv, nil)
	waitPeers(t, feed, 1)

	extra := dial(t, srv, nil)
	extra.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := extra.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		t.Fatalf("extra peer read err = %v, want close 1013", err)
	}
	if feed.PeerCount() != 1 {
		t.Errorf("peer count = %d, want 1", feed.PeerCount())
	}
}

func TestFeedOriginCheck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowedOrigins = []string{"http://scoreboard.local"}
	_, srv := startFeed(t, cfg)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	bad := http.Header{"Origin": {"http://elsewhere"}}
	if _, resp, err := websocket.DefaultDialer.Dial(url, bad); err == nil {
		t.Fatal("foreign origin accepted")
	} else if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("foreign origin response = %v, want 403", resp)
	}

	dial(t, srv, http.Header{"Origin": {"http://scoreboard.local"}})
}

func TestStatusEndpoint(t *testing.T) {
	feed, srv := startFeed(t, nil)
	feed.status.Ints.Get("collision.accepted").Store(4)
	feed.ShowScore(engine.ScoreSnapshot{Current: 4, High: 9, Turn: 3, Scoring: true})

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var body StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Score.Current != 4 || body.Score.High != 9 || body.Score.Turn != 3 {
		t.Errorf("score = %+v", body.Score)
	}
	// JSON numbers decode as float64
	if got, ok := body.Metrics["collision.accepted"].(float64); !ok || got != 4 {
		t.Errorf("metrics[collision.accepted] = %v", body.Metrics["collision.accepted"])
	}
}

func TestStatusCORSPreflight(t *testing.T) {
	_, srv := startFeed(t, nil)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/status", nil)
	req.Header.Set("Origin", "http://scoreboard.local")
	req.Header.Set("Access-Control-Request-Method", "GET")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("preflight missing Access-Control-Allow-Origin")
	}
}

func TestFeedStartStop(t *testing.T) {
	feed := NewFeed(DebugConfig("127.0.0.1:0"), nil)

	if err := feed.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := feed.Start(); !errors.Is(err, ErrFeedRunning) {
		t.Errorf("second start = %v, want ErrFeedRunning", err)
	}

	resp, err := http.Get("http://" + feed.Addr() + "/status")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := feed.Stop(ctx); err != nil {
		t.Errorf("stop: %v", err)
	}
	if feed.transport.IsRunning() {
		t.Error("transport still running after stop")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty address", func(c *Config) { c.Address = "" }, false},
		{"no peers", func(c *Config) { c.MaxPeers = 0 }, false},
		{"no queue", func(c *Config) { c.SendQueueSize = 0 }, false},
		{"zero write timeout", func(c *Config) { c.WriteTimeout = 0 }, false},
		{"pong below ping", func(c *Config) { c.PongTimeout = c.PingInterval }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
