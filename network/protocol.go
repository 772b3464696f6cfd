package network

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/offwall/engine"
)

// Frame types carried in ScoreFrame.Type
const (
	MsgScore = "score"
	MsgBye   = "bye"
)

// ScoreFrame is the binary WebSocket message sent to feed clients
type ScoreFrame struct {
	Type    string `msgpack:"type"`
	Current int    `msgpack:"current"`
	High    int    `msgpack:"high"`
	Turn    int    `msgpack:"turn"`
	Scoring bool   `msgpack:"scoring"`
}

// NewScoreFrame converts a display snapshot to a frame
func NewScoreFrame(snap engine.ScoreSnapshot) ScoreFrame {
	return ScoreFrame{
		Type:    MsgScore,
		Current: snap.Current,
		High:    snap.High,
		Turn:    snap.Turn,
		Scoring: snap.Scoring,
	}
}

// Encode marshals the frame with msgpack
func (f ScoreFrame) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", f.Type, err)
	}
	return data, nil
}

// DecodeFrame unmarshals a frame received from the feed
func DecodeFrame(data []byte) (ScoreFrame, error) {
	var f ScoreFrame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return ScoreFrame{}, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}
