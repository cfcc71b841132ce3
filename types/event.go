package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Event is what an extractor produces from a single log line.
// Each tracker only handles the variants it cares about
type Event interface {
	EventTime() time.Time
}

// BlockSlotRoot ties a block root to its slot, from any phrasing that mentions both
type BlockSlotRoot struct {
	Time time.Time
	Slot uint64
	Root common.Hash
}

type SyncHead struct {
	Time       time.Time
	HeadSlot   uint64
	TargetSlot uint64
}

// OutboundRequest is a batch of columns requested from a peer.
// Key is the correlation hash logged on both the request and its response
type OutboundRequest struct {
	Time           time.Time
	Key            int64
	PeerSuffix     string
	RequestedCount uint64
}

type OutboundResponse struct {
	Time           time.Time
	Key            int64
	PeerSuffix     string
	RespondedCount uint64
}

type Connect struct {
	Time time.Time
	Peer NodeIdentifier
}

type Origin int

const (
	Remote Origin = iota
	Local
)

func (o Origin) String() string {
	switch o {
	case Remote:
		return "remote"
	case Local:
		return "local"
	}
	return "unknown"
}

// Disconnect is a forced disconnection. Reason is empty when the node did not log one
type Disconnect struct {
	Time   time.Time
	Peer   NodeIdentifier
	Origin Origin
	Reason string
}

// MissingColumn is a failed by-root request of a single data column sidecar
type MissingColumn struct {
	Time        time.Time
	Peer        NodeIdentifier
	BlockRoot   common.Hash
	ColumnIndex uint64
}

func (e BlockSlotRoot) EventTime() time.Time    { return e.Time }
func (e SyncHead) EventTime() time.Time         { return e.Time }
func (e OutboundRequest) EventTime() time.Time  { return e.Time }
func (e OutboundResponse) EventTime() time.Time { return e.Time }
func (e Connect) EventTime() time.Time          { return e.Time }
func (e Disconnect) EventTime() time.Time       { return e.Time }
func (e MissingColumn) EventTime() time.Time    { return e.Time }
