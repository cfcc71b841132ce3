package tracker

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/ylacancellera/beacon-log-explainer/regex"
	"github.com/ylacancellera/beacon-log-explainer/types"
	"github.com/ylacancellera/beacon-log-explainer/utils"
)

type PendingRequest types.OutboundRequest

func (p PendingRequest) Peer() types.NodeIdentifier {
	return types.NodeIdentifier{Value: p.PeerSuffix, Form: types.NodeIDSuffixHex}
}

type CompletedTransfer struct {
	Request        PendingRequest
	ResponseTime   time.Time
	RespondedCount uint64
}

func (c CompletedTransfer) Latency() time.Duration {
	return c.ResponseTime.Sub(c.Request.Time)
}

type PeerStats struct {
	Name             string
	Requests         int
	RequestedColumns uint64
	RespondedColumns uint64
	TotalLatency     time.Duration
}

type OutboundStats struct {
	Total       int
	Completed   int
	Unresponded int
	Orphans     int
	Overwritten int
	Peers       []PeerStats
}

// OutboundTracker pairs batch requests with their responses through the hash key.
// A key seen twice before any response keeps only the latest request
type OutboundTracker struct {
	roster      *types.Roster
	pending     map[int64]PendingRequest
	completed   []CompletedTransfer
	orphans     int
	overwritten int
}

func NewOutboundTracker(roster *types.Roster) *OutboundTracker {
	return &OutboundTracker{
		roster:  roster,
		pending: map[int64]PendingRequest{},
	}
}

func (t *OutboundTracker) Name() string { return "outbound" }

func (t *OutboundTracker) Regexes() regex.RegexMap { return regex.RPCMap }

func (t *OutboundTracker) OnEvent(ev types.Event) (types.LogDisplayer, error) {
	switch e := ev.(type) {
	case types.OutboundRequest:
		return t.onRequest(e), nil
	case types.OutboundResponse:
		return t.onResponse(e)
	}
	return nil, nil
}

func (t *OutboundTracker) onRequest(e types.OutboundRequest) types.LogDisplayer {
	if _, ok := t.pending[e.Key]; ok {
		t.overwritten++
	}
	req := PendingRequest(e)
	t.pending[e.Key] = req

	return func(roster *types.Roster) string {
		return fmt.Sprintf("requesting %d columns from %s", req.RequestedCount, roster.Resolve(req.Peer()))
	}
}

func (t *OutboundTracker) onResponse(e types.OutboundResponse) (types.LogDisplayer, error) {
	req, ok := t.pending[e.Key]
	if !ok {
		t.orphans++
		return nil, errors.Wrapf(ErrOrphanResponse, "hash=%d from 0x...%s", e.Key, e.PeerSuffix)
	}
	delete(t.pending, e.Key)

	transfer := CompletedTransfer{Request: req, ResponseTime: e.Time, RespondedCount: e.RespondedCount}
	t.completed = append(t.completed, transfer)

	return func(roster *types.Roster) string {
		ratio := fmt.Sprintf("%d/%d", transfer.RespondedCount, transfer.Request.RequestedCount)
		return fmt.Sprintf("%s responded %s columns in %s",
			roster.Resolve(transfer.Request.Peer()),
			utils.PaintRatio(ratio, transfer.RespondedCount, transfer.Request.RequestedCount),
			transfer.Latency())
	}, nil
}

func (t *OutboundTracker) Pending() []PendingRequest {
	pending := make([]PendingRequest, 0, len(t.pending))
	for _, p := range t.pending {
		pending = append(pending, p)
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].Time.Equal(pending[j].Time) {
			return pending[i].Key < pending[j].Key
		}
		return pending[i].Time.Before(pending[j].Time)
	})
	return pending
}

func (t *OutboundTracker) Completed() []CompletedTransfer {
	completed := make([]CompletedTransfer, len(t.completed))
	copy(completed, t.completed)
	return completed
}

func (t *OutboundTracker) Orphans() int {
	return t.orphans
}

// Stats groups completed transfers by the peer name they resolve to.
// Two suffixes resolving to the same name are one peer
func (t *OutboundTracker) Stats() OutboundStats {
	stats := OutboundStats{
		Completed:   len(t.completed),
		Unresponded: len(t.pending),
		Orphans:     t.orphans,
		Overwritten: t.overwritten,
		Peers:       []PeerStats{},
	}
	stats.Total = stats.Completed + stats.Unresponded

	byName := map[string]*PeerStats{}
	for _, c := range t.completed {
		name := t.roster.Resolve(c.Request.Peer())
		p, ok := byName[name]
		if !ok {
			p = &PeerStats{Name: name}
			byName[name] = p
		}
		p.Requests++
		p.RequestedColumns += c.Request.RequestedCount
		p.RespondedColumns += c.RespondedCount
		p.TotalLatency += c.Latency()
	}
	for _, p := range byName {
		stats.Peers = append(stats.Peers, *p)
	}
	sort.Slice(stats.Peers, func(i, j int) bool { return stats.Peers[i].Name < stats.Peers[j].Name })
	return stats
}

func (p PeerStats) MeanLatency() time.Duration {
	if p.Requests == 0 {
		return 0
	}
	return p.TotalLatency / time.Duration(p.Requests)
}
