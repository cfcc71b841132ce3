package tracker

import (
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ylacancellera/beacon-log-explainer/regex"
	"github.com/ylacancellera/beacon-log-explainer/types"
	"github.com/ylacancellera/beacon-log-explainer/utils"
)

// SlotLookup is the read side of the block index
type SlotLookup interface {
	SlotOf(root common.Hash) (uint64, bool)
}

type MissingColumnObservation struct {
	Time        time.Time
	Name        string
	BlockRoot   common.Hash
	Slot        uint64
	SlotKnown   bool
	ColumnIndex uint64
}

type PeerMisses struct {
	Name   string
	Misses int
}

// ColumnTracker records failed data column sidecar requests.
// The slot is looked up when the failure is seen, a block reported later does not fix it up
type ColumnTracker struct {
	roster       *types.Roster
	blocks       SlotLookup
	observations []MissingColumnObservation
	perPeer      map[string]int
}

func NewColumnTracker(roster *types.Roster, blocks SlotLookup) *ColumnTracker {
	return &ColumnTracker{
		roster:  roster,
		blocks:  blocks,
		perPeer: map[string]int{},
	}
}

func (t *ColumnTracker) Name() string { return "columns" }

func (t *ColumnTracker) Regexes() regex.RegexMap { return regex.ColumnsMap }

func (t *ColumnTracker) OnEvent(ev types.Event) (types.LogDisplayer, error) {
	e, ok := ev.(types.MissingColumn)
	if !ok {
		return nil, nil
	}

	obs := MissingColumnObservation{
		Time:        e.Time,
		Name:        t.roster.Resolve(e.Peer),
		BlockRoot:   e.BlockRoot,
		ColumnIndex: e.ColumnIndex,
	}
	obs.Slot, obs.SlotKnown = t.blocks.SlotOf(e.BlockRoot)
	t.observations = append(t.observations, obs)
	t.perPeer[obs.Name]++

	return func(_ *types.Roster) string {
		slot := utils.Paint(utils.YellowText, "?"+utils.ShortHex(obs.BlockRoot.Hex(), 4))
		if obs.SlotKnown {
			slot = fmt.Sprintf("%d", obs.Slot)
		}
		return fmt.Sprintf("%s/%d missing from %s", slot, obs.ColumnIndex, obs.Name)
	}, nil
}

func (t *ColumnTracker) Observations() []MissingColumnObservation {
	obs := make([]MissingColumnObservation, len(t.observations))
	copy(obs, t.observations)
	return obs
}

// Misses returns peers by descending number of missing columns
func (t *ColumnTracker) Misses() []PeerMisses {
	misses := make([]PeerMisses, 0, len(t.perPeer))
	for name, n := range t.perPeer {
		misses = append(misses, PeerMisses{Name: name, Misses: n})
	}
	sort.Slice(misses, func(i, j int) bool {
		if misses[i].Misses == misses[j].Misses {
			return misses[i].Name < misses[j].Name
		}
		return misses[i].Misses > misses[j].Misses
	})
	return misses
}
