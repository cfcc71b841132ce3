package tracker

import (
	"fmt"

	"github.com/ylacancellera/beacon-log-explainer/regex"
	"github.com/ylacancellera/beacon-log-explainer/types"
)

// SyncTracker remembers the last head slot logged while syncing.
// It is not monotonic: log order is the only order we have, a lower head must be representable
type SyncTracker struct {
	headSlot   uint64
	targetSlot uint64
}

func NewSyncTracker() *SyncTracker {
	return &SyncTracker{}
}

func (t *SyncTracker) Name() string { return "sync" }

func (t *SyncTracker) Regexes() regex.RegexMap { return regex.SyncMap }

func (t *SyncTracker) OnEvent(ev types.Event) (types.LogDisplayer, error) {
	e, ok := ev.(types.SyncHead)
	if !ok {
		return nil, nil
	}
	t.headSlot = e.HeadSlot
	t.targetSlot = e.TargetSlot
	return types.SimpleDisplayer(fmt.Sprintf("syncing head=%d target=%d", e.HeadSlot, e.TargetSlot)), nil
}

func (t *SyncTracker) CurrentHeadSlot() uint64 {
	return t.headSlot
}

func (t *SyncTracker) TargetSlot() uint64 {
	return t.targetSlot
}
