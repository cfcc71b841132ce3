package tracker

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ylacancellera/beacon-log-explainer/regex"
	"github.com/ylacancellera/beacon-log-explainer/types"
	"github.com/ylacancellera/beacon-log-explainer/utils"
)

// BlockTracker keeps the block index.
// rootToSlot is the current view, slotToRoots is an audit trail: a root reported under
// two slots stays in both, which is evidence worth keeping rather than a stale entry
type BlockTracker struct {
	rootToSlot  map[common.Hash]uint64
	slotToRoots map[uint64][]common.Hash
}

func NewBlockTracker() *BlockTracker {
	return &BlockTracker{
		rootToSlot:  map[common.Hash]uint64{},
		slotToRoots: map[uint64][]common.Hash{},
	}
}

func (t *BlockTracker) Name() string { return "blocks" }

func (t *BlockTracker) Regexes() regex.RegexMap { return regex.BlocksMap }

func (t *BlockTracker) OnEvent(ev types.Event) (types.LogDisplayer, error) {
	e, ok := ev.(types.BlockSlotRoot)
	if !ok {
		return nil, nil
	}

	previous, known := t.rootToSlot[e.Root]
	t.Add(e.Root, e.Slot)

	msg := fmt.Sprintf("block %d %s", e.Slot, utils.ShortHex(e.Root.Hex(), 4))
	if known && previous != e.Slot {
		msg += utils.Paint(utils.YellowText, fmt.Sprintf(" (was slot %d)", previous))
	}
	return types.SimpleDisplayer(msg), nil
}

func (t *BlockTracker) Add(root common.Hash, slot uint64) {
	t.rootToSlot[root] = slot

	for _, r := range t.slotToRoots[slot] {
		if r == root {
			return
		}
	}
	t.slotToRoots[slot] = append(t.slotToRoots[slot], root)
}

func (t *BlockTracker) SlotOf(root common.Hash) (uint64, bool) {
	slot, ok := t.rootToSlot[root]
	return slot, ok
}

// RootsOf returns every root ever reported for the slot, in the order they were first seen
func (t *BlockTracker) RootsOf(slot uint64) []common.Hash {
	roots := make([]common.Hash, len(t.slotToRoots[slot]))
	copy(roots, t.slotToRoots[slot])
	return roots
}

func (t *BlockTracker) RootCount() int {
	return len(t.rootToSlot)
}

func (t *BlockTracker) SlotCount() int {
	return len(t.slotToRoots)
}

// ConflictingSlots lists slots where more than one root was reported
func (t *BlockTracker) ConflictingSlots() []uint64 {
	slots := []uint64{}
	for slot, roots := range t.slotToRoots {
		if len(roots) > 1 {
			slots = append(slots, slot)
		}
	}
	sortUint64s(slots)
	return slots
}
