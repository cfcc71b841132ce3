package tracker

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/ylacancellera/beacon-log-explainer/regex"
	"github.com/ylacancellera/beacon-log-explainer/types"
)

var (
	ErrOrphanResponse = errors.New("no request for response")
	ErrNoPriorConnect = errors.New("disconnect without a recorded connect")
)

// Tracker folds the events of one family of regexes into a state it owns alone.
// Events it does not handle are ignored
type Tracker interface {
	Name() string
	Regexes() regex.RegexMap

	// OnEvent returns what to display for this event, nil when nothing is worth showing.
	// An error is an anomaly of the log, never a reason to stop reading it
	OnEvent(ev types.Event) (types.LogDisplayer, error)
}

var (
	_ Tracker = (*BlockTracker)(nil)
	_ Tracker = (*ColumnTracker)(nil)
	_ Tracker = (*OutboundTracker)(nil)
	_ Tracker = (*SyncTracker)(nil)
	_ Tracker = (*ConnectionTracker)(nil)
)

func sortUint64s(s []uint64) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}
