package tracker

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ylacancellera/beacon-log-explainer/regex"
	"github.com/ylacancellera/beacon-log-explainer/types"
	"github.com/ylacancellera/beacon-log-explainer/utils"
)

// Engine feeds each log line to every tracker, always in the same order:
// the column tracker has to see a block root after the block tracker indexed it.
// It is not safe for concurrent use, a log is a single ordered stream
type Engine struct {
	roster *types.Roster

	blocks      *BlockTracker
	columns     *ColumnTracker
	outbound    *OutboundTracker
	sync        *SyncTracker
	connections *ConnectionTracker

	trackers []Tracker
	keys     [][]string

	// entries at this verbosity or above are not kept in the timeline
	verbosity types.Verbosity
	source    string
	timeline  types.LocalTimeline
	counters  Counters

	logger zerolog.Logger
}

type Counters struct {
	Lines     int
	Events    int
	Dropped   int
	Anomalies int
}

type Option func(*Engine)

// WithVerbosity bounds what is kept in the timeline. Trackers are fed regardless
func WithVerbosity(verbosity types.Verbosity) Option {
	return func(e *Engine) {
		e.verbosity = verbosity
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(roster *types.Roster, opts ...Option) *Engine {
	e := &Engine{
		roster:    roster,
		verbosity: types.Debug,
		logger:    log.With().Str("component", "engine").Logger(),
	}
	e.blocks = NewBlockTracker()
	e.columns = NewColumnTracker(roster, e.blocks)
	e.outbound = NewOutboundTracker(roster)
	e.sync = NewSyncTracker()
	e.connections = NewConnectionTracker(roster)

	e.trackers = []Tracker{e.blocks, e.columns, e.outbound, e.sync, e.connections}
	for _, t := range e.trackers {
		e.keys = append(e.keys, t.Regexes().Keys())
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetSource stamps the following timeline entries with where their lines come from.
// Several files are still a single stream, in the order they are given
func (e *Engine) SetSource(source string) {
	e.source = source
}

// OnLine never fails: a line that can not be understood by a tracker is skipped by this tracker only
func (e *Engine) OnLine(line string) {
	e.counters.Lines++

	for i, t := range e.trackers {
		regexes := t.Regexes()
		for _, key := range e.keys[i] {
			lr := regexes[key]

			ev, err := lr.Extract(line)
			if err != nil {
				e.counters.Dropped++
				e.logger.Debug().Err(err).Str("regex", key).Str("log", line).Msg("Dropped event")
				continue
			}
			if ev == nil {
				continue
			}
			e.counters.Events++

			displayer, err := t.OnEvent(ev)
			verbosity := lr.Verbosity
			if err != nil {
				e.counters.Anomalies++
				e.logger.Warn().Err(err).Str("tracker", t.Name()).Time("date", ev.EventTime()).Msg("Anomaly")
				displayer = anomalyDisplayer(err)
				verbosity = types.Detailed
			}
			if displayer == nil || verbosity >= e.verbosity {
				continue
			}

			// the event was extracted, the line has a date
			_, layout, _ := regex.SearchDateFromLog(line)
			date := types.NewDate(ev.EventTime(), layout)
			e.timeline = append(e.timeline, types.LogInfo{
				Date:      &date,
				Msg:       displayer,
				Log:       line,
				Source:    e.source,
				RegexType: lr.Type,
				RegexUsed: key,
				Verbosity: verbosity,
			})
		}
	}
}

func anomalyDisplayer(err error) types.LogDisplayer {
	msg := err.Error()
	if errors.Cause(err) == ErrOrphanResponse {
		return types.SimpleDisplayer(utils.Paint(utils.YellowText, msg))
	}
	return types.SimpleDisplayer(utils.Paint(utils.RedText, msg))
}

func (e *Engine) Roster() *types.Roster { return e.roster }

func (e *Engine) Blocks() *BlockTracker { return e.blocks }

func (e *Engine) Columns() *ColumnTracker { return e.columns }

func (e *Engine) Outbound() *OutboundTracker { return e.outbound }

func (e *Engine) Sync() *SyncTracker { return e.sync }

func (e *Engine) Connections() *ConnectionTracker { return e.connections }

func (e *Engine) Timeline() types.LocalTimeline { return e.timeline }

func (e *Engine) Counters() Counters { return e.counters }

// Summary is a plain snapshot of the engine, meant to be dumped
type Summary struct {
	Counters         Counters
	Roster           int
	IndexedRoots     int
	IndexedSlots     int
	ConflictingSlots []uint64
	HeadSlot         uint64
	TargetSlot       uint64
	Outbound         OutboundStats
	ConnectedPeers   []string
	Disconnects      int
	MissingColumns   []PeerMisses
	TimelineEntries  int
}

func (e *Engine) Summary() Summary {
	return Summary{
		Counters:         e.counters,
		Roster:           e.roster.Len(),
		IndexedRoots:     e.blocks.RootCount(),
		IndexedSlots:     e.blocks.SlotCount(),
		ConflictingSlots: e.blocks.ConflictingSlots(),
		HeadSlot:         e.sync.CurrentHeadSlot(),
		TargetSlot:       e.sync.TargetSlot(),
		Outbound:         e.outbound.Stats(),
		ConnectedPeers:   e.connections.Peers(),
		Disconnects:      len(e.connections.observations),
		MissingColumns:   e.columns.Misses(),
		TimelineEntries:  len(e.timeline),
	}
}
