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

type DisconnectObservation struct {
	Time          time.Time
	Name          string
	Origin        types.Origin
	Reason        string
	Duration      time.Duration
	TotalConnects int
}

// ConnectionTracker keys sessions by resolved name: connects are logged with a peer id,
// disconnects with an ip, the name is the only thing both have in common
type ConnectionTracker struct {
	roster       *types.Roster
	sessions     map[string][]types.Connect
	observations []DisconnectObservation
}

func NewConnectionTracker(roster *types.Roster) *ConnectionTracker {
	return &ConnectionTracker{
		roster:   roster,
		sessions: map[string][]types.Connect{},
	}
}

func (t *ConnectionTracker) Name() string { return "connections" }

func (t *ConnectionTracker) Regexes() regex.RegexMap { return regex.PeersMap }

func (t *ConnectionTracker) OnEvent(ev types.Event) (types.LogDisplayer, error) {
	switch e := ev.(type) {
	case types.Connect:
		name := t.roster.Resolve(e.Peer)
		t.sessions[name] = append(t.sessions[name], e)
		n := len(t.sessions[name])
		return func(_ *types.Roster) string {
			return utils.Paint(utils.GreenText, fmt.Sprintf("%s connected (#%d)", name, n))
		}, nil

	case types.Disconnect:
		return t.onDisconnect(e)
	}
	return nil, nil
}

func (t *ConnectionTracker) onDisconnect(e types.Disconnect) (types.LogDisplayer, error) {
	name := t.roster.Resolve(e.Peer)
	connects := t.sessions[name]
	if len(connects) == 0 {
		return nil, errors.Wrapf(ErrNoPriorConnect, "%s (%s)", name, e.Peer.Value)
	}

	obs := DisconnectObservation{
		Time:          e.Time,
		Name:          name,
		Origin:        e.Origin,
		Reason:        e.Reason,
		Duration:      e.Time.Sub(connects[len(connects)-1].Time),
		TotalConnects: len(connects),
	}
	t.observations = append(t.observations, obs)

	return func(_ *types.Roster) string {
		msg := fmt.Sprintf("%s: %s disconnect", obs.Name, utils.PaintForOrigin(obs.Origin.String(), obs.Origin.String()))
		if obs.Reason != "" {
			msg += " " + obs.Reason
		}
		return msg + fmt.Sprintf(", after %s, totalConnects: %d", obs.Duration, obs.TotalConnects)
	}, nil
}

func (t *ConnectionTracker) Observations() []DisconnectObservation {
	obs := make([]DisconnectObservation, len(t.observations))
	copy(obs, t.observations)
	return obs
}

func (t *ConnectionTracker) Connects(name string) []types.Connect {
	connects := make([]types.Connect, len(t.sessions[name]))
	copy(connects, t.sessions[name])
	return connects
}

// Peers lists every name that connected at least once
func (t *ConnectionTracker) Peers() []string {
	names := make([]string, 0, len(t.sessions))
	for name := range t.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
