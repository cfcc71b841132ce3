package types

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/p2p/enode"
)

// RosterEntry is a known participant of the network, with every identifier it can appear under in logs
type RosterEntry struct {
	Name      string
	NodeID    enode.ID
	PeerID    string
	IP        string
	Client    string
	BeaconURI string
}

// Roster is the immutable table of known participants.
// Entries are kept sorted by name so that ambiguous lookups (short node id suffixes) are deterministic
type Roster struct {
	entries  []RosterEntry
	byNodeID map[enode.ID]int
	byIP     map[string]int
	byPeerID map[string]int
}

func NewRoster(entries []RosterEntry) *Roster {
	r := &Roster{
		entries:  make([]RosterEntry, len(entries)),
		byNodeID: map[enode.ID]int{},
		byIP:     map[string]int{},
		byPeerID: map[string]int{},
	}
	copy(r.entries, entries)
	sort.SliceStable(r.entries, func(i, j int) bool { return r.entries[i].Name < r.entries[j].Name })

	// first entry wins, same as a linear scan would
	for i, e := range r.entries {
		if _, ok := r.byNodeID[e.NodeID]; !ok {
			r.byNodeID[e.NodeID] = i
		}
		if _, ok := r.byIP[e.IP]; !ok && e.IP != "" {
			r.byIP[e.IP] = i
		}
		if _, ok := r.byPeerID[e.PeerID]; !ok && e.PeerID != "" {
			r.byPeerID[e.PeerID] = i
		}
	}
	return r
}

// Entries returns a copy, the roster is not modified once built
func (r *Roster) Entries() []RosterEntry {
	if r == nil {
		return nil
	}
	entries := make([]RosterEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

func (r *Roster) ByNodeID(id enode.ID) (string, bool) {
	return r.name(r.indexByNodeID(id))
}

// ByNodeIDSuffix matches the first entry, in name order, whose node id ends with suffix.
// Very short suffixes are ambiguous; an empty one never matches
func (r *Roster) ByNodeIDSuffix(suffix []byte) (string, bool) {
	return r.name(r.indexByNodeIDSuffix(suffix))
}

func (r *Roster) ByIPAddress(ip string) (string, bool) {
	return r.name(r.indexIn(r.byIPMap(), ip))
}

func (r *Roster) ByPeerIDBase58(peerID string) (string, bool) {
	return r.name(r.indexIn(r.byPeerIDMap(), peerID))
}

// Resolve always returns a name: the roster one, or a placeholder carrying the raw identifier
func (r *Roster) Resolve(id NodeIdentifier) string {
	if name, ok := r.name(r.index(id)); ok {
		return name
	}
	return id.Placeholder()
}

// Lookup returns the whole entry an identifier resolves to
func (r *Roster) Lookup(id NodeIdentifier) (RosterEntry, bool) {
	i, ok := r.index(id)
	if !ok {
		return RosterEntry{}, false
	}
	return r.entries[i], true
}

// one resolver per identifier form
var resolvers = map[IdentifierForm]func(*Roster, string) (int, bool){
	NodeIDHex: func(r *Roster, s string) (int, bool) {
		id, err := enode.ParseID(s)
		if err != nil {
			return 0, false
		}
		return r.indexByNodeID(id)
	},
	// odd suffixes are left padded with a 0 nibble, then compared as bytes
	NodeIDSuffixHex: func(r *Roster, s string) (int, bool) {
		return r.indexByNodeIDSuffix(common.FromHex(s))
	},
	IPAddress: func(r *Roster, s string) (int, bool) {
		return r.indexIn(r.byIPMap(), s)
	},
	PeerIDBase58: func(r *Roster, s string) (int, bool) {
		return r.indexIn(r.byPeerIDMap(), s)
	},
}

func (r *Roster) index(id NodeIdentifier) (int, bool) {
	resolver, ok := resolvers[id.Form]
	if !ok || r == nil {
		return 0, false
	}
	return resolver(r, id.Value)
}

func (r *Roster) indexByNodeID(id enode.ID) (int, bool) {
	if r == nil {
		return 0, false
	}
	i, ok := r.byNodeID[id]
	return i, ok
}

func (r *Roster) indexByNodeIDSuffix(suffix []byte) (int, bool) {
	if r == nil || len(suffix) == 0 || len(suffix) > len(enode.ID{}) {
		return 0, false
	}
	for i, e := range r.entries {
		if bytes.HasSuffix(e.NodeID[:], suffix) {
			return i, true
		}
	}
	return 0, false
}

func (r *Roster) byIPMap() map[string]int {
	if r == nil {
		return nil
	}
	return r.byIP
}

func (r *Roster) byPeerIDMap() map[string]int {
	if r == nil {
		return nil
	}
	return r.byPeerID
}

func (r *Roster) indexIn(m map[string]int, key string) (int, bool) {
	i, ok := m[key]
	return i, ok
}

func (r *Roster) name(i int, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	return r.entries[i].Name, true
}
