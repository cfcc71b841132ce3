package types

// IdentifierForm is how a peer is named in a given log line.
// Beacon nodes are not consistent: discovery logs node ids, libp2p logs peer ids, disconnects log multiaddrs
type IdentifierForm int

const (
	NodeIDHex IdentifierForm = iota
	NodeIDSuffixHex
	IPAddress
	PeerIDBase58
)

func (f IdentifierForm) String() string {
	switch f {
	case NodeIDHex:
		return "nodeid"
	case NodeIDSuffixHex:
		return "nodeid-suffix"
	case IPAddress:
		return "ip"
	case PeerIDBase58:
		return "peerid"
	}
	return "unknown"
}

type NodeIdentifier struct {
	Value string
	Form  IdentifierForm
}

func (n NodeIdentifier) String() string {
	return n.Value
}

// Placeholder is the name used for a peer that is not in the roster
func (n NodeIdentifier) Placeholder() string {
	return "<" + n.Value + ">"
}
