package regex

import (
	"regexp"
	"strings"
	"time"

	"github.com/ylacancellera/beacon-log-explainer/types"
)

func init() {
	setType(types.PeersRegexType, PeersMap)
}

var PeersMap = RegexMap{
	// 2024-10-02 18:35:21.202+04:00 | nioEventLoopGroup-3-5 | DEBUG | LibP2PNetwork | onConnectedPeer() 16Uiu2HAm7LEP8smMWBqSGxnhHJg4XZZcxCnv8ytpTmXabUZBx6Lk
	"RegexConnectedPeer": &LogRegex{
		Regex:         regexp.MustCompile(`onConnectedPeer\(\) 16U`),
		InternalRegex: regexp.MustCompile(`onConnectedPeer\(\) ` + PeerIDPattern.Group(groupPeerID)),
		Handler: func(internalRegex *regexp.Regexp, r []string, date time.Time) (types.Event, error) {
			peerID, err := PeerIDPattern.Get(internalRegex, r, groupPeerID)
			if err != nil {
				return nil, err
			}
			return types.Connect{Time: date, Peer: types.NodeIdentifier{Value: peerID, Form: types.PeerIDBase58}}, nil
		},
		Verbosity: types.DebugEvents,
	},

	// 2024-10-02 18:36:02.510+04:00 | nioEventLoopGroup-3-5 | DEBUG | Eth2PeerManager | Disconnected forcibly remotely because Optional[TOO_MANY_PEERS] from /ip4/10.0.0.1/tcp/9000/p2p/16Uiu2HAm7LEP8smMWBqSGxnhHJg4XZZcxCnv8ytpTmXabUZBx6Lk
	// 2024-10-02 18:36:02.510+04:00 | nioEventLoopGroup-3-5 | DEBUG | Eth2PeerManager | Disconnected forcibly locally because Optional.empty from /ip4/10.0.0.1/tcp/9000
	"RegexDisconnectedForcibly": &LogRegex{
		Regex:         regexp.MustCompile(`Disconnected forcibly (remotely|locally) because Optional`),
		InternalRegex: regexp.MustCompile(`Disconnected forcibly (?P<` + groupOrigin + `>remotely|locally) because Optional(?P<` + groupReason + `>\S+) from /ip4/` + IPv4Pattern.Group(groupNodeIP) + `/tcp/\d+`),
		Handler: func(internalRegex *regexp.Regexp, r []string, date time.Time) (types.Event, error) {
			ip, err := IPv4Pattern.Get(internalRegex, r, groupNodeIP)
			if err != nil {
				return nil, err
			}
			origin := types.Remote
			if r[internalRegex.SubexpIndex(groupOrigin)] == "locally" {
				origin = types.Local
			}
			return types.Disconnect{
				Time:   date,
				Peer:   types.NodeIdentifier{Value: ip, Form: types.IPAddress},
				Origin: origin,
				Reason: optionalReason(r[internalRegex.SubexpIndex(groupReason)]),
			}, nil
		},
		Verbosity: types.Info,
	},
}

// java Optional rendering: "[TOO_MANY_PEERS]", or ".empty" when absent
func optionalReason(s string) string {
	if s == ".empty" {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
}
