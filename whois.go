package main

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"regexp"
	"strings"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/pkg/errors"
	"github.com/ylacancellera/beacon-log-explainer/types"
)

type whois struct {
	Search string `arg:"" name:"search" help:"the identifier to search: node id, node id suffix, ip or peer id"`
}

func (w *whois) Help() string {
	return `Take any type of identifier a beacon node logs, and find the node behind it

Usage:
	beacon-log-explainer whois 0x...ab12
	beacon-log-explainer whois 10.0.0.4
	beacon-log-explainer whois 16Uiu2HAm7LEP8smMWBqSGxnhHJg4XZZcxCnv8ytpTmXabUZBx6Lk`
}

func (w *whois) Run() error {
	roster, err := loadRoster()
	if err != nil {
		return errors.Wrap(err, "could not load the node roster")
	}

	out, err := json.MarshalIndent(whoIs(roster, w.Search), "", "\t")
	if err != nil {
		return errors.Wrap(err, "could not marshal node info")
	}
	fmt.Println(string(out))
	return nil
}

func whoIs(roster *types.Roster, search string) types.NodeInfo {
	id := detectIdentifier(search)
	ni := types.NodeInfo{Input: search, Form: id.Form.String(), Name: roster.Resolve(id)}

	entry, ok := roster.Lookup(id)
	if !ok {
		return ni
	}
	ni.NodeID = "0x" + entry.NodeID.String()
	ni.PeerID = entry.PeerID
	ni.IP = entry.IP
	ni.Client = entry.Client
	ni.BeaconURI = entry.BeaconURI
	return ni
}

var (
	fullNodeIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)
	hexRegex        = regexp.MustCompile(`^[0-9a-fA-F]+$`)
)

// detectIdentifier guesses the form from the shape of the input.
// Anything unrecognized is tried as a node id suffix, which will resolve to a placeholder
func detectIdentifier(search string) types.NodeIdentifier {
	search = strings.TrimSpace(search)
	hex := strings.TrimPrefix(strings.TrimPrefix(search, "0x"), "...")

	switch {
	case fullNodeIDRegex.MatchString(hex):
		return types.NodeIdentifier{Value: hex, Form: types.NodeIDHex}
	case isIP(search):
		return types.NodeIdentifier{Value: search, Form: types.IPAddress}
	case isPeerID(search):
		return types.NodeIdentifier{Value: search, Form: types.PeerIDBase58}
	case hexRegex.MatchString(hex):
		return types.NodeIdentifier{Value: hex, Form: types.NodeIDSuffixHex}
	}
	return types.NodeIdentifier{Value: search, Form: types.NodeIDSuffixHex}
}

func isIP(s string) bool {
	_, err := netip.ParseAddr(s)
	return err == nil
}

func isPeerID(s string) bool {
	_, err := peer.Decode(s)
	return err == nil
}
