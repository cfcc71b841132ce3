package main

import (
	"testing"

	"github.com/ethereum/go-ethereum/p2p/enode"
	"github.com/google/go-cmp/cmp"
	"github.com/ylacancellera/beacon-log-explainer/types"
)

func testRoster() *types.Roster {
	return types.NewRoster([]types.RosterEntry{
		{
			Name:   "lighthouse-geth-1",
			NodeID: enode.HexID("0x2222222222222222222222222222222222222222222222222222222222ab12cd"),
			PeerID: "16Uiu2HAm7LEP8smMWBqSGxnhHJg4XZZcxCnv8ytpTmXabUZBx6Lk",
			IP:     "10.0.0.1",
			Client: "lighthouse",
		},
	})
}

func TestDetectIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected types.NodeIdentifier
	}{
		{
			input:    "0x2222222222222222222222222222222222222222222222222222222222ab12cd",
			expected: types.NodeIdentifier{Value: "2222222222222222222222222222222222222222222222222222222222ab12cd", Form: types.NodeIDHex},
		},
		{
			input:    "0x...ab12cd",
			expected: types.NodeIdentifier{Value: "ab12cd", Form: types.NodeIDSuffixHex},
		},
		{
			input:    "ab12",
			expected: types.NodeIdentifier{Value: "ab12", Form: types.NodeIDSuffixHex},
		},
		{
			input:    "10.0.0.1",
			expected: types.NodeIdentifier{Value: "10.0.0.1", Form: types.IPAddress},
		},
		{
			input:    "16Uiu2HAm7LEP8smMWBqSGxnhHJg4XZZcxCnv8ytpTmXabUZBx6Lk",
			expected: types.NodeIdentifier{Value: "16Uiu2HAm7LEP8smMWBqSGxnhHJg4XZZcxCnv8ytpTmXabUZBx6Lk", Form: types.PeerIDBase58},
		},
		{
			input:    "not-an-id",
			expected: types.NodeIdentifier{Value: "not-an-id", Form: types.NodeIDSuffixHex},
		},
	}

	for _, test := range tests {
		if diff := cmp.Diff(test.expected, detectIdentifier(test.input)); diff != "" {
			t.Errorf("%s: (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestWhoIs(t *testing.T) {
	roster := testRoster()

	expected := types.NodeInfo{
		Input:  "0x...ab12cd",
		Form:   "nodeid-suffix",
		Name:   "lighthouse-geth-1",
		NodeID: "0x2222222222222222222222222222222222222222222222222222222222ab12cd",
		PeerID: "16Uiu2HAm7LEP8smMWBqSGxnhHJg4XZZcxCnv8ytpTmXabUZBx6Lk",
		IP:     "10.0.0.1",
		Client: "lighthouse",
	}
	if diff := cmp.Diff(expected, whoIs(roster, "0x...ab12cd")); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	unknown := whoIs(roster, "10.9.9.9")
	if diff := cmp.Diff(types.NodeInfo{Input: "10.9.9.9", Form: "ip", Name: "<10.9.9.9>"}, unknown); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSedByName(t *testing.T) {
	entry := testRoster().Entries()[0]
	expected := []string{
		"-e", "s/0x2222222222222222222222222222222222222222222222222222222222ab12cd/lighthouse-geth-1/g",
		"-e", "s/2222222222222222222222222222222222222222222222222222222222ab12cd/lighthouse-geth-1/g",
		"-e", "s/16Uiu2HAm7LEP8smMWBqSGxnhHJg4XZZcxCnv8ytpTmXabUZBx6Lk/lighthouse-geth-1/g",
		"-e", `s/\b10\.0\.0\.1\b/lighthouse-geth-1/g`,
	}
	if diff := cmp.Diff(expected, sedByName(entry)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
