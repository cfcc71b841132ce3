package inventory

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/p2p/enode"
	"github.com/ethereum/go-ethereum/p2p/enr"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/ylacancellera/beacon-log-explainer/types"
)

type testNode struct {
	enr    string
	id     enode.ID
	peerID string
}

func newTestNode(t *testing.T, ip string, tcp, udp int) testNode {
	t.Helper()

	key, err := gethcrypto.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	var r enr.Record
	r.Set(enr.IPv4(net.ParseIP(ip).To4()))
	if tcp != 0 {
		r.Set(enr.TCP(tcp))
	}
	if udp != 0 {
		r.Set(enr.UDP(udp))
	}
	if err := enode.SignV4(&r, key); err != nil {
		t.Fatalf("failed to sign enr: %v", err)
	}
	n, err := enode.New(enode.ValidSchemes, &r)
	if err != nil {
		t.Fatalf("failed to build node: %v", err)
	}
	peerID, err := PeerIDFromENR(n)
	if err != nil {
		t.Fatalf("failed to derive peer id: %v", err)
	}
	return testNode{enr: n.String(), id: n.ID(), peerID: peerID}
}

func inventoryJSON(t *testing.T, nodes map[string]Node) string {
	t.Helper()
	out, err := json.Marshal(Inventory{EthereumPairs: nodes})
	if err != nil {
		t.Fatalf("failed to marshal inventory: %v", err)
	}
	return string(out)
}

func TestParse(t *testing.T) {
	lighthouse := newTestNode(t, "10.0.0.1", 9000, 9000)
	teku := newTestNode(t, "10.0.0.2", 0, 9001)

	doc := inventoryJSON(t, map[string]Node{
		"teku-geth-2": {
			Consensus: Consensus{Client: "teku", ENR: teku.enr, BeaconURI: "http://10.0.0.2:5052"},
		},
		"lighthouse-geth-1": {
			Consensus: Consensus{Client: "lighthouse", ENR: lighthouse.enr, PeerID: lighthouse.peerID},
			Execution: Execution{Client: "geth"},
		},
	})

	roster, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []types.RosterEntry{
		{Name: "lighthouse-geth-1", NodeID: lighthouse.id, PeerID: lighthouse.peerID, IP: "10.0.0.1", Client: "lighthouse"},
		{Name: "teku-geth-2", NodeID: teku.id, PeerID: teku.peerID, IP: "10.0.0.2", Client: "teku", BeaconURI: "http://10.0.0.2:5052"},
	}
	if diff := cmp.Diff(expected, roster.Entries()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// every identifier form resolves to the same node
	for _, id := range []types.NodeIdentifier{
		{Value: teku.id.String(), Form: types.NodeIDHex},
		{Value: teku.id.String()[58:], Form: types.NodeIDSuffixHex},
		{Value: "10.0.0.2", Form: types.IPAddress},
		{Value: teku.peerID, Form: types.PeerIDBase58},
	} {
		if name := roster.Resolve(id); name != "teku-geth-2" {
			t.Errorf("%s(%s): resolved to %s", id.Form, id.Value, name)
		}
	}
}

func TestParseFailures(t *testing.T) {
	noAddress := newTestNode(t, "10.0.0.3", 0, 0)
	valid := newTestNode(t, "10.0.0.4", 9000, 9000)

	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{
			name: "not json",
			doc:  "<html>502 Bad Gateway</html>",
		},
		{
			name: "no ethereum_pairs",
			doc:  `{"nodes": {}}`,
		},
		{
			name: "broken enr",
			doc:  inventoryJSON(t, map[string]Node{"x": {Consensus: Consensus{ENR: "enr:-notbase64"}}}),
		},
		{
			name: "enr without endpoint",
			doc:  inventoryJSON(t, map[string]Node{"x": {Consensus: Consensus{ENR: noAddress.enr}}}),
			err:  ErrNoAddress,
		},
		{
			name: "invalid peer id",
			doc:  inventoryJSON(t, map[string]Node{"x": {Consensus: Consensus{ENR: valid.enr, PeerID: "not-a-peer-id"}}}),
		},
	}

	for _, test := range tests {
		_, err := Parse(strings.NewReader(test.doc))
		if err == nil {
			t.Errorf("%s: expected an error", test.name)
			continue
		}
		if test.err != nil && errors.Cause(err) != test.err {
			t.Errorf("%s: expected %v, got %v", test.name, test.err, err)
		}
	}
}

func TestFetch(t *testing.T) {
	node := newTestNode(t, "10.0.0.5", 9000, 9000)
	doc := inventoryJSON(t, map[string]Node{"prysm-geth-5": {Consensus: Consensus{ENR: node.enr}}})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/nodes/inventory" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	roster, err := Fetch(ctx, srv.Client(), srv.URL+"/api/v1/nodes/inventory")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name, ok := roster.ByIPAddress("10.0.0.5"); !ok || name != "prysm-geth-5" {
		t.Errorf("got %s, %v", name, ok)
	}

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/missing")
	if err == nil {
		t.Errorf("expected an error on 404")
	}
}

func TestLoad(t *testing.T) {
	node := newTestNode(t, "10.0.0.6", 9000, 0)
	path := filepath.Join(t.TempDir(), "inventory.json")
	err := os.WriteFile(path, []byte(inventoryJSON(t, map[string]Node{"nimbus-geth-6": {Consensus: Consensus{ENR: node.enr}}})), 0o600)
	if err != nil {
		t.Fatalf("failed to write inventory: %v", err)
	}

	roster, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name, ok := roster.ByNodeID(node.id); !ok || name != "nimbus-geth-6" {
		t.Errorf("got %s, %v", name, ok)
	}

	_, err = Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Errorf("expected an error on a missing file")
	}
}
