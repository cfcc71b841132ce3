package inventory

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"sort"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/p2p/enode"
	libp2pcrypto "github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ylacancellera/beacon-log-explainer/types"
)

// DefaultURL is the inventory of the devnet the tool was first written for
const DefaultURL = "https://config.peerdas-devnet-2.ethpandaops.io/api/v1/nodes/inventory"

var ErrNoAddress = errors.New("enr has neither a tcp nor an udp endpoint")

type Consensus struct {
	Client    string `json:"client"`
	Image     string `json:"image"`
	ENR       string `json:"enr"`
	PeerID    string `json:"peer_id"`
	BeaconURI string `json:"beacon_uri"`
}

type Execution struct {
	Client string `json:"client"`
	Image  string `json:"image"`
	Enode  string `json:"enode"`
	RPCURI string `json:"rpc_uri"`
}

type Node struct {
	Consensus Consensus `json:"consensus"`
	Execution Execution `json:"execution"`
}

// Inventory is the document served by the devnet config api, nodes are keyed by their display name
type Inventory struct {
	EthereumPairs map[string]Node `json:"ethereum_pairs"`
}

// Fetch downloads the inventory and builds the roster out of it.
// There is no retry: a roster is required to explain anything
func Fetch(ctx context.Context, client *http.Client, url string) (*types.Roster, error) {
	logger := log.With().Str("component", "inventory").Str("url", url).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build inventory request for %s", url)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug().Msg("Downloading inventory")
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download inventory from %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("failed to download inventory from %s: %s", url, resp.Status)
	}

	roster, err := Parse(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid inventory from %s", url)
	}
	logger.Debug().Int("nodes", roster.Len()).Msg("Inventory loaded")
	return roster, nil
}

// Load reads an inventory previously saved on disk, useful when the devnet is gone
func Load(path string) (*types.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open inventory %s", path)
	}
	defer f.Close()

	roster, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid inventory %s", path)
	}
	return roster, nil
}

func Parse(r io.Reader) (*types.Roster, error) {
	inv := Inventory{}
	err := json.NewDecoder(r).Decode(&inv)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode inventory")
	}
	return inv.Roster()
}

func (inv Inventory) Roster() (*types.Roster, error) {
	if inv.EthereumPairs == nil {
		return nil, errors.New("no ethereum_pairs in inventory")
	}

	// map order is random, keep error messages stable
	names := make([]string, 0, len(inv.EthereumPairs))
	for name := range inv.EthereumPairs {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]types.RosterEntry, 0, len(names))
	for _, name := range names {
		entry, err := entryFromNode(name, inv.EthereumPairs[name])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return types.NewRoster(entries), nil
}

func entryFromNode(name string, n Node) (types.RosterEntry, error) {
	record, err := enode.Parse(enode.ValidSchemes, n.Consensus.ENR)
	if err != nil {
		return types.RosterEntry{}, errors.Wrapf(err, "failed to decode enr of %s", name)
	}

	// tcp endpoint first, then udp. They share the same ip field in the record
	ip := record.IP()
	if ip == nil || (record.TCP() == 0 && record.UDP() == 0) {
		return types.RosterEntry{}, errors.Wrapf(ErrNoAddress, "node %s", name)
	}

	peerID, err := resolvePeerID(n.Consensus.PeerID, record)
	if err != nil {
		return types.RosterEntry{}, errors.Wrapf(err, "node %s", name)
	}

	return types.RosterEntry{
		Name:      name,
		NodeID:    record.ID(),
		PeerID:    peerID,
		IP:        ip.String(),
		Client:    n.Consensus.Client,
		BeaconURI: n.Consensus.BeaconURI,
	}, nil
}

// resolvePeerID validates the declared peer id, or derives it from the enr public key when missing
func resolvePeerID(declared string, record *enode.Node) (string, error) {
	if declared != "" {
		id, err := peer.Decode(declared)
		if err != nil {
			return "", errors.Wrapf(err, "invalid peer id %s", declared)
		}
		return id.String(), nil
	}
	return PeerIDFromENR(record)
}

// PeerIDFromENR computes the libp2p identity of a node out of its secp256k1 discovery key
func PeerIDFromENR(record *enode.Node) (string, error) {
	pub := record.Pubkey()
	if pub == nil {
		return "", errors.New("enr has no secp256k1 public key")
	}
	pk, err := libp2pcrypto.UnmarshalSecp256k1PublicKey(gethcrypto.CompressPubkey(pub))
	if err != nil {
		return "", errors.Wrap(err, "failed to convert enr public key")
	}
	id, err := peer.IDFromPublicKey(pk)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive peer id")
	}
	return id.String(), nil
}
