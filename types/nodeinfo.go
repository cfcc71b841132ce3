package types

type NodeInfo struct {
	Input     string `json:"input"`
	Form      string `json:"form"`
	Name      string `json:"name"`
	NodeID    string `json:"nodeID,omitempty"`
	PeerID    string `json:"peerID,omitempty"`
	IP        string `json:"IP,omitempty"`
	Client    string `json:"client,omitempty"`
	BeaconURI string `json:"beaconURI,omitempty"`
}
