package types

type RegexType string

var (
	BlocksRegexType  RegexType = "blocks"
	ColumnsRegexType RegexType = "columns"
	RPCRegexType     RegexType = "rpc"
	SyncRegexType    RegexType = "sync"
	PeersRegexType   RegexType = "peers"
)

// AllRegexTypes is in the order lines are fed to the trackers, it is also the column order when displayed
var AllRegexTypes = []RegexType{BlocksRegexType, ColumnsRegexType, RPCRegexType, SyncRegexType, PeersRegexType}
