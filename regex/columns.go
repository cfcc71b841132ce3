package regex

import (
	"regexp"
	"time"

	"github.com/ylacancellera/beacon-log-explainer/types"
)

func init() {
	setType(types.ColumnsRegexType, ColumnsMap)
}

var ColumnsMap = RegexMap{
	// 2024-10-02 18:35:30.117+04:00 | nioEventLoopGroup-3-2 | DEBUG | SimpleSidecarRetriever | Error requesting data column sidecar DataColumnIdentifier{block_root=0x5e03..., index=12} from 0x8a3f...
	"RegexColumnRequestError": &LogRegex{
		Regex: regexp.MustCompile(`Error requesting data column sidecar DataColumnIdentifier`),
		InternalRegex: regexp.MustCompile(`Error requesting data column sidecar DataColumnIdentifier\{block_root=` + Bytes32Pattern.Group(groupRoot) +
			`, index=` + UintPattern.Group(groupColumnIndex) + `\} from ` + NodeIDPattern.Group(groupNodeID)),
		Handler: func(internalRegex *regexp.Regexp, r []string, date time.Time) (types.Event, error) {
			root, err := Bytes32Pattern.Get(internalRegex, r, groupRoot)
			if err != nil {
				return nil, err
			}
			index, err := UintPattern.Get(internalRegex, r, groupColumnIndex)
			if err != nil {
				return nil, err
			}
			nodeID, err := NodeIDPattern.Get(internalRegex, r, groupNodeID)
			if err != nil {
				return nil, err
			}
			return types.MissingColumn{
				Time:        date,
				Peer:        types.NodeIdentifier{Value: nodeID, Form: types.NodeIDHex},
				BlockRoot:   root,
				ColumnIndex: index,
			}, nil
		},
		Verbosity: types.Info,
	},
}
