package regex

import (
	"regexp"
	"time"

	"github.com/ylacancellera/beacon-log-explainer/types"
)

func init() {
	setType(types.RPCRegexType, RPCMap)
}

type batch struct {
	count  uint64
	suffix string
	key    int64
}

func batchFromSubmatch(internalRegex *regexp.Regexp, r []string) (batch, error) {
	var (
		b   batch
		err error
	)
	b.count, err = UintPattern.Get(internalRegex, r, groupCount)
	if err != nil {
		return b, err
	}
	b.suffix, err = HexSuffixPattern.Get(internalRegex, r, groupNodeSuffix)
	if err != nil {
		return b, err
	}
	b.key, err = IntPattern.Get(internalRegex, r, groupHash)
	return b, err
}

func batchRegex(verb string) *regexp.Regexp {
	return regexp.MustCompile(`\[nyota\] ` + verb + ` batch of ` + UintPattern.Group(groupCount) + ` from 0x\.\.\.` + HexSuffixPattern.Group(groupNodeSuffix) + `, hash=` + IntPattern.Group(groupHash))
}

var RPCMap = RegexMap{
	// 2024-10-02 18:35:21.202+04:00 | nioEventLoopGroup-3-2 | DEBUG | das-nyota | [nyota] Requesting batch of 4 from 0x...ab12, hash=-1437892313
	"RegexBatchRequest": &LogRegex{
		Regex:         regexp.MustCompile(`\[nyota\] Requesting batch of`),
		InternalRegex: batchRegex("Requesting"),
		Handler: func(internalRegex *regexp.Regexp, r []string, date time.Time) (types.Event, error) {
			b, err := batchFromSubmatch(internalRegex, r)
			if err != nil {
				return nil, err
			}
			return types.OutboundRequest{Time: date, Key: b.key, PeerSuffix: b.suffix, RequestedCount: b.count}, nil
		},
		Verbosity: types.DebugEvents,
	},

	// 2024-10-02 18:35:21.377+04:00 | nioEventLoopGroup-3-2 | DEBUG | das-nyota | [nyota] Response batch of 3 from 0x...ab12, hash=-1437892313
	"RegexBatchResponse": &LogRegex{
		Regex:         regexp.MustCompile(`\[nyota\] Response batch of`),
		InternalRegex: batchRegex("Response"),
		Handler: func(internalRegex *regexp.Regexp, r []string, date time.Time) (types.Event, error) {
			b, err := batchFromSubmatch(internalRegex, r)
			if err != nil {
				return nil, err
			}
			return types.OutboundResponse{Time: date, Key: b.key, PeerSuffix: b.suffix, RespondedCount: b.count}, nil
		},
		Verbosity: types.DebugEvents,
	},
}
