package regex

import (
	"regexp"
	"time"

	"github.com/ylacancellera/beacon-log-explainer/types"
)

func init() {
	setType(types.BlocksRegexType, BlocksMap)
}

// both phrasings end up in the same event, the block tracker does not care which one was logged
func blockSlotRootHandler(internalRegex *regexp.Regexp, r []string, date time.Time) (types.Event, error) {
	slot, err := UintPattern.Get(internalRegex, r, groupSlot)
	if err != nil {
		return nil, err
	}
	root, err := Bytes32Pattern.Get(internalRegex, r, groupRoot)
	if err != nil {
		return nil, err
	}
	return types.BlockSlotRoot{Time: date, Slot: slot, Root: root}, nil
}

var BlocksMap = RegexMap{
	// 2024-10-02 18:34:48.553+04:00 | beaconchain-async-1 | INFO  | das-nyota | checkDataAvailability(): got 0 (of 4) columns from custody (or received by Gossip) for block 39005 (0x5e035e2fd515cc248f3ac6cbbf5fd4c749c55c791ca435d2787b69c8d120fb49), columns: (len: 0) []
	"RegexBlockSlotRoot": &LogRegex{
		Regex:         regexp.MustCompile(`block \d+ \(0x`),
		InternalRegex: regexp.MustCompile(`block ` + UintPattern.Group(groupSlot) + ` \(` + Bytes32Pattern.Group(groupRoot) + `\)`),
		Handler:       blockSlotRootHandler,
		Verbosity:     types.DebugEvents,
	},

	// 2024-10-02 18:35:21.202+04:00 | forkChoiceNotifier-async-0 | DEBUG | ForkChoiceNotifierImpl | internalForkChoiceUpdated forkChoiceState ForkChoiceState{headBlockRoot=0x5e03..., headBlockSlot=39005, headExecutionBlockNumber=23053, ...}
	"RegexForkChoiceHead": &LogRegex{
		Regex:         regexp.MustCompile(`headBlockRoot=0x`),
		InternalRegex: regexp.MustCompile(`headBlockRoot=` + Bytes32Pattern.Group(groupRoot) + `, headBlockSlot=` + UintPattern.Group(groupSlot)),
		Handler:       blockSlotRootHandler,
		Verbosity:     types.DebugEvents,
	},
}
