package regex

import (
	"regexp"
	"time"

	"github.com/ylacancellera/beacon-log-explainer/types"
)

func init() {
	setType(types.SyncRegexType, SyncMap)
}

var SyncMap = RegexMap{
	// 2024-10-02 18:35:24.001+04:00 | TimeTick-1 | INFO  | teku-status-log | Syncing     *** Target slot: 39100, Head slot: 39005, Remaining slots: 95, Connected peers: 12
	"RegexSyncingHead": &LogRegex{
		Regex:         regexp.MustCompile(`Syncing +\*\*\* Target slot`),
		InternalRegex: regexp.MustCompile(`Syncing +\*\*\* Target slot: ` + UintPattern.Group(groupTargetSlot) + `, Head slot: ` + UintPattern.Group(groupHeadSlot)),
		Handler: func(internalRegex *regexp.Regexp, r []string, date time.Time) (types.Event, error) {
			target, err := UintPattern.Get(internalRegex, r, groupTargetSlot)
			if err != nil {
				return nil, err
			}
			head, err := UintPattern.Get(internalRegex, r, groupHeadSlot)
			if err != nil {
				return nil, err
			}
			return types.SyncHead{Time: date, HeadSlot: head, TargetSlot: target}, nil
		},
		Verbosity: types.DebugEvents,
	},
}
