package regex

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ylacancellera/beacon-log-explainer/types"
)

var (
	// ErrNoTimestamp is returned when a line matched an event but carries no usable date.
	// The event is dropped: matching text without a time is noise
	ErrNoTimestamp = errors.New("no timestamp in log line")

	// ErrMalformed is returned when a captured value can not be converted (overflow, bad address)
	ErrMalformed = errors.New("malformed value in log line")
)

type LogRegex struct {
	// Regex is the cheap one, it is also what is sent to grep when prefiltering
	Regex *regexp.Regexp

	// InternalRegex holds the named groups. Regex is used when it is nil
	InternalRegex *regexp.Regexp

	// Handler builds the event from the submatches of InternalRegex.
	// The date has already been extracted from the log prefix
	Handler   func(internalRegex *regexp.Regexp, submatches []string, date time.Time) (types.Event, error)
	Verbosity types.Verbosity
	Type      types.RegexType
}

// Extract never panics. It returns nil, nil when the line is not about this regex
func (l *LogRegex) Extract(log string) (types.Event, error) {
	if !l.Regex.MatchString(log) {
		return nil, nil
	}
	internalRegex := l.InternalRegex
	if internalRegex == nil {
		internalRegex = l.Regex
	}
	r, err := internalRegexSubmatch(internalRegex, log)
	if err != nil {
		return nil, nil
	}

	date, _, ok := SearchDateFromLog(log)
	if !ok {
		return nil, ErrNoTimestamp
	}
	return l.Handler(internalRegex, r, date)
}

type RegexMap map[string]*LogRegex

func (r RegexMap) Merge(r2 RegexMap) RegexMap {
	for key, value := range r2 {
		r[key] = value
	}
	return r
}

// Keys is sorted, so that a line matching several regexes of a map is always handled in the same order
func (r RegexMap) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Compile joins every regex in a single alternation, ready to be sent to grep -P
func (r RegexMap) Compile() []string {
	arr := []string{}
	for _, key := range r.Keys() {
		arr = append(arr, r[key].Regex.String())
	}
	return []string{"(" + strings.Join(arr, "|") + ")"}
}

func setType(t types.RegexType, regexes RegexMap) {
	for _, regex := range regexes {
		regex.Type = t
	}
}

// SetVerbosity accepts any RegexMap
// Some can be useful to feed trackers, but we can choose not to display them
func SetVerbosity(verbosity types.Verbosity, regexes RegexMap) {
	for _, regex := range regexes {
		regex.Verbosity = verbosity
	}
}

func AllRegexes() RegexMap {
	return RegexMap{}.Merge(BlocksMap).Merge(ColumnsMap).Merge(RPCMap).Merge(SyncMap).Merge(PeersMap)
}

func internalRegexSubmatch(regex *regexp.Regexp, log string) ([]string, error) {
	slice := regex.FindStringSubmatch(log)
	if len(slice) == 0 {
		return nil, errors.New("Could not find submatch from log \"" + log + "\" using pattern " + regex.String())
	}
	return slice, nil
}

// general building blocks
// It's later used to identify subgroups easier
var (
	groupSlot        = "slot"
	groupRoot        = "root"
	groupHeadSlot    = "headslot"
	groupTargetSlot  = "targetslot"
	groupCount       = "count"
	groupNodeSuffix  = "nodesuffix"
	groupHash        = "hash"
	groupPeerID      = "peerid"
	groupNodeIP      = "nodeip"
	groupNodeID      = "nodeid"
	groupOrigin      = "origin"
	groupReason      = "reason"
	groupColumnIndex = "colindex"
)
