package types

// LocalTimeline is kept in log order, which is the only ordering we trust
type LocalTimeline []LogInfo

// Filter keeps what should be displayed for a given verbosity and set of regex types.
// An empty list of types means every type
func (t LocalTimeline) Filter(verbosity Verbosity, regexTypes ...RegexType) LocalTimeline {
	filtered := LocalTimeline{}
	for _, li := range t {
		if li.Verbosity >= verbosity {
			continue
		}
		if len(regexTypes) > 0 && !containsRegexType(regexTypes, li.RegexType) {
			continue
		}
		filtered = append(filtered, li)
	}
	return filtered
}

func containsRegexType(s []RegexType, rt RegexType) bool {
	for _, v := range s {
		if v == rt {
			return true
		}
	}
	return false
}
