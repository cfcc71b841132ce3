package display

import (
	"fmt"
	"io"
	"log"
	"strings"

	// regular tabwriter do not work with color, this is a forked versions that ignores color special characters
	"github.com/Ladicle/tabwriter"
	"github.com/ylacancellera/beacon-log-explainer/types"
	"github.com/ylacancellera/beacon-log-explainer/utils"
)

// TimelineCLI print a timeline to the terminal using tabulated format
// Each family of events has its own column, so that block, rpc and peer events can be followed separately
func TimelineCLI(out io.Writer, timeline types.LocalTimeline, roster *types.Roster, verbosity types.Verbosity) {

	timeline = timeline.Filter(verbosity)
	keys := columnKeys(timeline)

	w := tabwriter.NewWriter(out, 8, 8, 3, ' ', tabwriter.DiscardEmptyColumns)
	defer w.Flush()

	// header
	fmt.Fprintln(w, headerTypes(keys))
	fmt.Fprintln(w, separator(keys))

	var (
		args       []string // stuff to print
		linecount  int
		lastSource string
	)
	if len(timeline) > 0 {
		lastSource = timeline[0].Source
	}

	for _, li := range timeline {

		if sep := sourceTransitionSeparator(len(keys), lastSource, li.Source); sep != "" {
			fmt.Fprintln(w, sep)
		}
		lastSource = li.Source

		// Date column
		if li.Date != nil {
			args = []string{li.Date.DisplayTime}
		} else {
			args = []string{""}
		}

		for _, key := range keys {
			if key != li.RegexType || li.Msg == nil {
				// if there are no events, having a | is needed for tabwriter
				args = append(args, "| ")
				continue
			}
			args = append(args, li.Msg(roster))
		}

		_, err := fmt.Fprintln(w, strings.Join(args, "\t")+"\t")
		if err != nil {
			log.Println("Failed to write a line", err)
		}
		linecount++
	}

	// footer
	// only having a header is not fast enough to read when there are too many lines
	if linecount >= 50 {
		fmt.Fprintln(w, separator(keys))
		fmt.Fprintln(w, headerTypes(keys))
	}
}

// columnKeys only keeps the types that have something to display, in a stable order
func columnKeys(timeline types.LocalTimeline) []types.RegexType {
	present := map[types.RegexType]bool{}
	for _, li := range timeline {
		present[li.RegexType] = true
	}
	keys := []types.RegexType{}
	for _, rt := range types.AllRegexTypes {
		if present[rt] {
			keys = append(keys, rt)
		}
	}
	return keys
}

func separator(keys []types.RegexType) string {
	return " \t" + strings.Repeat(" \t", len(keys))
}

func headerTypes(keys []types.RegexType) string {
	header := "date\t"
	for _, key := range keys {
		header += string(key) + "\t"
	}
	return header
}

// sourceTransitionSeparator is useful to highligh a change of file
//
//	beacon.log.2
//	     V
//	beacon.log.1
func sourceTransitionSeparator(columns int, oldSource, source string) string {
	if oldSource == source {
		return ""
	}
	pad := strings.Repeat("\t", columns)
	return "\t" + utils.Paint(utils.BrightBlueText, oldSource) + pad + "\n" +
		"\t" + utils.Paint(utils.BrightBlueText, " V ") + pad + "\n" +
		"\t" + utils.Paint(utils.BrightBlueText, source) + pad
}
