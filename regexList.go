package main

import (
	"fmt"
	"os"

	"github.com/Ladicle/tabwriter"
	"github.com/ylacancellera/beacon-log-explainer/regex"
)

type regexList struct {
	Internal bool `help:"Show the regexes with their named groups instead of the ones used to prefilter"`
}

func (l *regexList) Help() string {
	return "List available regexes"
}

func (l *regexList) Run() error {

	allregexes := regex.AllRegexes()
	w := tabwriter.NewWriter(os.Stdout, 8, 8, 3, ' ', 0)
	defer w.Flush()

	for _, key := range allregexes.Keys() {
		r := allregexes[key]
		pattern := r.Regex.String()
		if l.Internal && r.InternalRegex != nil {
			pattern = r.InternalRegex.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", key, r.Type, pattern)
	}
	return nil
}
