package display

import (
	"fmt"
	"io"
	"time"

	"github.com/Ladicle/tabwriter"
	"github.com/ylacancellera/beacon-log-explainer/tracker"
	"github.com/ylacancellera/beacon-log-explainer/types"
	"github.com/ylacancellera/beacon-log-explainer/utils"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 8, 8, 3, ' ', 0)
}

func OutboundStatsCLI(out io.Writer, stats tracker.OutboundStats) {
	fmt.Fprintf(out, "outbound requests: %d, completed: %d, unresponded: %d, orphan responses: %d, overwritten: %d\n",
		stats.Total, stats.Completed, stats.Unresponded, stats.Orphans, stats.Overwritten)
	if len(stats.Peers) == 0 {
		return
	}

	w := newTable(out)
	defer w.Flush()

	fmt.Fprintln(w, "peer\trequests\tcolumns\tmean latency\t")
	for _, p := range stats.Peers {
		ratio := fmt.Sprintf("%d/%d", p.RespondedColumns, p.RequestedColumns)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t\n", p.Name, p.Requests,
			utils.PaintRatio(ratio, p.RespondedColumns, p.RequestedColumns),
			p.MeanLatency().Round(time.Millisecond))
	}
}

func DisconnectsCLI(out io.Writer, observations []tracker.DisconnectObservation) {
	if len(observations) == 0 {
		return
	}
	w := newTable(out)
	defer w.Flush()

	fmt.Fprintln(w, "date\tpeer\torigin\treason\tsession\tconnects\t")
	for _, o := range observations {
		reason := o.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t\n",
			o.Time.Format(time.RFC3339Nano), o.Name,
			utils.PaintForOrigin(o.Origin.String(), o.Origin.String()),
			reason, o.Duration, o.TotalConnects)
	}
}

func MissingColumnsCLI(out io.Writer, misses []tracker.PeerMisses) {
	if len(misses) == 0 {
		return
	}
	w := newTable(out)
	defer w.Flush()

	fmt.Fprintln(w, "peer\tmissing columns\t")
	for _, m := range misses {
		fmt.Fprintf(w, "%s\t%d\t\n", m.Name, m.Misses)
	}
}

func RosterCLI(out io.Writer, roster *types.Roster) {
	w := newTable(out)
	defer w.Flush()

	fmt.Fprintln(w, "name\tclient\tnode id\tpeer id\tip\t")
	for _, e := range roster.Entries() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", e.Name, e.Client, utils.ShortHex(e.NodeID.String(), 4), e.PeerID, e.IP)
	}
}
