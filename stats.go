package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/ylacancellera/beacon-log-explainer/display"
)

type stats struct {
	Paths []string `arg:"" optional:"" name:"paths" help:"paths of the log to use, stdin when empty"`
}

func (s *stats) Help() string {
	return `Summarize the log: column requests per peer, disconnections, missing columns

Usage:
	beacon-log-explainer stats teku.log
	beacon-log-explainer --max-head-slot 20000 stats teku.log
	zcat teku.log.gz | beacon-log-explainer stats`
}

func (s *stats) Run() error {
	engine, err := engineFromPaths(s.Paths)
	if err != nil {
		return errors.Wrap(err, "Could not compute stats")
	}

	counters := engine.Counters()
	fmt.Printf("lines: %d, events: %d, dropped: %d, anomalies: %d\n", counters.Lines, counters.Events, counters.Dropped, counters.Anomalies)
	fmt.Printf("head slot: %d, target slot: %d, indexed blocks: %d\n",
		engine.Sync().CurrentHeadSlot(), engine.Sync().TargetSlot(), engine.Blocks().RootCount())
	if conflicts := engine.Blocks().ConflictingSlots(); len(conflicts) > 0 {
		fmt.Printf("slots with several roots: %v\n", conflicts)
	}

	fmt.Println()
	display.OutboundStatsCLI(os.Stdout, engine.Outbound().Stats())

	if obs := engine.Connections().Observations(); len(obs) > 0 {
		fmt.Println()
		display.DisconnectsCLI(os.Stdout, obs)
	}
	if misses := engine.Columns().Misses(); len(misses) > 0 {
		fmt.Println()
		display.MissingColumnsCLI(os.Stdout, misses)
	}
	return nil
}
