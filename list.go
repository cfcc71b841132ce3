package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/ylacancellera/beacon-log-explainer/display"
	"github.com/ylacancellera/beacon-log-explainer/regex"
	"github.com/ylacancellera/beacon-log-explainer/types"
)

type list struct {
	// Paths is duplicated because it could not work as variadic with kong cli if I set it as CLI object
	Paths   []string `arg:"" optional:"" name:"paths" help:"paths of the log to use, stdin when empty"`
	All     bool     `help:"List everything"`
	Blocks  bool     `help:"List blocks and fork choice heads"`
	Columns bool     `help:"List data columns that could not be retrieved"`
	RPC     bool     `name:"rpc" help:"List batch requests and their responses"`
	Sync    bool     `help:"List sync progress"`
	Peers   bool     `help:"List peer connections and disconnections"`
}

func (l *list) Help() string {
	return `List events, one column per type of event

Usage:
	beacon-log-explainer list --all <list of files>
	beacon-log-explainer list --peers --columns teku.log
	beacon-log-explainer --verbosity 2 list --rpc teku.log.1 teku.log
	`
}

func (l *list) Run() error {

	if !(l.All || l.Blocks || l.Columns || l.RPC || l.Sync || l.Peers) {
		return errors.New("Please select a type of logs to search: --all, or any parameters from: --blocks --columns --rpc --sync --peers")
	}

	toShow := l.regexTypesToShow()

	engine, err := engineFromPaths(l.Paths)
	if err != nil {
		return errors.Wrap(err, "Could not list events")
	}

	display.TimelineCLI(os.Stdout, engine.Timeline().Filter(types.Debug, toShow...), engine.Roster(), CLI.Verbosity)
	return nil
}

// regexTypesToShow also raises what was explicitly asked for to Info, so that it is displayed at default verbosity.
// Every tracker is fed regardless, correlations need the whole log
func (l *list) regexTypesToShow() []types.RegexType {
	if l.All {
		return nil
	}

	toShow := []types.RegexType{}
	selections := []struct {
		selected  bool
		regexType types.RegexType
		regexes   regex.RegexMap
	}{
		{l.Blocks, types.BlocksRegexType, regex.BlocksMap},
		{l.Columns, types.ColumnsRegexType, regex.ColumnsMap},
		{l.RPC, types.RPCRegexType, regex.RPCMap},
		{l.Sync, types.SyncRegexType, regex.SyncMap},
		{l.Peers, types.PeersRegexType, regex.PeersMap},
	}
	for _, s := range selections {
		if !s.selected {
			continue
		}
		regex.SetVerbosity(types.Info, s.regexes)
		toShow = append(toShow, s.regexType)
	}
	return toShow
}
