package main

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ylacancellera/beacon-log-explainer/inventory"
	"github.com/ylacancellera/beacon-log-explainer/regex"
	"github.com/ylacancellera/beacon-log-explainer/tracker"
	"github.com/ylacancellera/beacon-log-explainer/types"
	"github.com/ylacancellera/beacon-log-explainer/utils"
)

var CLI struct {
	NoColor   bool
	Since     *time.Time      `format:"2006-01-02 15:04:05.000Z07:00" help:"Only handle lines after this date, you can copy-paste a date from the beacon node log"`
	Until     *time.Time      `format:"2006-01-02 15:04:05.000Z07:00" help:"Only handle lines before this date, you can copy-paste a date from the beacon node log"`
	Verbosity types.Verbosity `default:"1" help:"0: Info, 1: Detailed, 2: DebugEvents (every event the trackers used), 3: Debug (internal tool debug)"`
	Config    kong.ConfigFlag `help:"JSON file holding default values for flags"`

	InventoryURL     string        `default:"${inventory_url}" env:"INVENTORY_URL" help:"Devnet inventory used to name nodes"`
	InventoryFile    string        `type:"existingfile" help:"Local copy of the devnet inventory, takes precedence over --inventory-url"`
	InventoryTimeout time.Duration `default:"30s" help:"Timeout to download the inventory"`

	Grep        bool   `help:"Prefilter files with grep -P. Faster on large logs, requires grep"`
	MaxHeadSlot uint64 `help:"Stop reading once the sync head reached this slot. 0 reads everything"`

	Stats     stats        `cmd:""`
	List      list         `cmd:""`
	Whois     whois        `cmd:""`
	Sed       sed          `cmd:""`
	Inventory inventoryCmd `cmd:"" name:"inventory"`
	Ctx       ctx          `cmd:""`
	RegexList regexList    `cmd:""`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("beacon-log-explainer"),
		kong.Description("An utility to correlate beacon node logs: blocks, column requests, peer connections"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.beacon-log-explainer.json"),
		kong.Vars{"inventory_url": inventory.DefaultURL},
	)

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if CLI.Verbosity == types.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	utils.SkipColor = CLI.NoColor
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// loadRoster is required before reading any log: every identifier is displayed through it
func loadRoster() (*types.Roster, error) {
	if CLI.InventoryFile != "" {
		return inventory.Load(CLI.InventoryFile)
	}

	ctx, cancel := context.WithTimeout(context.Background(), CLI.InventoryTimeout)
	defer cancel()
	return inventory.Fetch(ctx, &http.Client{}, CLI.InventoryURL)
}

// engineFromPaths reads every path in order as one stream.
// No path means stdin
func engineFromPaths(paths []string) (*tracker.Engine, error) {
	roster, err := loadRoster()
	if err != nil {
		return nil, errors.Wrap(err, "could not load the node roster")
	}

	engine := tracker.NewEngine(roster, tracker.WithVerbosity(CLI.Verbosity))
	if len(paths) == 0 {
		paths = []string{""}
	}

	found := false
	for _, path := range paths {
		extr := newExtractor(path, CLI.Since, CLI.Until)

		stop, err := extr.feed(engine)
		if err != nil {
			extr.logger.Warn().Err(err).Msg("Search failed")
			continue
		}
		found = true
		if stop {
			break
		}
	}
	if !found {
		return nil, errors.New("Could not find data")
	}
	return engine, nil
}

type extractor struct {
	path         string
	since, until *time.Time
	grep         bool
	maxHeadSlot  uint64
	logger       zerolog.Logger
}

func newExtractor(path string, since, until *time.Time) extractor {
	e := extractor{path: path, since: since, until: until, grep: CLI.Grep && path != "", maxHeadSlot: CLI.MaxHeadSlot}
	e.logger = log.With().Str("component", "extractor").Str("path", e.path).Logger()
	if since != nil {
		e.logger = e.logger.With().Time("since", *e.since).Logger()
	}
	if until != nil {
		e.logger = e.logger.With().Time("until", *e.until).Logger()
	}

	return e
}

// feed sends every line of the file to the engine.
// stop is true when nothing after this file should be read: until reached, or the head slot limit
func (e *extractor) feed(engine *tracker.Engine) (bool, error) {
	if e.path == "" {
		engine.SetSource("")
		return e.iterateOnResults(bufio.NewScanner(os.Stdin), engine)
	}
	engine.SetSource(filepath.Base(e.path))

	if !e.grep {
		f, err := os.Open(e.path)
		if err != nil {
			return false, errors.Wrapf(err, "failed to open %s", e.path)
		}
		defer f.Close()
		return e.iterateOnResults(bufio.NewScanner(f), engine)
	}

	/*
		grep is only a prefilter: every regex is still applied on what it returns.
		It is single-threaded, but we rely on the log order anyway,
		and it is much faster than scanning every line in go when most of them are irrelevant
	*/
	grepRegex := regex.AllRegexes().Compile()[0]
	e.logger.Debug().Str("grepArg", grepRegex).Msg("")

	cmd := exec.Command("grep", "-P", grepRegex, e.path)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return false, errors.Wrapf(err, "failed to search in %s", e.path)
	}
	err = cmd.Start()
	if err != nil {
		return false, errors.Wrapf(err, "failed to search in %s", e.path)
	}

	stop, err := e.iterateOnResults(bufio.NewScanner(out), engine)
	if stop || err != nil {
		// we may not have read everything, grep would block on a full pipe
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	var exitErr *exec.ExitError
	// grep exits 1 when nothing matched
	if waitErr != nil && !stop && err == nil && !(errors.As(waitErr, &exitErr) && exitErr.ExitCode() == 1) {
		e.logger.Warn().Err(waitErr).Msg("grep failed")
	}
	return stop, err
}

func (e *extractor) iterateOnResults(s *bufio.Scanner, engine *tracker.Engine) (bool, error) {
	// some lines hold full json payloads
	s.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var recentEnough bool
	for s.Scan() {
		line := s.Text()

		date, _, ok := regex.SearchDateFromLog(line)

		// If it's recentEnough, it means we already validated a log: every next logs necessarily happened later
		if !recentEnough && e.since != nil && (!ok || e.since.After(date)) {
			continue
		}
		if ok && e.until != nil && e.until.Before(date) {
			return true, nil
		}
		recentEnough = true

		engine.OnLine(line)

		if e.maxHeadSlot > 0 && engine.Sync().CurrentHeadSlot() >= e.maxHeadSlot {
			e.logger.Info().Uint64("headSlot", engine.Sync().CurrentHeadSlot()).Msg("Head slot limit reached")
			return true, nil
		}
	}
	return false, errors.Wrap(s.Err(), "failed to read log")
}
