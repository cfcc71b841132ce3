package main

import (
	"bufio"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/ylacancellera/beacon-log-explainer/regex"
	"github.com/ylacancellera/beacon-log-explainer/tracker"
)

const testRootA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func testDate(t *testing.T, s string) *time.Time {
	d, err := time.Parse(regex.DateLayouts[0], s)
	if err != nil {
		t.Fatalf("failed to parse %s: %v", s, err)
	}
	return &d
}

var testLog = strings.Join([]string{
	"2024-10-02 17:59:59.000+04:00 | TimeTick-1 | INFO  | teku-status-log | Syncing     *** Target slot: 100, Head slot: 10, Remaining slots: 90",
	"\tat tech.pegasys.teku.SomeClass.method(SomeClass.java:42)",
	"2024-10-02 18:00:01.000+04:00 | TimeTick-1 | INFO  | teku-status-log | Syncing     *** Target slot: 100, Head slot: 20, Remaining slots: 80",
	"2024-10-02 18:00:02.000+04:00 | forkChoiceNotifier-async-0 | DEBUG | ForkChoiceNotifierImpl | ForkChoiceState{headBlockRoot=" + testRootA + ", headBlockSlot=21}",
}, "\n")

func TestIterateOnResults(t *testing.T) {
	tests := []struct {
		name          string
		since, until  string
		maxHeadSlot   uint64
		expectedStop  bool
		expectedLines int
		expectedHead  uint64
		expectedRoots int
	}{
		{
			name:          "everything",
			expectedLines: 4,
			expectedHead:  20,
			expectedRoots: 1,
		},
		{
			name:          "since skips earlier lines, and lines without date until a dated one is kept",
			since:         "2024-10-02 18:00:00.500+04:00",
			expectedLines: 2,
			expectedHead:  20,
			expectedRoots: 1,
		},
		{
			name:          "until stops the stream",
			until:         "2024-10-02 18:00:01.500+04:00",
			expectedStop:  true,
			expectedLines: 3,
			expectedHead:  20,
		},
		{
			name:          "head slot limit stops the stream",
			maxHeadSlot:   20,
			expectedStop:  true,
			expectedLines: 3,
			expectedHead:  20,
		},
		{
			name:          "head slot limit reached on the first line kept",
			since:         "2024-10-02 18:00:00.500+04:00",
			maxHeadSlot:   10,
			expectedStop:  true,
			expectedLines: 1,
			expectedHead:  20,
		},
	}

	for _, test := range tests {
		var since, until *time.Time
		if test.since != "" {
			since = testDate(t, test.since)
		}
		if test.until != "" {
			until = testDate(t, test.until)
		}
		extr := newExtractor("", since, until)
		extr.maxHeadSlot = test.maxHeadSlot

		engine := tracker.NewEngine(testRoster())
		stop, err := extr.iterateOnResults(bufio.NewScanner(strings.NewReader(testLog)), engine)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if stop != test.expectedStop {
			t.Errorf("%s: stop: %t, expected: %t", test.name, stop, test.expectedStop)
		}
		if lines := engine.Counters().Lines; lines != test.expectedLines {
			t.Errorf("%s: lines: %d, expected: %d", test.name, lines, test.expectedLines)
		}
		if head := engine.Sync().CurrentHeadSlot(); head != test.expectedHead {
			t.Errorf("%s: head slot: %d, expected: %d", test.name, head, test.expectedHead)
		}
		if roots := engine.Blocks().RootCount(); roots != test.expectedRoots {
			t.Errorf("%s: roots: %d, expected: %d", test.name, roots, test.expectedRoots)
		}
	}
}

func TestFeedWithGrepStopsOnTooLongLine(t *testing.T) {
	if _, err := exec.LookPath("grep"); err != nil {
		t.Skip("grep is not available")
	}

	path := filepath.Join(t.TempDir(), "teku.log")
	long := "2024-10-02 18:00:00.000+04:00 | x | DEBUG | y | headBlockRoot=0x" + strings.Repeat("a", 5*1024*1024)
	content := long + "\n" + strings.Repeat(testLog+"\n", 2000)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write log: %v", err)
	}

	extr := newExtractor(path, nil, nil)
	extr.grep = true

	done := make(chan error, 1)
	go func() {
		_, err := extr.feed(tracker.NewEngine(testRoster()))
		done <- err
	}()

	select {
	case err := <-done:
		if errors.Cause(err) != bufio.ErrTooLong {
			t.Errorf("expected bufio.ErrTooLong, got %v", err)
		}
	case <-time.After(30 * time.Second):
		t.Fatalf("feed did not return, grep was left blocked on its output")
	}
}
