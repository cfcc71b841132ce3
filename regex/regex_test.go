package regex

import (
	"os"
	"os/exec"
	"testing"

	"github.com/pkg/errors"
	"github.com/ylacancellera/beacon-log-explainer/types"
)

func testActualGrepOnLog(t *testing.T, log string, regex *LogRegex) {
	if _, err := exec.LookPath("grep"); err != nil {
		t.Skip("grep is not available")
	}

	f, err := os.CreateTemp(t.TempDir(), "test_log")
	if err != nil {
		t.Fatalf("failed to create tmp file: %v", err)
	}
	defer f.Close()

	_, err = f.WriteString(log)
	if err != nil {
		t.Fatalf("failed to write in tmp file: %v", err)
	}
	m := RegexMap{"test": regex}

	out, err := exec.Command("grep", "-P", m.Compile()[0], f.Name()).Output()
	if err != nil {
		t.Fatalf("failed to grep in tmp file: %v, using: %s", err, regex.Regex.String())
	}
	if string(out) == "" {
		t.Errorf("empty results when grepping in tmp file: %v, using: %s", err, regex.Regex.String())
	}
}

func TestExtractWithoutTimestamp(t *testing.T) {
	tests := []struct {
		name string
		log  string
	}{
		{
			name: "no separator",
			log:  "internalForkChoiceUpdated forkChoiceState ForkChoiceState{headBlockRoot=0x5e035e2fd515cc248f3ac6cbbf5fd4c749c55c791ca435d2787b69c8d120fb48, headBlockSlot=39005}",
		},
		{
			name: "garbage before separator",
			log:  "yesterday | ForkChoiceState{headBlockRoot=0x5e035e2fd515cc248f3ac6cbbf5fd4c749c55c791ca435d2787b69c8d120fb48, headBlockSlot=39005}",
		},
	}

	for _, test := range tests {
		ev, err := BlocksMap["RegexForkChoiceHead"].Extract(test.log)
		if ev != nil {
			t.Errorf("%s: expected the event to be dropped, got %v", test.name, ev)
		}
		if errors.Cause(err) != ErrNoTimestamp {
			t.Errorf("%s: expected ErrNoTimestamp, got %v", test.name, err)
		}
	}
}

func TestExtractNoMatch(t *testing.T) {
	for key, regex := range AllRegexes() {
		ev, err := regex.Extract("aasdasd sdfsdfgsdg fghfghfgh")
		if ev != nil || err != nil {
			t.Errorf("%s: expected nothing, got %v, %v", key, ev, err)
		}
	}
}

func TestAllRegexesHaveAType(t *testing.T) {
	for key, regex := range AllRegexes() {
		if regex.Type == "" {
			t.Errorf("%s has no type", key)
		}
		if regex.Handler == nil {
			t.Errorf("%s has no handler", key)
		}
	}
	if len(AllRegexes()) != len(BlocksMap)+len(ColumnsMap)+len(RPCMap)+len(SyncMap)+len(PeersMap) {
		t.Errorf("regex keys are expected to be unique across maps")
	}
}

func TestRegexMapKeysAreSorted(t *testing.T) {
	keys := RegexMap{"b": &LogRegex{}, "a": &LogRegex{}, "c": &LogRegex{}}.Keys()
	if keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("keys not sorted: %v", keys)
	}
}

func TestSetVerbosity(t *testing.T) {
	m := RegexMap{"x": &LogRegex{Verbosity: types.Info}}
	SetVerbosity(types.DebugEvents, m)
	if m["x"].Verbosity != types.DebugEvents {
		t.Errorf("verbosity not set")
	}
}
