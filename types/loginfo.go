package types

import (
	"time"
)

type Verbosity int

const (
	Info Verbosity = iota
	// Detailed is having every anomaly: orphan responses, disconnects without connect, unknown peers
	Detailed
	// DebugEvents includes every extracted event, even the ones that only feed the trackers (block index, sync head)
	DebugEvents
	Debug
)

// LogInfo is to store a single noteworthy event of the log. This is what ends up in the timeline
type LogInfo struct {
	Date      *Date
	Msg       LogDisplayer // what to show
	Log       string       // the raw log
	Source    string       // file the log was read from, empty for stdin
	RegexType RegexType
	RegexUsed string
	Verbosity Verbosity
}

type Date struct {
	Time        time.Time
	DisplayTime string
	Layout      string
}

func NewDate(t time.Time, layout string) Date {
	return Date{
		Time:        t,
		Layout:      layout,
		DisplayTime: t.Format(layout),
	}
}

// LogDisplayer is the handler to generate messages thanks to the roster
// Messages are rendered late so that they are printed with the names known at display time
type LogDisplayer func(*Roster) string

// SimpleDisplayer satisfies LogDisplayer and ignores any roster received
func SimpleDisplayer(s string) LogDisplayer {
	return func(_ *Roster) string { return s }
}
