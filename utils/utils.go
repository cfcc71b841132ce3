package utils

import (
	"fmt"
	"strings"
)

// Color is given its own type for safe function signatures
type Color string

// Color codes interpretted by the terminal
// NOTE: all codes must be of the same length or they will throw off the field alignment of tabwriter
const (
	ResetText      Color = "\x1b[0000m"
	RedText        Color = "\x1b[0031m"
	GreenText      Color = "\x1b[0032m"
	YellowText     Color = "\x1b[0033m"
	BlueText       Color = "\x1b[0034m"
	BrightBlueText Color = "\x1b[1;34m"
)

var SkipColor bool

func Paint(color Color, value string) string {
	if SkipColor {
		return value
	}
	return fmt.Sprintf("%v%v%v", color, value, ResetText)
}

// PaintForOrigin colors a disconnect depending on who closed the connection:
// a remote peer dropping us is usually more interesting than our own pruning
func PaintForOrigin(text, origin string) string {
	switch origin {
	case "remote":
		return Paint(YellowText, text)
	case "local":
		return Paint(BlueText, text)
	default:
		return text
	}
}

// PaintRatio is green when everything requested was received, red when nothing was
func PaintRatio(text string, got, want uint64) string {
	switch {
	case want == 0:
		return text
	case got >= want:
		return Paint(GreenText, text)
	case got == 0:
		return Paint(RedText, text)
	default:
		return Paint(YellowText, text)
	}
}

// ShortHex keeps the head and the tail of a long hex string, the way
// beacon nodes abbreviate roots and node ids in their own logs
func ShortHex(s string, keep int) string {
	s = strings.TrimPrefix(s, "0x")
	if len(s) <= 2*keep {
		return "0x" + s
	}
	return "0x" + s[:keep] + ".." + s[len(s)-keep:]
}
