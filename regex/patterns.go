package regex

import (
	"net/netip"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Pattern is a reusable token: the text to match, and how to convert it once matched
type Pattern[T any] struct {
	Regex string
	Parse func(string) (T, error)
}

func (p Pattern[T]) String() string {
	return p.Regex
}

// Group wraps the pattern in a named capture group, to be composed in event regexes
func (p Pattern[T]) Group(name string) string {
	return "(?P<" + name + ">" + p.Regex + ")"
}

// Get converts the named group of a submatch
func (p Pattern[T]) Get(internalRegex *regexp.Regexp, submatches []string, name string) (T, error) {
	var zero T
	idx := internalRegex.SubexpIndex(name)
	if idx < 0 || idx >= len(submatches) {
		return zero, errors.Wrapf(ErrMalformed, "no group %s in %s", name, internalRegex.String())
	}
	v, err := p.Parse(submatches[idx])
	if err != nil {
		return zero, errors.Wrapf(ErrMalformed, "%s=%q: %v", name, submatches[idx], err)
	}
	return v, nil
}

var (
	IntPattern = Pattern[int64]{
		Regex: `-?\d+`,
		Parse: func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) },
	}
	UintPattern = Pattern[uint64]{
		Regex: `\d+`,
		Parse: func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) },
	}
	Bytes32Pattern = Pattern[common.Hash]{
		Regex: `0x[0-9a-fA-F]{64}`,
		Parse: func(s string) (common.Hash, error) { return common.HexToHash(s), nil },
	}
	// NodeIDPattern is a 32 bytes node id kept as text, the roster decodes it
	NodeIDPattern = Pattern[string]{
		Regex: `0x[0-9a-fA-F]{64}`,
		Parse: func(s string) (string, error) { return strings.ToLower(s), nil },
	}
	HexSuffixPattern = Pattern[string]{
		Regex: `[0-9a-fA-F]+`,
		Parse: func(s string) (string, error) { return strings.ToLower(s), nil },
	}
	IPv4Pattern = Pattern[string]{
		Regex: `\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`,
		// an address netip refuses (leading zeros, octet above 255) is kept as logged:
		// it will not resolve, and is displayed as is
		Parse: func(s string) (string, error) {
			addr, err := netip.ParseAddr(s)
			if err != nil {
				return s, nil
			}
			return addr.String(), nil
		},
	}
	// secp256k1 peer ids all start with 16U once base58 encoded
	PeerIDPattern = Pattern[string]{
		Regex: `16U[1-9A-HJ-NP-Za-km-z]+`,
		Parse: func(s string) (string, error) { return s, nil },
	}
)
