package export

import (
	"unicode/utf8"
)

// Epoch unit boundaries. Anything below maxEpochSeconds is read as
// seconds, below maxEpochMillis as milliseconds, and above that as
// microseconds. The boundaries sit far past any plausible export date
// (year ~5138 in seconds), so real timestamps never straddle them.
const (
	maxEpochSeconds = int64(1e11)
	maxEpochMillis  = int64(1e14)
)

// CoerceEpochMs converts a timestamp of unknown unit (seconds,
// milliseconds or microseconds since the epoch) to milliseconds.
func CoerceEpochMs(ts int64) int64 {
	switch {
	case ts < maxEpochSeconds:
		return ts * 1000
	case ts < maxEpochMillis:
		return ts
	default:
		return ts / 1000
	}
}

// RepairText fixes the exporter's known text mangling: UTF-8 byte
// sequences written out as individual Latin-1 code points, so "café"
// arrives as "cafÃ©". When every rune fits in a byte and those bytes
// form valid UTF-8 containing multi-byte sequences, the reinterpreted
// string is the intended one.
func RepairText(s string) string {
	if s == "" {
		return s
	}

	mangled := false
	for _, r := range s {
		if r > 0xFF {
			return s // genuine non-Latin-1 text, not mangled
		}
		if r > 0x7F {
			mangled = true
		}
	}
	if !mangled {
		return s // pure ASCII
	}

	bytes := make([]byte, 0, len(s))
	for _, r := range s {
		bytes = append(bytes, byte(r))
	}
	if !utf8.Valid(bytes) {
		return s // genuinely Latin-1 accented text, leave it alone
	}
	return string(bytes)
}
