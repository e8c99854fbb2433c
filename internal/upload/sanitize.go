package upload

import (
	"runtime"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var windowsDeviceNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// SanitizeFilename returns an ASCII-only name that is safe to join onto a
// directory. The result may be empty. Backslash only separates path
// components, and device names only get prefixed, on Windows.
func SanitizeFilename(name string) string {
	return sanitizeFilename(name, runtime.GOOS == "windows")
}

func sanitizeFilename(name string, windows bool) string {
	folded := make([]rune, 0, len(name))
	for _, r := range norm.NFKD.String(name) {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '/' || (windows && r == '\\') {
			r = ' '
		}
		folded = append(folded, r)
	}

	joined := strings.Join(strings.Fields(string(folded)), "_")

	var b strings.Builder
	for _, r := range joined {
		if isSafeRune(r) {
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), "._")

	if windows && out != "" {
		stem := strings.ToUpper(strings.SplitN(out, ".", 2)[0])
		if _, ok := windowsDeviceNames[stem]; ok {
			out = "_" + out
		}
	}
	return out
}

func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '.', r == '-':
		return true
	}
	return false
}
