// internal/scan/pattern.go
package scan

import "strings"

// Pattern matches one text line, by prefix (default) or substring.
type Pattern struct {
	Text     string
	Contains bool // substring match instead of line-start prefix
	Fold     bool // case-insensitive

	// KeyDirection matches the "key-direction <digit>" directive family
	// anywhere in the line; Text is ignored when set.
	KeyDirection bool
}

const keyDirectionLit = "key-direction "

// Match reports whether line matches p.
func (p Pattern) Match(line string) bool {
	if p.KeyDirection {
		return matchKeyDirection(line)
	}
	text := p.Text
	if p.Fold {
		line = strings.ToLower(line)
		text = strings.ToLower(text)
	}
	if p.Contains {
		return strings.Contains(line, text)
	}
	return strings.HasPrefix(line, text)
}

// matchKeyDirection reports whether line contains the literal
// "key-direction " followed by exactly one ASCII digit.
func matchKeyDirection(line string) bool {
	for i := 0; ; {
		j := strings.Index(line[i:], keyDirectionLit)
		if j < 0 {
			return false
		}
		k := i + j + len(keyDirectionLit)
		if k < len(line) && isDigit(line[k]) {
			if k+1 >= len(line) || !isDigit(line[k+1]) {
				return true
			}
		}
		i += j + 1
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// DefaultStartPatterns returns a fresh copy of the built-in start markers.
// Start markers anchor at line start.
func DefaultStartPatterns() []Pattern {
	return []Pattern{
		{Text: "client"},
		{Text: "# OpenVPN"},
		{Text: "dev tun"},
	}
}

// DefaultEndPatterns returns a fresh copy of the built-in end markers.
// End markers match anywhere in the line.
func DefaultEndPatterns() []Pattern {
	return []Pattern{
		{Text: "</tls-auth>", Contains: true},
		{Text: "</ca>", Contains: true},
		{Text: "</cert>", Contains: true},
		{Text: "</key>", Contains: true},
		{KeyDirection: true},
	}
}

func matchAny(ps []Pattern, line string) bool {
	for _, p := range ps {
		if p.Match(line) {
			return true
		}
	}
	return false
}
