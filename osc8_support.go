package fstr

import (
	"os"
	"strconv"
	"strings"
)

const (
	osc8Start = "\x1b]8;;"
	osc8End   = "\x1b]8;;\x1b\\"
)

// osc8Open starts a hyperlink to target. Control bytes are dropped so a
// link can never terminate the escape sequence early.
func osc8Open(target string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, target)
	return osc8Start + clean + "\x1b\\"
}

// osc8Terminals lists TERM_PROGRAM values known to render OSC 8 links.
var osc8Terminals = map[string]bool{
	"iTerm.app": true,
	"WezTerm":   true,
	"vscode":    true,
	"ghostty":   true,
}

// DetectOSC8Support reports whether the terminal described by the
// environment likely renders OSC 8 hyperlinks. OSC8=0 forces it off and
// OSC8=1 forces it on.
func DetectOSC8Support() bool {
	return detectOSC8(os.Getenv)
}

func detectOSC8(getenv func(string) string) bool {
	switch getenv("OSC8") {
	case "0":
		return false
	case "1":
		return true
	}
	if getenv("DOMTERM") != "" || getenv("WT_SESSION") != "" {
		return true
	}
	if osc8Terminals[getenv("TERM_PROGRAM")] {
		return true
	}
	if strings.Contains(strings.ToLower(getenv("TERM")), "kitty") {
		return true
	}
	// VTE 0.50 was the first release with hyperlinks.
	if n, err := strconv.Atoi(getenv("VTE_VERSION")); err == nil && n >= 5000 {
		return true
	}
	return false
}
