package log

import "strings"

type Level int

const (
	TRACE = Level(iota)
	DEBUG
	INFO
	WARN
	ERROR
	FATAL

	QUIET
)

const colorReset = "\033[0m"

var levels = [...]struct {
	label string
	color string
}{
	TRACE: {label: "TRACE", color: "\033[38m"},
	DEBUG: {label: "DEBUG", color: "\033[37m"},
	INFO:  {label: "INFO", color: "\033[36m"},
	WARN:  {label: "WARN", color: "\033[33m"},
	ERROR: {label: "ERROR", color: "\033[31m"},
	FATAL: {label: "FATAL", color: "\033[41m"},
	QUIET: {label: "QUIET", color: colorReset},
}

func (l Level) valid() bool {
	return l >= TRACE && l <= QUIET
}

func (l Level) String() string {
	if !l.valid() {
		l = QUIET
	}

	return levels[l].label
}

// Color returns terminal escape sequence of the level
func (l Level) Color() string {
	if !l.valid() {
		l = QUIET
	}

	return levels[l].color
}

// FromString parses level label case-insensitively, unknown labels are QUIET
func FromString(s string) Level {
	for l := range levels {
		if strings.EqualFold(levels[l].label, s) {
			return Level(l)
		}
	}

	return QUIET
}
