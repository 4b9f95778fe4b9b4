package console

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
)

const maxLines = 25
const maxLineLength = 150

// Console keeps the last several lines of text from a log so that a viewer
// can show them.
type Console struct {
	lines      [maxLines]string
	start, end int
	xscroll    int

	input *bufio.Reader
}

func MakeConsole(rdr io.Reader) *Console {
	var c Console
	c.input = bufio.NewReader(rdr)
	return &c
}

func (c *Console) String() string {
	return "console"
}

// Picks up whatever has been written to the log since the last call.
func (c *Console) Think() {
	for line, _, err := c.input.ReadLine(); err == nil; line, _, err = c.input.ReadLine() {
		text := string(line)
		if len(text) > maxLineLength {
			text = text[:maxLineLength]
		}
		c.lines[c.end] = text
		c.end = (c.end + 1) % len(c.lines)
		if c.start == c.end {
			c.start = (c.start + 1) % len(c.lines)
		}
	}
}

// Returns the remembered lines, oldest first, each shifted by the current
// horizontal scroll.
func (c *Console) Lines() []string {
	var ret []string
	add := func(line string) {
		if c.xscroll >= len(line) {
			ret = append(ret, "")
			return
		}
		ret = append(ret, line[c.xscroll:])
	}
	if c.start > c.end {
		for i := c.start; i < len(c.lines); i++ {
			add(c.lines[i])
		}
		for i := 0; i < c.end; i++ {
			add(c.lines[i])
		}
	} else {
		for i := c.start; i < c.end; i++ {
			add(c.lines[i])
		}
	}
	return ret
}

func (c *Console) ScrollRight(n int) {
	c.xscroll += n
	if c.xscroll > maxLineLength {
		c.xscroll = maxLineLength
	}
}

func (c *Console) ScrollLeft(n int) {
	c.xscroll -= n
	if c.xscroll < 0 {
		c.xscroll = 0
	}
}

func (c *Console) ResetScroll() {
	c.xscroll = 0
}

// Guesses the level a log line was written at from slog's text format.
func Severity(line string) slog.Level {
	switch {
	case strings.Contains(line, "level=ERROR"):
		return slog.LevelError
	case strings.Contains(line, "level=WARN"):
		return slog.LevelWarn
	case strings.Contains(line, "level=DEBUG"):
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
