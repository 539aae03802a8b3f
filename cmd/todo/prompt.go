package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// linePrompt asks on out and blocks until a line is read from in.
type linePrompt struct {
	in     *bufio.Reader
	out    io.Writer
	assume bool
}

func (p linePrompt) Confirm(message string) bool {
	if p.assume {
		return true
	}
	fmt.Fprintf(p.out, "%s [y/N] ", message)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "c", "có", "co":
		return true
	}
	return false
}
