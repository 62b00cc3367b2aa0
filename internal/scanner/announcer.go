package scanner

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/dmitrijs2005/prepaidmate/internal/logging"
)

// Announcer tells the person at the terminal what happened, e.g. through a
// speech synthesizer.
type Announcer interface {
	Announce(ctx context.Context, msg string)
}

// Silent announces nothing. Messages still reach the log.
type Silent struct{}

func (Silent) Announce(context.Context, string) {}

const announceTimeout = 10 * time.Second

// Command runs a shell command for every message. The placeholder {msg} in
// Template is replaced by the shell-quoted message, for example
//
//	espeak -v de {msg}
type Command struct {
	Template string
	Shell    string
	log      logging.Logger
}

// NewAnnouncer returns a Command announcer for template, or Silent when the
// template is empty.
func NewAnnouncer(template string, log logging.Logger) Announcer {
	if strings.TrimSpace(template) == "" {
		return Silent{}
	}
	return &Command{Template: template, Shell: "/bin/sh", log: log}
}

func (c *Command) Announce(ctx context.Context, msg string) {
	ctx, cancel := context.WithTimeout(ctx, announceTimeout)
	defer cancel()

	line := strings.ReplaceAll(c.Template, "{msg}", shellQuote(msg))
	out, err := exec.CommandContext(ctx, c.Shell, "-c", line).CombinedOutput()
	if err != nil && c.log != nil {
		c.log.Warn(ctx, "announce command failed", "error", err, "output", strings.TrimSpace(string(out)))
	}
}

// shellQuote wraps s in single quotes for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
