package scanner

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Run feeds codes read from r into Process until r is exhausted or ctx is
// done. Keyboard-wedge readers type the code followed by Enter, so every
// line is one code. Anything but digits is dropped.
func (s *Scanner) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	s.log.Info(ctx, "scanner up and running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return ctx.Err()
				}
			}
			code, dropped := digitsOnly(line)
			if dropped != "" {
				s.log.Warn(ctx, "dropped unexpected input", "input", dropped)
			}
			if code == "" {
				continue
			}
			// failures are announced by Process
			_ = s.Process(ctx, code)
		}
	}
}

// digitsOnly splits line into its digits and everything else.
func digitsOnly(line string) (code, dropped string) {
	var keep, drop strings.Builder
	for _, r := range line {
		if r >= '0' && r <= '9' {
			keep.WriteRune(r)
		} else if r != '\r' {
			drop.WriteRune(r)
		}
	}
	return keep.String(), drop.String()
}
