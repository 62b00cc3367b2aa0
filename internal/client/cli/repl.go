package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
)

// printFn and printlnFn are test seams for REPL output.
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

// execIface is what the REPL drives: the visible panel, which decides the
// accepted commands, and one action per kiosk button of the Start and
// Dashboard panels.
type execIface interface {
	panel() models.Panel
	Login(ctx context.Context) error
	NewAccount(ctx context.Context) error
	TopUp(ctx context.Context) error
	History(ctx context.Context) error
	Modify(ctx context.Context) error
	Product(ctx context.Context, arg string) error
	Logout(ctx context.Context) error
}

const (
	helpStart     = "Available commands: <Enter>/login, new, help, exit"
	helpDashboard = "Available commands: topup, history, modify, product <n>, logout, help, exit"
)

// runREPL reads commands line by line and dispatches them to a according
// to the visible panel. An empty line on the Start panel logs in, like the
// Enter key on the login form. Errors returned by handlers are ignored here;
// the controller has already shown them. The loop exits on EOF or when the
// user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		printFn(promptFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		panel := a.panel()
		parts := strings.Fields(line)

		if len(parts) == 0 {
			if panel == models.PanelStart {
				_ = a.Login(ctx)
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if panel == models.PanelDashboard {
				printlnFn(helpDashboard)
			} else {
				printlnFn(helpStart)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		switch panel {
		case models.PanelStart:
			switch cmd {
			case "login":
				_ = a.Login(ctx)
			case "new":
				_ = a.NewAccount(ctx)
			default:
				printlnFn("Unknown command:", cmd)
			}

		case models.PanelDashboard:
			switch cmd {
			case "topup":
				_ = a.TopUp(ctx)
			case "history":
				_ = a.History(ctx)
			case "modify":
				_ = a.Modify(ctx)
			case "product":
				if len(args) == 0 {
					printlnFn("Usage: product <n>")
					continue
				}
				_ = a.Product(ctx, args[0])
			case "logout":
				_ = a.Logout(ctx)
			default:
				printlnFn("Unknown command:", cmd)
			}

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
