package admin

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/prepaidmate/internal/client/client"
)

const usage = `Usage:
  admin add-drink
  admin reset-password USER`

var errUsage = errors.New("usage")

// Run executes the command named by args[0] and returns the process exit
// code. Errors are written to errOut.
func Run(ctx context.Context, a *Admin, args []string, errOut io.Writer) int {
	err := dispatch(ctx, a, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(errOut, usage)
	default:
		fmt.Fprintf(errOut, "Error: %s\n", client.UserMessage(err))
	}
	return 1
}

func dispatch(ctx context.Context, a *Admin, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "add-drink":
		if len(args) != 1 {
			return errUsage
		}
		return a.AddDrink(ctx)
	case "reset-password":
		if len(args) != 2 || args[1] == "" {
			return errUsage
		}
		return a.ResetPassword(ctx, args[1])
	default:
		return errUsage
	}
}
