package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/prepaidmate/internal/client/client"
	"github.com/dmitrijs2005/prepaidmate/internal/client/config"
	"github.com/dmitrijs2005/prepaidmate/internal/client/controller"
	"github.com/dmitrijs2005/prepaidmate/internal/client/locale"
	"github.com/dmitrijs2005/prepaidmate/internal/client/render"
	"github.com/dmitrijs2005/prepaidmate/internal/logging"
)

type App struct {
	ctrl   *controller.Controller
	loc    *locale.Locale
	format *render.Formatter
	log    logging.Logger
	reader *bufio.Reader

	mu     sync.Mutex
	out    io.Writer
	status string
}

// NewApp wires the REST client and the controller for a terminal on
// stdin/stdout.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	loc, err := locale.New(cfg.Locale)
	if err != nil {
		return nil, err
	}

	api, err := client.NewPrepaidClient(cfg.ServerURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	return newApp(cfg, api, loc, log, os.Stdin, os.Stdout), nil
}

func newApp(cfg *config.Config, backend controller.Backend, loc *locale.Locale, log logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		loc:    loc,
		format: render.NewFormatter(cfg.Currency, cfg.ProductSearchHost, loc),
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.ctrl = controller.New(backend, a,
		controller.WithLocale(loc),
		controller.WithFormatter(a.format),
		controller.WithLogger(log),
		controller.WithPollInterval(cfg.RFIDPollInterval),
	)
	return a
}

// Run shows the Start panel and blocks in the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.ctrl.Close()

	a.printLine("Prepaid kiosk (type 'help' for commands)")
	a.ctrl.ShowStart(ctx)
	runREPL(ctx, a, a.prompt, a.reader)
}

func (a *App) prompt() string {
	if s := a.getStatus(); s != "" {
		return fmt.Sprintf("kiosk (%s)> ", s)
	}
	return "kiosk> "
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *App) setStatus(s string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = s
}

// printLine serialises output; the RFID poller prints from its own goroutine.
func (a *App) printLine(s string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintln(a.out, s)
}
