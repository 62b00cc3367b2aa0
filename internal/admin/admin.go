// Package admin implements the superuser tools: registering a drink and
// resetting an account password.
package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/prepaidmate/internal/client/cli"
	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
	"github.com/dmitrijs2005/prepaidmate/internal/common"
	"github.com/dmitrijs2005/prepaidmate/internal/logging"
	"github.com/go-playground/validator/v10"
)

var ErrAborted = errors.New("aborted")

// Backend is the part of the REST client the admin tools need.
type Backend interface {
	LastUnknownCode(ctx context.Context) (string, error)
	AddDrink(ctx context.Context, superuserPassword string, drink models.Drink) error
	ResetPassword(ctx context.Context, superuserPassword, name string, newPassword []byte) error
}

// prompt seams, replaced in tests
var (
	getSimpleText = cli.GetSimpleText
	getPassword   = cli.GetPassword
)

type Admin struct {
	backend           Backend
	superuserPassword string
	reader            *bufio.Reader
	out               io.Writer
	log               logging.Logger
	validate          *validator.Validate
}

func New(backend Backend, superuserPassword string, in io.Reader, out io.Writer, log logging.Logger) *Admin {
	return &Admin{
		backend:           backend,
		superuserPassword: superuserPassword,
		reader:            bufio.NewReader(in),
		out:               out,
		log:               log,
		validate:          validator.New(validator.WithRequiredStructEnabled()),
	}
}

// AddDrink asks for the drink details and registers it. The barcode defaults
// to the code last scanned without a match, which usually is the new drink.
func (a *Admin) AddDrink(ctx context.Context) error {
	if a.superuserPassword == "" {
		return common.ErrNoSuperuserPassword
	}

	last, err := a.backend.LastUnknownCode(ctx)
	if err != nil {
		a.log.Warn(ctx, "cannot fetch last unknown code", "error", err)
		last = ""
	}

	barcode, err := a.ask("Barcode", last)
	if err != nil {
		return err
	}
	name, err := a.ask("Name", "")
	if err != nil {
		return err
	}
	content, err := a.askInt("Content (in ml)")
	if err != nil {
		return err
	}
	price, err := a.askInt("Price (in cents)")
	if err != nil {
		return err
	}

	d := models.Drink{Name: name, Barcode: barcode, ContentML: int(content), PriceCents: price}
	if err := a.validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}

	fmt.Fprintf(a.out, "%s, %d ml, %d cents, barcode %s\n", d.Name, d.ContentML, d.PriceCents, d.Barcode)
	ok, err := a.ask("Everything correct? (y/n)", "")
	if err != nil {
		return err
	}
	if ok != "y" {
		return ErrAborted
	}

	if err := a.backend.AddDrink(ctx, a.superuserPassword, d); err != nil {
		return err
	}
	a.log.Info(ctx, "drink added", "barcode", d.Barcode, "name", d.Name)
	fmt.Fprintln(a.out, "Drink added successfully")
	return nil
}

// ResetPassword sets a new password for the account name.
func (a *Admin) ResetPassword(ctx context.Context, name string) error {
	if a.superuserPassword == "" {
		return common.ErrNoSuperuserPassword
	}

	pw, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if len(pw) == 0 {
		return fmt.Errorf("%w: empty password", common.ErrValidation)
	}

	if err := a.backend.ResetPassword(ctx, a.superuserPassword, name, pw); err != nil {
		return err
	}
	a.log.Info(ctx, "password reset", "name", name)
	fmt.Fprintf(a.out, "Set password for %q successfully\n", name)
	return nil
}

// ask reads one answer; an empty answer selects def.
func (a *Admin) ask(prompt, def string) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

func (a *Admin) askInt(prompt string) (int64, error) {
	s, err := a.ask(prompt, "")
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: not a number", common.ErrValidation, strings.ToLower(prompt))
	}
	return n, nil
}
