package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/prepaidmate/internal/client/locale"
	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
	"github.com/dmitrijs2005/prepaidmate/internal/client/render"
	"github.com/dmitrijs2005/prepaidmate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) panel() models.Panel {
	return a.ctrl.Panel()
}

// Login prompts for username and password and runs the login flow.
func (a *App) Login(ctx context.Context) error {
	name, err := getSimpleText(a.reader, a.loc.Sprintf(locale.PromptUsername), a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.loc.Sprintf(locale.PromptPassword), a.out)
	if err != nil {
		return err
	}

	a.ctrl.SetField(models.FieldUsername, name)
	a.ctrl.SetField(models.FieldPassword, string(password))
	common.WipeByteArray(password)

	return a.ctrl.Login(ctx)
}

// NewAccount opens the account panel and asks for the new account's data
// until it is created or the user gives up.
func (a *App) NewAccount(ctx context.Context) error {
	a.ctrl.ShowNewAccount(ctx)

	for {
		if err := a.fillAccountForm(false); err != nil {
			a.ctrl.ShowStart(ctx)
			return err
		}
		err := a.ctrl.CreateAccount(ctx)
		if err == nil || a.ctrl.Panel() != models.PanelAccount {
			return err
		}
		if !a.retry() {
			a.ctrl.ShowStart(ctx)
			return err
		}
	}
}

// Modify opens the account panel prefilled with the session's data.
func (a *App) Modify(ctx context.Context) error {
	if err := a.ctrl.ShowModifyAccount(ctx); err != nil {
		return err
	}

	for {
		if err := a.fillAccountForm(true); err != nil {
			_ = a.ctrl.ShowDashboard(ctx)
			return err
		}
		err := a.ctrl.ModifyAccount(ctx)
		if err == nil || a.ctrl.Panel() != models.PanelAccount {
			return err
		}
		if !a.retry() {
			_ = a.ctrl.ShowDashboard(ctx)
			return err
		}
	}
}

// fillAccountForm prompts for name, password and RFID card. Empty input
// keeps the current name and card; the card may have been auto-filled
// while the earlier prompts were open.
func (a *App) fillAccountForm(modify bool) error {
	name, err := getSimpleText(a.reader, withDefault(a.loc.Sprintf(locale.PromptName), a.ctrl.Field(models.FieldAccountName)), a.out)
	if err != nil {
		return err
	}
	if name != "" {
		a.ctrl.SetField(models.FieldAccountName, name)
	}

	pwPrompt := locale.PromptPassword
	if modify {
		pwPrompt = locale.PromptNewPassword
	}
	password, err := getPassword(a.reader, a.loc.Sprintf(pwPrompt), a.out)
	if err != nil {
		return err
	}
	a.ctrl.SetField(models.FieldAccountPassword, string(password))
	common.WipeByteArray(password)

	code, err := getSimpleText(a.reader, withDefault(a.loc.Sprintf(locale.PromptRFID), a.ctrl.Field(models.FieldAccountRFID)), a.out)
	if err != nil {
		return err
	}
	if code != "" {
		a.ctrl.SetField(models.FieldAccountRFID, code)
	}
	return nil
}

func (a *App) retry() bool {
	answer, err := getSimpleText(a.reader, a.loc.Sprintf(locale.PromptRetry), a.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "j", "ja":
		return true
	}
	return false
}

// TopUp asks for an amount and adds it to the balance.
func (a *App) TopUp(ctx context.Context) error {
	amount, err := getSimpleText(a.reader, a.loc.Sprintf(locale.PromptAmount), a.out)
	if err != nil {
		return err
	}
	return a.ctrl.AddBalance(ctx, amount)
}

func (a *App) History(ctx context.Context) error {
	return a.ctrl.FetchTransactionHistory(ctx)
}

// Product prints the lookup link of history row arg (1-based) with a QR
// code for phones.
func (a *App) Product(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		a.Alert(fmt.Sprintf("not a row number: %q", arg))
		return err
	}
	link, err := a.ctrl.ProductLink(n - 1)
	if err != nil {
		a.Alert(err.Error())
		return err
	}

	a.printLine(link)
	qr, err := render.QR(link)
	if err != nil {
		a.log.Warn(ctx, "rendering qr code failed", "error", err)
		return nil
	}
	a.printLine(qr)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.ctrl.Logout(ctx)
	return nil
}
