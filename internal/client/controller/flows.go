package controller

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/prepaidmate/internal/client/client"
	"github.com/dmitrijs2005/prepaidmate/internal/client/locale"
	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
	"github.com/dmitrijs2005/prepaidmate/internal/client/render"
	"github.com/dmitrijs2005/prepaidmate/internal/common"
	"github.com/dmitrijs2005/prepaidmate/internal/moneyx"
)

// modifyForm is the client-side guard of ModifyAccount.
type modifyForm struct {
	NewName     string
	NewCode     string
	NewPassword string `validate:"required"`
}

// Login authenticates with the username and password fields. On success
// the dashboard is shown with balance and history; on failure the error is
// alerted, the session and login fields are cleared and Start is shown.
func (c *Controller) Login(ctx context.Context) error {
	c.mu.Lock()
	creds := models.Credentials{
		Name:     c.fields[models.FieldUsername],
		Password: []byte(c.fields[models.FieldPassword]),
	}
	c.mu.Unlock()

	return c.login(ctx, creds)
}

// login takes ownership of creds.
func (c *Controller) login(ctx context.Context, creds models.Credentials) error {
	n := c.begin(flowLogin)
	av, err := c.backend.ViewAccount(ctx, creds)

	c.mu.Lock()
	if !c.currentLocked(flowLogin, n) {
		c.mu.Unlock()
		creds.Wipe()
		return ErrStaleResponse
	}
	if err != nil {
		c.mu.Unlock()
		creds.Wipe()
		c.failToStart(ctx, err)
		return fmt.Errorf("login: %w", err)
	}

	c.session.Wipe()
	creds.RFID = av.RFID
	c.session = creds
	c.account = av
	change := c.setFieldLocked(models.FieldPassword, "")
	c.mu.Unlock()

	c.log.Info(ctx, "logged in", "account", creds.Name)

	c.enterPanel(ctx, models.PanelDashboard, models.AccountModeCreate)
	c.notifyFields([]fieldChange{change})
	c.FetchBalance()
	return c.FetchTransactionHistory(ctx)
}

// failToStart reports err and resets to a logged-out Start panel.
func (c *Controller) failToStart(ctx context.Context, err error) {
	c.mu.Lock()
	c.session.Wipe()
	c.account = nil
	c.txs = nil
	c.rows = nil
	changes := c.setFieldsLocked([]models.Field{models.FieldUsername, models.FieldPassword}, "")
	c.mu.Unlock()

	c.log.Info(ctx, "request failed, back to start", "error", err)

	c.view.Alert(client.UserMessage(err))
	c.enterPanel(ctx, models.PanelStart, models.AccountModeCreate)
	c.view.ClearTransactions()
	c.notifyFields(changes)
}

// CreateAccount registers a new account from the account panel fields and
// returns to Start without logging in. On failure only the password field
// is cleared.
func (c *Controller) CreateAccount(ctx context.Context) error {
	c.mu.Lock()
	name := c.fields[models.FieldAccountName]
	code := c.fields[models.FieldAccountRFID]
	password := []byte(c.fields[models.FieldAccountPassword])
	c.mu.Unlock()

	n := c.begin(flowCreate)
	err := c.backend.CreateAccount(ctx, name, code, password)
	common.WipeByteArray(password)

	c.mu.Lock()
	if !c.currentLocked(flowCreate, n) {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	if err != nil {
		change := c.setFieldLocked(models.FieldAccountPassword, "")
		c.mu.Unlock()

		c.view.Alert(client.UserMessage(err))
		c.notifyFields([]fieldChange{change})
		return fmt.Errorf("create account: %w", err)
	}
	changes := c.setFieldsLocked(accountFields, "")
	c.mu.Unlock()

	c.log.Info(ctx, "account created", "account", name)

	c.enterPanel(ctx, models.PanelStart, models.AccountModeCreate)
	c.notifyFields(changes)
	c.view.Notify(c.loc.Sprintf(locale.AccountCreated))
	return nil
}

// ModifyAccount sends the account panel fields as new name, code and
// password, authenticated by the session. An empty new password fails
// locally. On success the session ends and Start is shown.
func (c *Controller) ModifyAccount(ctx context.Context) error {
	c.mu.Lock()
	form := modifyForm{
		NewName:     c.fields[models.FieldAccountName],
		NewCode:     c.fields[models.FieldAccountRFID],
		NewPassword: c.fields[models.FieldAccountPassword],
	}
	c.mu.Unlock()

	if err := c.validate.Struct(form); err != nil {
		c.view.Alert(c.loc.Sprintf(locale.PasswordRequired))
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	creds, ok := c.sessionClone()
	if !ok {
		c.view.Alert(c.loc.Sprintf(locale.NotLoggedIn))
		return ErrNotLoggedIn
	}

	changes := client.AccountChanges{
		NewName:     form.NewName,
		NewCode:     form.NewCode,
		NewPassword: []byte(form.NewPassword),
	}

	n := c.begin(flowModify)
	err := c.backend.ModifyAccount(ctx, creds, changes)
	creds.Wipe()
	common.WipeByteArray(changes.NewPassword)

	c.mu.Lock()
	if !c.currentLocked(flowModify, n) {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	if err != nil {
		c.mu.Unlock()
		c.view.Alert(client.UserMessage(err))
		return fmt.Errorf("modify account: %w", err)
	}
	c.resetSessionLocked()
	fields := c.setFieldsLocked(allFields, "")
	c.mu.Unlock()

	c.log.Info(ctx, "account modified", "account", form.NewName)

	c.enterPanel(ctx, models.PanelStart, models.AccountModeCreate)
	c.view.ClearTransactions()
	c.notifyFields(fields)
	c.view.Notify(c.loc.Sprintf(locale.AccountUpdated))
	return nil
}

// AddBalance tops up by input, a decimal amount like "5", "-1,50" or
// "12.00". Invalid input is rejected without a request. On success the
// table is cleared and the login flow runs again to refresh everything.
func (c *Controller) AddBalance(ctx context.Context, input string) error {
	cents, err := moneyx.ParseCents(input)
	if err != nil {
		c.view.Alert(c.loc.Sprintf(locale.InvalidAmount))
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	creds, ok := c.sessionClone()
	if !ok {
		c.view.Alert(c.loc.Sprintf(locale.NotLoggedIn))
		return ErrNotLoggedIn
	}

	n := c.begin(flowTopUp)
	err = c.backend.AddMoney(ctx, creds, cents)

	c.mu.Lock()
	if !c.currentLocked(flowTopUp, n) {
		c.mu.Unlock()
		creds.Wipe()
		return ErrStaleResponse
	}
	if err != nil {
		c.mu.Unlock()
		creds.Wipe()
		c.failToStart(ctx, err)
		return fmt.Errorf("add balance: %w", err)
	}
	c.txs = nil
	c.rows = nil
	c.mu.Unlock()

	c.log.Info(ctx, "balance added", "account", creds.Name, "cents", cents)

	c.view.ClearTransactions()
	if err := c.login(ctx, creds); err != nil {
		return err
	}
	c.view.Notify(c.loc.Sprintf(locale.BalanceAdded))
	return nil
}

// FetchTransactionHistory loads and shows the session's transactions. A
// failure is alerted and leaves the panel as it is.
func (c *Controller) FetchTransactionHistory(ctx context.Context) error {
	creds, ok := c.sessionClone()
	if !ok {
		c.view.Alert(c.loc.Sprintf(locale.NotLoggedIn))
		return ErrNotLoggedIn
	}

	n := c.begin(flowHistory)
	txs, err := c.backend.ViewTransactions(ctx, creds)
	creds.Wipe()

	c.mu.Lock()
	if !c.currentLocked(flowHistory, n) {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	if err != nil {
		c.mu.Unlock()
		c.view.Alert(client.UserMessage(err))
		return fmt.Errorf("transaction history: %w", err)
	}
	c.txs = txs
	c.rows = c.format.Rows(txs)
	rows := append([]render.Row(nil), c.rows...)
	c.mu.Unlock()

	c.view.ShowTransactions(rows)
	return nil
}

// FetchBalance shows name and balance of the last AccountView. It makes no
// request.
func (c *Controller) FetchBalance() {
	c.mu.Lock()
	av := c.account
	c.mu.Unlock()

	if av == nil {
		return
	}
	c.view.ShowAccount(av.DisplayName, c.format.Balance(av.BalanceCents))
}
