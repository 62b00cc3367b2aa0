package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/prepaidmate/internal/client/client"
	"github.com/dmitrijs2005/prepaidmate/internal/client/locale"
	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
	"github.com/dmitrijs2005/prepaidmate/internal/client/poller"
	"github.com/dmitrijs2005/prepaidmate/internal/client/render"
	"github.com/dmitrijs2005/prepaidmate/internal/logging"
	"github.com/go-playground/validator/v10"
)

// Backend is the part of the REST client the kiosk needs.
type Backend interface {
	ViewAccount(ctx context.Context, creds models.Credentials) (*models.AccountView, error)
	CreateAccount(ctx context.Context, name, code string, password []byte) error
	ModifyAccount(ctx context.Context, creds models.Credentials, changes client.AccountChanges) error
	ViewTransactions(ctx context.Context, creds models.Credentials) ([]models.Transaction, error)
	AddMoney(ctx context.Context, creds models.Credentials, cents int64) error
	LastUnknownCode(ctx context.Context) (string, error)
}

type flow int

const (
	flowLogin flow = iota
	flowCreate
	flowModify
	flowTopUp
	flowHistory
	flowCount
)

var allFields = []models.Field{
	models.FieldUsername,
	models.FieldPassword,
	models.FieldAccountName,
	models.FieldAccountRFID,
	models.FieldAccountPassword,
}

var accountFields = []models.Field{
	models.FieldAccountName,
	models.FieldAccountRFID,
	models.FieldAccountPassword,
}

type fieldChange struct {
	field models.Field
	value string
}

type Controller struct {
	backend      Backend
	view         View
	format       *render.Formatter
	loc          *locale.Locale
	log          logging.Logger
	validate     *validator.Validate
	pollInterval time.Duration

	mu      sync.Mutex
	panel   models.Panel
	mode    models.AccountMode
	fields  map[models.Field]string
	session models.Credentials
	account *models.AccountView
	txs     []models.Transaction
	rows    []render.Row
	seq     [flowCount]uint64
	scope   *scope
}

type Option func(*Controller)

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func WithLocale(l *locale.Locale) Option {
	return func(c *Controller) { c.loc = l }
}

func WithFormatter(f *render.Formatter) Option {
	return func(c *Controller) { c.format = f }
}

// WithPollInterval sets the RFID auto-fill interval.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) { c.pollInterval = d }
}

// New returns a controller on the Start panel with an empty session. The
// view is not told about the initial panel; call ShowStart for that.
func New(backend Backend, view View, opts ...Option) *Controller {
	c := &Controller{
		backend:      backend,
		view:         view,
		log:          logging.Discard(),
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		pollInterval: poller.DefaultInterval,
		panel:        models.PanelStart,
		mode:         models.AccountModeCreate,
		fields:       make(map[models.Field]string, len(allFields)),
		scope:        newScope(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.loc == nil {
		c.loc = locale.Default()
	}
	if c.format == nil {
		c.format = render.NewFormatter("€", "", c.loc)
	}
	return c
}

func (c *Controller) Panel() models.Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel
}

func (c *Controller) AccountMode() models.AccountMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) Field(f models.Field) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields[f]
}

// SetField stores user input. The view is not notified since it is the
// source of the change.
func (c *Controller) SetField(f models.Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields[f] = value
}

// Session returns a copy of the current credentials.
func (c *Controller) Session() models.Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Clone()
}

// Transactions returns the last fetched history.
func (c *Controller) Transactions() []models.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Transaction, len(c.txs))
	copy(out, c.txs)
	return out
}

// ProductLink returns the lookup URL of the displayed transaction at index.
func (c *Controller) ProductLink(index int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.rows) {
		return "", fmt.Errorf("transaction %d: index out of range", index)
	}
	if c.rows[index].Link == "" {
		return "", ErrNoProduct
	}
	return c.rows[index].Link, nil
}

func (c *Controller) ShowStart(ctx context.Context) {
	c.enterPanel(ctx, models.PanelStart, models.AccountModeCreate)
}

// ShowNewAccount opens the account panel in create mode with empty fields
// and starts RFID auto-fill.
func (c *Controller) ShowNewAccount(ctx context.Context) {
	c.mu.Lock()
	changes := c.setFieldsLocked(accountFields, "")
	c.mu.Unlock()

	c.enterPanel(ctx, models.PanelAccount, models.AccountModeCreate)
	c.notifyFields(changes)
}

// ShowModifyAccount opens the account panel in modify mode, prefilled with
// the session's name and RFID. The RFID poller only fills an empty field.
func (c *Controller) ShowModifyAccount(ctx context.Context) error {
	c.mu.Lock()
	if c.session.Empty() {
		c.mu.Unlock()
		c.view.Alert(c.loc.Sprintf(locale.NotLoggedIn))
		return ErrNotLoggedIn
	}
	changes := []fieldChange{
		c.setFieldLocked(models.FieldAccountName, c.session.Name),
		c.setFieldLocked(models.FieldAccountRFID, c.session.RFID),
		c.setFieldLocked(models.FieldAccountPassword, ""),
	}
	c.mu.Unlock()

	c.enterPanel(ctx, models.PanelAccount, models.AccountModeModify)
	c.notifyFields(changes)
	return nil
}

// ShowDashboard returns to the dashboard of the logged-in user, showing the
// last fetched account and history again without a request.
func (c *Controller) ShowDashboard(ctx context.Context) error {
	c.mu.Lock()
	if c.session.Empty() {
		c.mu.Unlock()
		c.view.Alert(c.loc.Sprintf(locale.NotLoggedIn))
		return ErrNotLoggedIn
	}
	rows := append([]render.Row(nil), c.rows...)
	c.mu.Unlock()

	c.enterPanel(ctx, models.PanelDashboard, models.AccountModeCreate)
	c.FetchBalance()
	c.view.ShowTransactions(rows)
	return nil
}

// Logout forgets the session, wipes the password and drops responses of
// requests still in flight.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.resetSessionLocked()
	changes := c.setFieldsLocked(allFields, "")
	c.mu.Unlock()

	c.enterPanel(ctx, models.PanelStart, models.AccountModeCreate)
	c.view.ClearTransactions()
	c.notifyFields(changes)
	c.view.Notify(c.loc.Sprintf(locale.LoggedOut))
}

// Close stops the panel's background work and wipes the session.
func (c *Controller) Close() {
	c.mu.Lock()
	c.resetSessionLocked()
	prev := c.scope
	c.scope = newScope()
	c.mu.Unlock()

	prev.close()
}

// enterPanel makes p the only visible panel. The previous panel's scope is
// closed, which waits for its poller to exit.
func (c *Controller) enterPanel(ctx context.Context, p models.Panel, mode models.AccountMode) {
	next := newScope()

	c.mu.Lock()
	prev := c.scope
	c.scope = next
	c.panel = p
	c.mode = mode
	c.mu.Unlock()

	prev.close()

	if p == models.PanelAccount {
		rfid := poller.New(c.backend, &rfidField{c: c, scope: next}, c.pollInterval, c.log)
		rfid.Start(ctx)
		next.onClose(rfid.Stop)
	}

	c.log.Debug(ctx, "panel shown", "panel", p.String(), "mode", mode.String())
	c.view.ShowPanel(p, mode)
}

// begin starts a new request of flow f and returns its sequence number.
func (c *Controller) begin(f flow) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq[f]++
	return c.seq[f]
}

func (c *Controller) currentLocked(f flow, n uint64) bool {
	return c.seq[f] == n
}

// resetSessionLocked invalidates all in-flight flows and forgets the user.
func (c *Controller) resetSessionLocked() {
	for i := range c.seq {
		c.seq[i]++
	}
	c.session.Wipe()
	c.account = nil
	c.txs = nil
	c.rows = nil
}

// sessionClone returns a private copy of the credentials, or false when no
// one is logged in.
func (c *Controller) sessionClone() (models.Credentials, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Empty() {
		return models.Credentials{}, false
	}
	return c.session.Clone(), true
}

func (c *Controller) setFieldLocked(f models.Field, value string) fieldChange {
	c.fields[f] = value
	return fieldChange{field: f, value: value}
}

func (c *Controller) setFieldsLocked(fs []models.Field, value string) []fieldChange {
	changes := make([]fieldChange, 0, len(fs))
	for _, f := range fs {
		changes = append(changes, c.setFieldLocked(f, value))
	}
	return changes
}

func (c *Controller) notifyFields(changes []fieldChange) {
	for _, ch := range changes {
		c.view.FieldChanged(ch.field, ch.value)
	}
}

// rfidField is the poller target bound to one account panel scope.
type rfidField struct {
	c     *Controller
	scope *scope
}

func (r *rfidField) Empty() bool {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	return r.c.fields[models.FieldAccountRFID] == ""
}

func (r *rfidField) Fill(code string) bool {
	c := r.c
	c.mu.Lock()
	if c.scope != r.scope || c.fields[models.FieldAccountRFID] != "" {
		c.mu.Unlock()
		return false
	}
	c.fields[models.FieldAccountRFID] = code
	c.mu.Unlock()

	c.view.FieldChanged(models.FieldAccountRFID, code)
	return true
}
