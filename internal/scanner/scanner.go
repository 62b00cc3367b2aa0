// Package scanner drives a payment terminal made of a barcode reader and an
// RFID reader. The first code identifies the account, the second one the
// product; together they trigger a payment on the backend.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/prepaidmate/internal/client/client"
	"github.com/dmitrijs2005/prepaidmate/internal/client/locale"
	"github.com/dmitrijs2005/prepaidmate/internal/logging"
	"github.com/dmitrijs2005/prepaidmate/internal/moneyx"
)

// DefaultOrderTimeout is how long an account scan waits for the product.
const DefaultOrderTimeout = 15 * time.Second

var (
	ErrUnknownAccount = errors.New("account not recognized")
	ErrPayment        = errors.New("payment failed")
)

// Backend is the part of the REST client a payment terminal needs.
type Backend interface {
	CodeExists(ctx context.Context, code string) (bool, string, error)
	PerformPayment(ctx context.Context, superuserPassword, accountCode, drinkBarcode string) (int64, error)
}

type Mode int

const (
	ModeAccount Mode = iota
	ModeOrder
)

func (m Mode) String() string {
	switch m {
	case ModeAccount:
		return "account"
	case ModeOrder:
		return "order"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

type Scanner struct {
	backend   Backend
	announcer Announcer
	loc       *locale.Locale
	log       logging.Logger
	now       func() time.Time

	superuserPassword string
	resetBarcode      string
	orderTimeout      time.Duration

	mu          sync.Mutex
	mode        Mode
	accountCode string
	orderTime   time.Time
}

type Option func(*Scanner)

func WithLogger(l logging.Logger) Option {
	return func(s *Scanner) { s.log = l }
}

func WithLocale(l *locale.Locale) Option {
	return func(s *Scanner) { s.loc = l }
}

func WithAnnouncer(a Announcer) Option {
	return func(s *Scanner) { s.announcer = a }
}

func WithOrderTimeout(d time.Duration) Option {
	return func(s *Scanner) { s.orderTimeout = d }
}

// WithResetBarcode sets the code that cancels a pending order. Empty
// disables it.
func WithResetBarcode(code string) Option {
	return func(s *Scanner) { s.resetBarcode = code }
}

func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

func New(backend Backend, superuserPassword string, opts ...Option) *Scanner {
	s := &Scanner{
		backend:           backend,
		announcer:         Silent{},
		log:               logging.Discard(),
		now:               time.Now,
		superuserPassword: superuserPassword,
		orderTimeout:      DefaultOrderTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	if s.loc == nil {
		s.loc = locale.Default()
	}
	return s
}

func (s *Scanner) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// AccountCode returns the account waiting for its product, if any.
func (s *Scanner) AccountCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountCode
}

// Process handles one scanned code. Failures are announced and put the
// terminal back into account mode before they are returned.
func (s *Scanner) Process(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.orderTime.IsZero() && s.now().After(s.orderTime.Add(s.orderTimeout)) {
		s.log.Info(ctx, "order timeout, back in account mode", "account_code", s.accountCode)
		s.say(ctx, s.loc.Sprintf(locale.ScanTimeout))
		s.reset()
	}

	var err error
	switch s.mode {
	case ModeAccount:
		err = s.processAccount(ctx, code)
	case ModeOrder:
		err = s.processOrder(ctx, code)
	}
	if err != nil {
		s.fail(ctx, err)
		s.reset()
	}
	return err
}

func (s *Scanner) processAccount(ctx context.Context, code string) error {
	s.log.Info(ctx, "account code scanned", "account_code", code)

	exists, name, err := s.backend.CodeExists(ctx, code)
	if err != nil {
		return fmt.Errorf("verify account: %w", err)
	}
	if !exists {
		return ErrUnknownAccount
	}

	s.say(ctx, s.loc.Sprintf(locale.ScanGreeting, name))
	s.accountCode = code
	s.orderTime = s.now()
	s.mode = ModeOrder
	return nil
}

func (s *Scanner) processOrder(ctx context.Context, code string) error {
	defer s.reset()

	if s.resetBarcode != "" && code == s.resetBarcode {
		s.log.Info(ctx, "reset barcode recognized, ignoring order", "account_code", s.accountCode)
		s.say(ctx, s.loc.Sprintf(locale.ScanReset))
		return nil
	}

	log := s.log.With("account_code", s.accountCode, "drink_barcode", code)
	log.Info(ctx, "order scanned")

	balance, err := s.backend.PerformPayment(ctx, s.superuserPassword, s.accountCode, code)
	if err != nil {
		var re *client.RequestError
		if errors.As(err, &re) {
			return fmt.Errorf("%w: %w", ErrPayment, err)
		}
		return fmt.Errorf("perform payment: %w", err)
	}

	log.Info(ctx, "payment performed", "balance", balance)
	s.say(ctx, s.loc.Sprintf(locale.ScanPaid, moneyx.FormatCents(balance)))
	return nil
}

func (s *Scanner) fail(ctx context.Context, err error) {
	s.log.Error(ctx, "scan failed", "mode", s.mode.String(), "error", err)

	if errors.Is(err, ErrUnknownAccount) {
		s.announcer.Announce(ctx, s.loc.Sprintf(locale.ScanUnknownCode))
		return
	}
	s.announcer.Announce(ctx, s.loc.Sprintf(locale.ScanBackendError, client.UserMessage(err)))
}

// say logs msg and hands it to the announcer.
func (s *Scanner) say(ctx context.Context, msg string) {
	s.log.Info(ctx, "announce", "message", msg)
	s.announcer.Announce(ctx, msg)
}

func (s *Scanner) reset() {
	s.mode = ModeAccount
	s.accountCode = ""
	s.orderTime = time.Time{}
}
