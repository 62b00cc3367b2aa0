// Package locale holds the user-facing strings of the kiosk and scanner and
// the date layout used in the transaction list. German is the default; the
// English strings double as message keys.
package locale

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	InvalidAmount    = "Invalid amount!"
	PasswordRequired = "Please enter a new password!"
	AccountCreated   = "Account created."
	AccountUpdated   = "Account updated."
	BalanceAdded     = "Balance updated."
	LoggedOut        = "Logged out."
	NotLoggedIn      = "Please log in first."

	PromptUsername    = "Username"
	PromptPassword    = "Password"
	PromptName        = "Name"
	PromptRFID        = "RFID card (swipe or type, Enter keeps current)"
	PromptNewPassword = "New password"
	PromptAmount      = "Amount (e.g. 5 or 2,50)"
	PromptRetry       = "Try again? [y/N]"
	NoTransactions    = "No transactions."
	CardDetected      = "Card detected: %s"
	BalanceLine       = "%s, your balance: %s"

	ColumnDate        = "Date"
	ColumnDescription = "Description"
	ColumnAmount      = "Amount"

	ScanGreeting     = "Hi %s."
	ScanUnknownCode  = "Account not recognized, register now."
	ScanPaid         = "Payment successful: your balance is %s Euro."
	ScanTimeout      = "Order timed out."
	ScanReset        = "Reset."
	ScanBackendError = "Error: %s"
)

var german = map[string]string{
	InvalidAmount:    "Ungültiger Betrag!",
	PasswordRequired: "Bitte ein neues Passwort eingeben!",
	AccountCreated:   "Konto angelegt.",
	AccountUpdated:   "Konto geändert.",
	BalanceAdded:     "Guthaben aktualisiert.",
	LoggedOut:        "Abgemeldet.",
	NotLoggedIn:      "Bitte zuerst anmelden.",

	PromptUsername:    "Benutzername",
	PromptPassword:    "Passwort",
	PromptName:        "Kontoname",
	PromptRFID:        "RFID-Karte (auflegen oder eintippen, Enter übernimmt)",
	PromptNewPassword: "Neues Passwort",
	PromptAmount:      "Betrag (z.B. 5 oder 2,50)",
	PromptRetry:       "Nochmal versuchen? [j/N]",
	NoTransactions:    "Keine Umsätze.",
	CardDetected:      "Karte erkannt: %s",
	BalanceLine:       "%s, dein Guthaben: %s",

	ColumnDate:        "Datum",
	ColumnDescription: "Beschreibung",
	ColumnAmount:      "Betrag",

	ScanGreeting:     "Hallo %s.",
	ScanUnknownCode:  "Konto nicht erkannt, bitte registrieren.",
	ScanPaid:         "Zahlung erfolgreich: dein Guthaben beträgt %s Euro.",
	ScanTimeout:      "Zeit abgelaufen.",
	ScanReset:        "Zurückgesetzt.",
	ScanBackendError: "Fehler: %s",
}

// date layouts keyed by ISO 639 base language
var layouts = map[string]string{
	"de": "2.1.2006 15:04:05",
	"en": "1/2/2006 3:04:05 PM",
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, de := range german {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.German, key, de)
	}
	return b
}

// Locale formats messages and dates for one language.
type Locale struct {
	tag     language.Tag
	printer *message.Printer
	layout  string
}

// New returns the locale named by a BCP 47 tag such as "de" or "en-US".
// Regions are ignored; unsupported languages are an error.
func New(name string) (*Locale, error) {
	tag, err := language.Parse(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", name, err)
	}
	base, _ := tag.Base()
	tag = language.Make(base.String())

	layout, ok := layouts[base.String()]
	if !ok {
		return nil, fmt.Errorf("locale %q: unsupported language", name)
	}
	return &Locale{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
		layout:  layout,
	}, nil
}

// Default is the German locale.
func Default() *Locale {
	l, _ := New("de")
	return l
}

func (l *Locale) Tag() language.Tag { return l.tag }

// Sprintf translates key and formats args into it.
func (l *Locale) Sprintf(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// FormatTime renders t in the locale's date-time layout.
func (l *Locale) FormatTime(t time.Time) string {
	return t.Format(l.layout)
}
