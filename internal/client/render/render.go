// Package render turns backend data into display values: signed amounts
// with a visual class, localized timestamps, product-lookup links, the
// transaction table and QR codes for links.
package render

import (
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/prepaidmate/internal/client/locale"
	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
	"github.com/dmitrijs2005/prepaidmate/internal/moneyx"
)

const DefaultSearchHost = "www.codecheck.info"

// Row is one rendered transaction. Link is empty when the transaction has
// no product code and the description is plain text.
type Row struct {
	When        string
	Description string
	Link        string
	Amount      string
	Class       models.AmountClass
}

type Formatter struct {
	currency   string
	searchHost string
	loc        *locale.Locale
}

func NewFormatter(currency, searchHost string, loc *locale.Locale) *Formatter {
	if searchHost == "" {
		searchHost = DefaultSearchHost
	}
	if loc == nil {
		loc = locale.Default()
	}
	return &Formatter{currency: currency, searchHost: searchHost, loc: loc}
}

// Balance formats a balance without sign decoration: 2500 -> "25€".
func (f *Formatter) Balance(cents int64) string {
	return moneyx.FormatCents(cents) + f.currency
}

// Amount formats a transaction amount with an explicit "+" on positive
// values. Zero counts as positive.
func (f *Formatter) Amount(cents int64) (string, models.AmountClass) {
	return moneyx.FormatSigned(cents) + f.currency, ClassOf(cents)
}

func ClassOf(cents int64) models.AmountClass {
	if cents < 0 {
		return models.AmountNegative
	}
	return models.AmountPositive
}

// ProductLink builds https://<host>/product.search?q=<code>.
func ProductLink(host, code string) string {
	u := url.URL{
		Scheme:   "https",
		Host:     host,
		Path:     "/product.search",
		RawQuery: url.Values{"q": {code}}.Encode(),
	}
	return u.String()
}

func (f *Formatter) Row(tx models.Transaction) Row {
	amount, class := f.Amount(tx.AmountCents)
	r := Row{
		When:        f.loc.FormatTime(tx.Time()),
		Description: tx.Description,
		Amount:      amount,
		Class:       class,
	}
	if tx.HasProduct() {
		r.Link = ProductLink(f.searchHost, tx.ProductCode)
	}
	return r
}

func (f *Formatter) Rows(txs []models.Transaction) []Row {
	rows := make([]Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, f.Row(tx))
	}
	return rows
}

// index is the 1-based position shown in the table and accepted by "product <n>".
func index(i int) string {
	return strconv.Itoa(i + 1)
}
