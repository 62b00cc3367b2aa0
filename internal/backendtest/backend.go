// Package backendtest provides an in-memory stand-in for the prepaid REST
// backend. It reproduces the observable behaviour of the real API (form
// bodies, tuple JSON replies, plain-text 400 errors) closely enough for
// end-to-end tests of the clients in this module.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	TopUpDescription = "Guthaben aufgeladen"
	unknownCodeTTL   = 60 * time.Second
)

type account struct {
	id       int
	name     string
	password string
	code     string
	balance  int64
}

type drink struct {
	id        int
	name      string
	contentML int
	price     int64
	barcode   string
}

type logEntry struct {
	accountID int
	amount    int64
	desc      string
	barcode   string
	timestamp int64
}

type failure struct {
	status int
	body   string
}

// Backend is the fake server state. Zero value is not usable, see New.
type Backend struct {
	mu sync.Mutex

	SuperuserPassword string

	accounts []*account
	drinks   []*drink
	logs     []logEntry
	nextID   int

	unknownCode   string
	unknownCodeAt time.Time

	requests map[string]int
	failures map[string]failure
	hooks    map[string]func()

	now func() time.Time

	Server *httptest.Server
}

// New starts a fake backend; it is closed with t.Cleanup by the caller via Close.
func New() *Backend {
	b := &Backend{
		SuperuserPassword: "superuser",
		requests:          make(map[string]int),
		failures:          make(map[string]failure),
		hooks:             make(map[string]func()),
		now:               time.Now,
	}
	b.Server = httptest.NewServer(b.Router())
	return b
}

func (b *Backend) URL() string { return b.Server.URL }

func (b *Backend) Close() { b.Server.Close() }

// Router exposes the chi router, e.g. for mounting under a custom server.
func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(b.track)

	r.Route("/api", func(r chi.Router) {
		r.Post("/account/create", b.accountCreate)
		r.Post("/account/modify", b.accountModify)
		r.Post("/account/view", b.accountView)
		r.Post("/account/code_exists", b.codeExists)
		r.Post("/money/add", b.moneyAdd)
		r.Post("/money/view", b.moneyView)
		r.Post("/payment/perform", b.paymentPerform)
		r.Post("/add_drink", b.addDrink)
		r.Get("/last_unknown_code", b.lastUnknownCode)
	})
	return r
}

// track counts requests, runs hooks and serves injected failures.
func (b *Backend) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests[r.URL.Path]++
		hook := b.hooks[r.URL.Path]
		f, failing := b.failures[r.URL.Path]
		if failing {
			delete(b.failures, r.URL.Path)
		}
		b.mu.Unlock()

		if hook != nil {
			hook()
		}
		if failing {
			http.Error(w, f.body, f.status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Requests returns how many requests hit path so far.
func (b *Backend) Requests(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[path]
}

// FailNext makes the next request to path answer with status and body.
func (b *Backend) FailNext(path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[path] = failure{status: status, body: body}
}

// OnRequest runs fn (outside the state lock) before every request to path.
func (b *Backend) OnRequest(path string, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hooks[path] = fn
}

// SetClock replaces the time source used for timestamps and code expiry.
func (b *Backend) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// AddAccount seeds an account and returns its id.
func (b *Backend) AddAccount(name, password, code string, balance int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.accounts = append(b.accounts, &account{id: b.nextID, name: name, password: password, code: code, balance: balance})
	return b.nextID
}

// SeedDrink registers a product.
func (b *Backend) SeedDrink(name, barcode string, price int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.drinks = append(b.drinks, &drink{id: b.nextID, name: name, barcode: barcode, price: price})
}

// SeedUnknownCode records code as the last unknown swipe.
func (b *Backend) SeedUnknownCode(code string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unknownCode = code
	b.unknownCodeAt = b.now()
}

// Balance returns the balance of the named account.
func (b *Backend) Balance(name string) (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a := b.byName(name)
	if a == nil {
		return 0, false
	}
	return a.balance, true
}

// Account returns password and code of the named account.
func (b *Backend) Account(name string) (password, code string, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a := b.byName(name)
	if a == nil {
		return "", "", false
	}
	return a.password, a.code, true
}

// Drink reports whether barcode is registered and its price.
func (b *Backend) Drink(barcode string) (string, int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := b.drinkByBarcode(barcode)
	if d == nil {
		return "", 0, false
	}
	return d.name, d.price, true
}

func (b *Backend) byName(name string) *account {
	for _, a := range b.accounts {
		if a.name == name {
			return a
		}
	}
	return nil
}

func (b *Backend) byCode(code string) *account {
	for _, a := range b.accounts {
		if a.code == code {
			return a
		}
	}
	return nil
}

func (b *Backend) drinkByBarcode(code string) *drink {
	for _, d := range b.drinks {
		if d.barcode == code {
			return d
		}
	}
	return nil
}

func badRequest(w http.ResponseWriter, msg string) {
	http.Error(w, msg, http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func formValue(r *http.Request, key string) (string, bool) {
	if err := r.ParseForm(); err != nil {
		return "", false
	}
	v, ok := r.PostForm[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// checkPassword authenticates by superuser password or by name+password.
// Callers hold b.mu.
func (b *Backend) checkPassword(r *http.Request) (*account, string) {
	if su, ok := formValue(r, "superuserpassword"); ok {
		if su != b.SuperuserPassword {
			return nil, "Wrong superuserpassword"
		}
		if name, ok := formValue(r, "name"); ok {
			if a := b.byName(name); a != nil {
				return a, ""
			}
		} else if code, ok := formValue(r, "account_code"); ok {
			if a := b.byCode(code); a != nil {
				return a, ""
			}
		} else {
			return nil, "Incomplete request"
		}
		return nil, "No such account in database"
	}

	name, okName := formValue(r, "name")
	password, okPassword := formValue(r, "password")
	if !okName || !okPassword {
		return nil, "Incomplete request"
	}
	a := b.byName(name)
	if a == nil {
		return nil, "No such account in database"
	}
	if a.password != password {
		return nil, "Wrong password"
	}
	return a, ""
}

func (b *Backend) accountCreate(w http.ResponseWriter, r *http.Request) {
	name, _ := formValue(r, "name")
	password, _ := formValue(r, "password")
	code, _ := formValue(r, "code")

	b.mu.Lock()
	defer b.mu.Unlock()

	if name == "" || password == "" || code == "" {
		badRequest(w, "Incomplete request")
		return
	}
	if b.drinkByBarcode(code) != nil {
		badRequest(w, "This code is already used for a drink")
		return
	}
	if b.byName(name) != nil {
		badRequest(w, "name already exists")
		return
	}
	if b.byCode(code) != nil {
		badRequest(w, "barcode already exists")
		return
	}
	b.nextID++
	b.accounts = append(b.accounts, &account{id: b.nextID, name: name, password: password, code: code})
	_, _ = w.Write([]byte("ok"))
}

func (b *Backend) accountModify(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, msg := b.checkPassword(r)
	if a == nil {
		badRequest(w, msg)
		return
	}

	newName, hasName := formValue(r, "new_name")
	newCode, hasCode := formValue(r, "new_code")
	newPassword, hasPassword := formValue(r, "new_password")

	if (hasName && newName == "") || (hasCode && newCode == "") || (hasPassword && newPassword == "") {
		badRequest(w, "Incomplete request")
		return
	}
	if hasName && newName != a.name && b.byName(newName) != nil {
		badRequest(w, "name already exists")
		return
	}
	if hasCode && newCode != a.code && b.byCode(newCode) != nil {
		badRequest(w, "barcode already exists")
		return
	}

	if hasCode {
		a.code = newCode
	}
	if hasPassword {
		a.password = newPassword
	}
	if hasName {
		a.name = newName
	}
	_, _ = w.Write([]byte("ok"))
}

func (b *Backend) accountView(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, msg := b.checkPassword(r)
	if a == nil {
		badRequest(w, msg)
		return
	}
	writeJSON(w, []any{a.name, a.code, a.balance})
}

func (b *Backend) codeExists(w http.ResponseWriter, r *http.Request) {
	code, ok := formValue(r, "code")

	b.mu.Lock()
	defer b.mu.Unlock()

	if !ok {
		badRequest(w, "Incomplete request")
		return
	}
	a := b.byCode(code)
	if a == nil {
		b.unknownCode = code
		b.unknownCodeAt = b.now()
		writeJSON(w, []any{false, nil})
		return
	}
	writeJSON(w, []any{true, a.name})
}

func (b *Backend) moneyAdd(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, msg := b.checkPassword(r)
	if a == nil {
		badRequest(w, msg)
		return
	}
	raw, _ := formValue(r, "money")
	money, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		badRequest(w, "Money must be specified in cents")
		return
	}
	if a.balance+money < 0 {
		badRequest(w, "Negative amount would lead to negative balance")
		return
	}
	a.balance += money
	b.logs = append(b.logs, logEntry{accountID: a.id, amount: money, desc: TopUpDescription, timestamp: b.now().Unix()})
	_, _ = w.Write([]byte("ok"))
}

func (b *Backend) moneyView(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, msg := b.checkPassword(r)
	if a == nil {
		badRequest(w, msg)
		return
	}

	var rows []logEntry
	for _, l := range b.logs {
		if l.accountID == a.id {
			rows = append(rows, l)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].timestamp > rows[j].timestamp })

	out := make([][]any, 0, len(rows))
	for _, l := range rows {
		out = append(out, []any{l.amount, l.desc, l.timestamp, l.barcode})
	}
	writeJSON(w, out)
}

func (b *Backend) paymentPerform(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if su, _ := formValue(r, "superuserpassword"); su != b.SuperuserPassword {
		badRequest(w, "Wrong superuserpassword")
		return
	}
	accountCode, ok1 := formValue(r, "account_code")
	drinkBarcode, ok2 := formValue(r, "drink_barcode")
	if !ok1 || !ok2 {
		badRequest(w, "Incomplete request")
		return
	}
	a := b.byCode(accountCode)
	if a == nil {
		badRequest(w, "Barcode does not belong to an account")
		return
	}
	d := b.drinkByBarcode(drinkBarcode)
	if d == nil {
		badRequest(w, "No such drink in database")
		return
	}
	if a.balance-d.price < 0 {
		badRequest(w, "Insufficient funds")
		return
	}
	a.balance -= d.price
	b.logs = append(b.logs, logEntry{accountID: a.id, amount: -d.price, desc: d.name, barcode: d.barcode, timestamp: b.now().Unix()})
	_, _ = fmt.Fprintf(w, "%d", a.balance)
}

func (b *Backend) addDrink(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if su, _ := formValue(r, "superuserpassword"); su != b.SuperuserPassword {
		badRequest(w, "Wrong superuserpassword")
		return
	}
	name, _ := formValue(r, "name")
	barcode, _ := formValue(r, "barcode")
	rawPrice, _ := formValue(r, "price")
	rawContent, _ := formValue(r, "content_ml")
	price, err := strconv.ParseInt(rawPrice, 10, 64)
	if err != nil || name == "" || barcode == "" {
		badRequest(w, "Incomplete request")
		return
	}
	content, _ := strconv.Atoi(rawContent)
	if b.drinkByBarcode(barcode) != nil || b.byCode(barcode) != nil {
		badRequest(w, "barcode already exists")
		return
	}
	b.nextID++
	b.drinks = append(b.drinks, &drink{id: b.nextID, name: name, contentML: content, price: price, barcode: barcode})
	_, _ = w.Write([]byte("ok"))
}

func (b *Backend) lastUnknownCode(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	code := ""
	if b.unknownCode != "" && b.now().Before(b.unknownCodeAt.Add(unknownCodeTTL)) {
		code = b.unknownCode
	}
	_, _ = w.Write([]byte(code))
}
