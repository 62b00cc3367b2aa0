package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/prepaidmate/internal/backendtest"
	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
	"github.com/dmitrijs2005/prepaidmate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*HTTPClient, *backendtest.Backend) {
	t.Helper()
	b := backendtest.New()
	t.Cleanup(b.Close)

	c, err := NewPrepaidClient(b.URL() + "/")
	require.NoError(t, err)
	return c, b
}

func creds(name, password string) models.Credentials {
	return models.Credentials{Name: name, Password: []byte(password)}
}

func TestNewPrepaidClient_RejectsBadScheme(t *testing.T) {
	_, err := NewPrepaidClient("ftp://example.org")
	require.Error(t, err)

	_, err = NewPrepaidClient("https://example.org")
	require.NoError(t, err)
}

func TestHTTPClient_ViewAccount(t *testing.T) {
	c, b := newTestClient(t)
	b.AddAccount("alice", "secret", "AB12", 2500)

	av, err := c.ViewAccount(context.Background(), creds("alice", "secret"))
	require.NoError(t, err)
	assert.Equal(t, &models.AccountView{DisplayName: "alice", RFID: "AB12", BalanceCents: 2500}, av)
}

func TestHTTPClient_ViewAccount_WrongPassword(t *testing.T) {
	c, b := newTestClient(t)
	b.AddAccount("alice", "secret", "AB12", 0)

	_, err := c.ViewAccount(context.Background(), creds("alice", "nope"))
	require.Error(t, err)

	var re *RequestError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusBadRequest, re.Status)
	assert.Equal(t, "Wrong password", re.Error())
	assert.Equal(t, "Wrong password", UserMessage(err))
}

func TestHTTPClient_SendsFormAndRequestID(t *testing.T) {
	var (
		gotContentType string
		gotRequestID   string
		gotName        string
		gotMoney       string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get(common.RequestIDHeaderName)
		gotName = r.PostFormValue("name")
		gotMoney = r.PostFormValue("money")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, err := NewPrepaidClient(srv.URL)
	require.NoError(t, err)
	c.newID = func() string { return "req-1" }

	require.NoError(t, c.AddMoney(context.Background(), creds("bob", "pw"), -150))
	assert.Equal(t, common.FormContentType, gotContentType)
	assert.Equal(t, "req-1", gotRequestID)
	assert.Equal(t, "bob", gotName)
	assert.Equal(t, "-150", gotMoney)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewPrepaidClient(url, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.ViewAccount(context.Background(), creds("a", "b"))
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "server unavailable", UserMessage(err))
}

func TestHTTPClient_UnexpectedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"x"}`))
	}))
	defer srv.Close()

	c, err := NewPrepaidClient(srv.URL)
	require.NoError(t, err)

	_, err = c.ViewAccount(context.Background(), creds("a", "b"))
	require.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestHTTPClient_CreateAndModifyAccount(t *testing.T) {
	c, b := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.CreateAccount(ctx, "carol", "C0DE", []byte("pw")))

	err := c.CreateAccount(ctx, "carol", "OTHER", []byte("pw"))
	require.Error(t, err)
	assert.Equal(t, "name already exists", UserMessage(err))

	err = c.ModifyAccount(ctx, creds("carol", "pw"), AccountChanges{NewName: "caro", NewCode: "C0DE"})
	require.Error(t, err)
	assert.Equal(t, "Incomplete request", UserMessage(err))

	err = c.ModifyAccount(ctx, creds("carol", "pw"), AccountChanges{NewName: "caro", NewCode: "NEW", NewPassword: []byte("pw2")})
	require.NoError(t, err)

	pw, code, ok := b.Account("caro")
	require.True(t, ok)
	assert.Equal(t, "pw2", pw)
	assert.Equal(t, "NEW", code)
}

func TestHTTPClient_ViewTransactions(t *testing.T) {
	c, b := newTestClient(t)
	ctx := context.Background()
	b.AddAccount("alice", "secret", "AB12", 0)
	b.SeedDrink("Mate", "4029764001807", 150)
	b.SetClock(func() time.Time { return time.Unix(1700000000, 0) })

	require.NoError(t, c.AddMoney(ctx, creds("alice", "secret"), 500))

	b.SetClock(func() time.Time { return time.Unix(1700000100, 0) })
	balance, err := c.PerformPayment(ctx, "superuser", "AB12", "4029764001807")
	require.NoError(t, err)
	assert.EqualValues(t, 350, balance)

	txs, err := c.ViewTransactions(ctx, creds("alice", "secret"))
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, models.Transaction{AmountCents: -150, Description: "Mate", Timestamp: 1700000100, ProductCode: "4029764001807"}, txs[0])
	assert.Equal(t, models.Transaction{AmountCents: 500, Description: backendtest.TopUpDescription, Timestamp: 1700000000}, txs[1])
}

func TestHTTPClient_ViewTransactions_Empty(t *testing.T) {
	c, b := newTestClient(t)
	b.AddAccount("alice", "secret", "AB12", 0)

	txs, err := c.ViewTransactions(context.Background(), creds("alice", "secret"))
	require.NoError(t, err)
	assert.NotNil(t, txs)
	assert.Empty(t, txs)
}

func TestHTTPClient_AddMoney_NegativeBalance(t *testing.T) {
	c, b := newTestClient(t)
	b.AddAccount("alice", "secret", "AB12", 100)

	err := c.AddMoney(context.Background(), creds("alice", "secret"), -500)
	require.Error(t, err)
	assert.Equal(t, "Negative amount would lead to negative balance", UserMessage(err))

	balance, _ := b.Balance("alice")
	assert.EqualValues(t, 100, balance)
}

func TestHTTPClient_CodeExistsAndLastUnknownCode(t *testing.T) {
	c, b := newTestClient(t)
	ctx := context.Background()
	b.AddAccount("alice", "secret", "AB12", 0)

	code, err := c.LastUnknownCode(ctx)
	require.NoError(t, err)
	assert.Empty(t, code)

	exists, name, err := c.CodeExists(ctx, "AB12")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "alice", name)

	exists, name, err = c.CodeExists(ctx, "FFEE")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, name)

	code, err = c.LastUnknownCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "FFEE", code)
}

func TestHTTPClient_AdminCalls(t *testing.T) {
	c, b := newTestClient(t)
	ctx := context.Background()
	b.AddAccount("alice", "secret", "AB12", 0)

	err := c.AddDrink(ctx, "wrong", models.Drink{Name: "Mate", Barcode: "111", PriceCents: 150})
	require.Error(t, err)
	assert.Equal(t, "Wrong superuserpassword", UserMessage(err))

	require.NoError(t, c.AddDrink(ctx, "superuser", models.Drink{Name: "Mate", Barcode: "111", ContentML: 500, PriceCents: 150}))
	name, price, ok := b.Drink("111")
	require.True(t, ok)
	assert.Equal(t, "Mate", name)
	assert.EqualValues(t, 150, price)

	require.NoError(t, c.ResetPassword(ctx, "superuser", "alice", []byte("fresh")))
	pw, _, _ := b.Account("alice")
	assert.Equal(t, "fresh", pw)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "request failed with status 500", UserMessage(&RequestError{Status: 500}))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}
