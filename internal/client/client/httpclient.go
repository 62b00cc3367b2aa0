package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
	"github.com/dmitrijs2005/prepaidmate/internal/common"
	"github.com/dmitrijs2005/prepaidmate/internal/logging"
	"github.com/google/uuid"
)

const (
	pathAccountView     = "/api/account/view"
	pathAccountCreate   = "/api/account/create"
	pathAccountModify   = "/api/account/modify"
	pathAccountCode     = "/api/account/code_exists"
	pathMoneyView       = "/api/money/view"
	pathMoneyAdd        = "/api/money/add"
	pathLastUnknownCode = "/api/last_unknown_code"
	pathPaymentPerform  = "/api/payment/perform"
	pathAddDrink        = "/api/add_drink"

	maxBodySize = 1 << 20
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
	newID   func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (timeouts, transport).
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http = &http.Client{Timeout: d} }
}

func NewPrepaidClient(serverURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse server url: unsupported scheme %q", u.Scheme)
	}

	c := &HTTPClient{
		baseURL: u.String(),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     logging.Discard(),
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func authForm(creds models.Credentials) url.Values {
	return url.Values{
		"name":     {creds.Name},
		"password": {string(creds.Password)},
	}
}

func (c *HTTPClient) ViewAccount(ctx context.Context, creds models.Credentials) (*models.AccountView, error) {
	body, err := c.do(ctx, http.MethodPost, pathAccountView, authForm(creds))
	if err != nil {
		return nil, err
	}

	var av models.AccountView
	if err := json.Unmarshal(body, &av); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return &av, nil
}

func (c *HTTPClient) CreateAccount(ctx context.Context, name, code string, password []byte) error {
	form := url.Values{
		"name":     {name},
		"code":     {code},
		"password": {string(password)},
	}
	_, err := c.do(ctx, http.MethodPost, pathAccountCreate, form)
	return err
}

func (c *HTTPClient) ModifyAccount(ctx context.Context, creds models.Credentials, changes AccountChanges) error {
	form := authForm(creds)
	form.Set("new_name", changes.NewName)
	form.Set("new_code", changes.NewCode)
	form.Set("new_password", string(changes.NewPassword))

	_, err := c.do(ctx, http.MethodPost, pathAccountModify, form)
	return err
}

func (c *HTTPClient) ViewTransactions(ctx context.Context, creds models.Credentials) ([]models.Transaction, error) {
	body, err := c.do(ctx, http.MethodPost, pathMoneyView, authForm(creds))
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0)
	if err := json.Unmarshal(body, &txs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return txs, nil
}

func (c *HTTPClient) AddMoney(ctx context.Context, creds models.Credentials, cents int64) error {
	form := authForm(creds)
	form.Set("money", strconv.FormatInt(cents, 10))

	_, err := c.do(ctx, http.MethodPost, pathMoneyAdd, form)
	return err
}

func (c *HTTPClient) LastUnknownCode(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, pathLastUnknownCode, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *HTTPClient) CodeExists(ctx context.Context, code string) (bool, string, error) {
	body, err := c.do(ctx, http.MethodPost, pathAccountCode, url.Values{"code": {code}})
	if err != nil {
		return false, "", err
	}

	var reply []json.RawMessage
	if err := json.Unmarshal(body, &reply); err != nil || len(reply) != 2 {
		return false, "", fmt.Errorf("%w: code_exists reply %q", ErrUnexpectedResponse, string(body))
	}
	var (
		exists bool
		name   *string
	)
	if err := json.Unmarshal(reply[0], &exists); err != nil {
		return false, "", fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	if err := json.Unmarshal(reply[1], &name); err != nil {
		return false, "", fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	if name == nil {
		return exists, "", nil
	}
	return exists, *name, nil
}

func (c *HTTPClient) PerformPayment(ctx context.Context, superuserPassword, accountCode, drinkBarcode string) (int64, error) {
	form := url.Values{
		"superuserpassword": {superuserPassword},
		"account_code":      {accountCode},
		"drink_barcode":     {drinkBarcode},
	}
	body, err := c.do(ctx, http.MethodPost, pathPaymentPerform, form)
	if err != nil {
		return 0, err
	}

	balance, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: balance %q", ErrUnexpectedResponse, string(body))
	}
	return balance, nil
}

func (c *HTTPClient) AddDrink(ctx context.Context, superuserPassword string, drink models.Drink) error {
	form := url.Values{
		"superuserpassword": {superuserPassword},
		"name":              {drink.Name},
		"content_ml":        {strconv.Itoa(drink.ContentML)},
		"price":             {strconv.FormatInt(drink.PriceCents, 10)},
		"barcode":           {drink.Barcode},
	}
	_, err := c.do(ctx, http.MethodPost, pathAddDrink, form)
	return err
}

func (c *HTTPClient) ResetPassword(ctx context.Context, superuserPassword, name string, newPassword []byte) error {
	form := url.Values{
		"superuserpassword": {superuserPassword},
		"name":              {name},
		"new_password":      {string(newPassword)},
	}
	_, err := c.do(ctx, http.MethodPost, pathAccountModify, form)
	return err
}

// do sends one request and returns the body of a 2xx reply.
func (c *HTTPClient) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", common.FormContentType)
	}
	requestID := c.newID()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	log := c.log.With("request_id", requestID, "method", method, "path", path)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "backend request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn(ctx, "reading backend response failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	log.Debug(ctx, "backend request", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Info(ctx, "backend rejected request", "status", resp.StatusCode)
		return nil, &RequestError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	return data, nil
}
