package client

import (
	"context"

	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
)

// AccountChanges carries the new values sent to /api/account/modify.
// Empty fields are still sent; the backend rejects incomplete requests.
type AccountChanges struct {
	NewName     string
	NewCode     string
	NewPassword []byte
}

// Client is the backend contract shared by the kiosk, scanner and admin tools.
type Client interface {
	// kiosk
	ViewAccount(ctx context.Context, creds models.Credentials) (*models.AccountView, error)
	CreateAccount(ctx context.Context, name, code string, password []byte) error
	ModifyAccount(ctx context.Context, creds models.Credentials, changes AccountChanges) error
	ViewTransactions(ctx context.Context, creds models.Credentials) ([]models.Transaction, error)
	AddMoney(ctx context.Context, creds models.Credentials, cents int64) error
	LastUnknownCode(ctx context.Context) (string, error)

	// scanner
	CodeExists(ctx context.Context, code string) (bool, string, error)
	PerformPayment(ctx context.Context, superuserPassword, accountCode, drinkBarcode string) (int64, error)

	// admin
	AddDrink(ctx context.Context, superuserPassword string, drink models.Drink) error
	ResetPassword(ctx context.Context, superuserPassword, name string, newPassword []byte) error
}
