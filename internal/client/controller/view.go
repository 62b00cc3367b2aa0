package controller

import (
	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
	"github.com/dmitrijs2005/prepaidmate/internal/client/render"
)

// View receives display updates. Methods are called without the controller
// lock held; FieldChanged may be called from the poller goroutine.
type View interface {
	ShowPanel(p models.Panel, mode models.AccountMode)
	Alert(msg string)
	Notify(msg string)
	ShowAccount(name, balance string)
	ClearTransactions()
	ShowTransactions(rows []render.Row)
	FieldChanged(f models.Field, value string)
}
