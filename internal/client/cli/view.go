package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/prepaidmate/internal/client/locale"
	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
	"github.com/dmitrijs2005/prepaidmate/internal/client/render"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true)
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

func panelTitle(p models.Panel, mode models.AccountMode) string {
	switch p {
	case models.PanelAccount:
		if mode == models.AccountModeModify {
			return "Modify account"
		}
		return "New account"
	case models.PanelDashboard:
		return "Dashboard"
	}
	return "Start"
}

func (a *App) ShowPanel(p models.Panel, mode models.AccountMode) {
	if p != models.PanelDashboard {
		a.setStatus("")
	}
	a.printLine(titleStyle.Render("== " + panelTitle(p, mode) + " =="))
	if p == models.PanelStart {
		a.printLine(mutedStyle.Render("Enter = login, new = create account"))
	}
}

func (a *App) Alert(msg string) {
	a.printLine(alertStyle.Render("! " + msg))
}

func (a *App) Notify(msg string) {
	a.printLine(noticeStyle.Render(msg))
}

func (a *App) ShowAccount(name, balance string) {
	a.setStatus(name + " " + balance)
	a.printLine(a.loc.Sprintf(locale.BalanceLine, name, balance))
}

// ClearTransactions has nothing to erase on an append-only terminal; the
// next ShowTransactions prints a fresh table.
func (a *App) ClearTransactions() {}

func (a *App) ShowTransactions(rows []render.Row) {
	if len(rows) == 0 {
		a.printLine(mutedStyle.Render(a.loc.Sprintf(locale.NoTransactions)))
		return
	}
	a.printLine(a.format.Table(rows))
}

// FieldChanged announces an auto-filled card while creating an account.
// Prefills and clears are not printed.
func (a *App) FieldChanged(f models.Field, value string) {
	if f != models.FieldAccountRFID || value == "" {
		return
	}
	if a.ctrl.Panel() != models.PanelAccount || a.ctrl.AccountMode() != models.AccountModeCreate {
		return
	}
	a.printLine(noticeStyle.Render(a.loc.Sprintf(locale.CardDetected, value)))
}
