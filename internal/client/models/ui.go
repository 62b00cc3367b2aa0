package models

// Panel is one of the mutually exclusive top-level views.
type Panel int

const (
	PanelStart Panel = iota
	PanelAccount
	PanelDashboard
)

func (p Panel) String() string {
	switch p {
	case PanelStart:
		return "start"
	case PanelAccount:
		return "account"
	case PanelDashboard:
		return "dashboard"
	}
	return "unknown"
}

// AccountMode tells whether the account panel creates or modifies.
type AccountMode int

const (
	AccountModeCreate AccountMode = iota
	AccountModeModify
)

func (m AccountMode) String() string {
	if m == AccountModeModify {
		return "modify"
	}
	return "create"
}

// Field identifies an input field owned by a panel.
type Field string

const (
	// start panel
	FieldUsername Field = "username"
	FieldPassword Field = "password"

	// account panel, shared by create and modify
	FieldAccountName     Field = "account_name"
	FieldAccountRFID     Field = "account_rfid"
	FieldAccountPassword Field = "account_password"
)

// AmountClass is the visual class applied to a transaction amount.
type AmountClass string

const (
	AmountPositive AmountClass = "positiveAmount"
	AmountNegative AmountClass = "negativeAmount"
)
