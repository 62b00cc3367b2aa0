// Package cli provides the interactive kiosk terminal.
//
// App implements controller.View on top of a terminal: panels are printed
// as headers, alerts stand out in red, and the transaction history is a
// lipgloss table. User commands are read by a small REPL whose command set
// depends on the visible panel:
//
//	Start:      <Enter> or login, new, help, exit
//	Dashboard:  topup, history, modify, product <n>, logout, help, exit
//
// The account panel has no commands of its own; it is a sequence of
// prompts (name, password, RFID card) run by the new and modify commands.
// While it is open the RFID field is auto-filled from the backend, and
// pressing Enter at the RFID prompt keeps the detected card.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
