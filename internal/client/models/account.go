package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedTuple = errors.New("malformed response tuple")

// AccountView is the /api/account/view reply: [displayName, rfid, balanceCents, ...].
// Extra trailing elements are ignored.
type AccountView struct {
	DisplayName  string
	RFID         string
	BalanceCents int64
}

func (a *AccountView) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTuple, err)
	}
	if len(raw) < 3 {
		return fmt.Errorf("%w: account view has %d elements", ErrMalformedTuple, len(raw))
	}

	name, err := stringOrNull(raw[0])
	if err != nil {
		return err
	}
	rfid, err := stringOrNull(raw[1])
	if err != nil {
		return err
	}
	balance, err := flexInt(raw[2])
	if err != nil {
		return err
	}

	*a = AccountView{DisplayName: name, RFID: rfid, BalanceCents: balance}
	return nil
}

func stringOrNull(b json.RawMessage) (string, error) {
	if isNull(b) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// numeric codes are returned unquoted by some backends
		var n json.Number
		if err2 := json.Unmarshal(b, &n); err2 != nil {
			return "", fmt.Errorf("%w: expected string, got %s", ErrMalformedTuple, string(b))
		}
		return n.String(), nil
	}
	return s, nil
}

// flexInt accepts 2500, 2500.0 and "2500".
func flexInt(b json.RawMessage) (int64, error) {
	if isNull(b) {
		return 0, nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		s = string(bytes.TrimSpace(b))
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("%w: expected integer, got %s", ErrMalformedTuple, string(b))
	}
	return int64(f), nil
}

func isNull(b json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}
