package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Transaction is one /api/money/view row:
// [amountCents, description, unixTimestamp, productCode].
// Negative amounts are purchases, positive ones top-ups.
type Transaction struct {
	AmountCents int64
	Description string
	Timestamp   int64
	ProductCode string
}

// Time returns the timestamp as a time.Time in the local zone.
func (t Transaction) Time() time.Time {
	return time.Unix(t.Timestamp, 0)
}

// HasProduct reports whether the row refers to a scanned product.
func (t Transaction) HasProduct() bool {
	return t.ProductCode != ""
}

// UnmarshalJSON accepts 3-element rows (no product code) as well as 4.
func (t *Transaction) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTuple, err)
	}
	if len(raw) < 3 {
		return fmt.Errorf("%w: transaction has %d elements", ErrMalformedTuple, len(raw))
	}

	amount, err := flexInt(raw[0])
	if err != nil {
		return err
	}
	desc, err := stringOrNull(raw[1])
	if err != nil {
		return err
	}
	ts, err := flexInt(raw[2])
	if err != nil {
		return err
	}
	var code string
	if len(raw) > 3 {
		if code, err = stringOrNull(raw[3]); err != nil {
			return err
		}
	}

	*t = Transaction{AmountCents: amount, Description: desc, Timestamp: ts, ProductCode: code}
	return nil
}
