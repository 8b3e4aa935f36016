package snapshot

import (
	"bytes"

	"github.com/shopspring/decimal"
)

// Amount is a decimal that serializes as a bare JSON number, matching the
// schema's price and total_amount fields. Decoding also accepts a quoted
// number for tolerance towards hand-edited files.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{d}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}

	a.Decimal = d

	return nil
}
