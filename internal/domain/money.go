package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// MaxAmount is the exclusive upper bound of every stored amount (NUMERIC(10,2)).
var MaxAmount = decimal.New(1, 8)

// ValidateAmount accepts positive amounts in whole cents below MaxAmount.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) || amount.GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("amount[%s]: %w", amount, ErrInvalidAmount)
	}

	return nil
}

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, cur currency.Unit) Money {
	return Money{Amount: amount, Currency: cur}
}

func ZeroMoney(cur currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: cur}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("add %s to %s: %w", other.Currency, m.Currency, ErrCurrencyMismatch)
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

func (m Money) Mul(quantity int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(quantity))), Currency: m.Currency}
}

// Round rounds the amount to whole cents.
func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(2), Currency: m.Currency}
}

func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency.String()
}

func ParseCurrency(code string) (currency.Unit, error) {
	if code == "" {
		return currency.Unit{}, errors.New("currency is empty")
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return unit, nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}{
		Amount:   m.Amount.StringFixed(2),
		Currency: m.Currency.String(),
	})
}
