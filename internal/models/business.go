package models

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// BusinessProfile is the structured description of a business submitted for analysis.
// Every field is optional.
type BusinessProfile struct {
	BusinessName  string     `json:"businessName" validate:"max=200"`
	Industry      string     `json:"industry" validate:"max=200"`
	Description   string     `json:"description" validate:"max=5000"`
	Stage         string     `json:"stage" validate:"max=200"`
	Employees     string     `json:"employees" validate:"max=200"`
	Location      string     `json:"location" validate:"max=200"`
	Financials    Financials `json:"financials"`
	Goals         Goals      `json:"goals"`
	MarketFactors []string   `json:"marketFactors" validate:"max=50,dive,max=200"`
}

type Financials struct {
	MonthlyRevenue  *Amount `json:"monthlyRevenue" validate:"omitempty,gte=0"`
	MonthlyExpenses *Amount `json:"monthlyExpenses" validate:"omitempty,gte=0"`
	FundingStage    string  `json:"fundingStage" validate:"max=200"`
}

type Goals struct {
	PrimaryGoal  string `json:"primaryGoal" validate:"max=200"`
	TopChallenge string `json:"topChallenge" validate:"max=200"`
}

// Amount is a monetary value that accepts either a JSON number or a numeric string.
// String inputs keep their submitted text so they render exactly as sent.
type Amount struct {
	value float64
	text  string
}

// NewAmount returns an Amount for a numeric value.
func NewAmount(v float64) Amount {
	return Amount{value: v}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) == 0 {
		return amountTypeError("empty")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw := strings.TrimSpace(s)
		if raw == "" {
			*a = Amount{}
			return nil
		}
		v, ok := parseAmount(raw)
		if !ok {
			return amountTypeError("string")
		}
		*a = Amount{value: v, text: raw}
		return nil
	case '{':
		return amountTypeError("object")
	case '[':
		return amountTypeError("array")
	case 't', 'f':
		return amountTypeError("bool")
	}

	v, ok := parseAmount(string(data))
	if !ok {
		return amountTypeError("number")
	}
	*a = Amount{value: v}
	return nil
}

// Float64 returns the numeric value.
func (a Amount) Float64() float64 {
	return a.value
}

// String renders string inputs as submitted and numbers in shortest decimal form.
func (a Amount) String() string {
	if a.text != "" {
		return a.text
	}
	return strconv.FormatFloat(a.value, 'f', -1, 64)
}

func parseAmount(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// amountTypeError lets encoding/json attach the field path to the failure.
func amountTypeError(value string) error {
	return &json.UnmarshalTypeError{Value: value, Type: reflect.TypeOf(Amount{})}
}
