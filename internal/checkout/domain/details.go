package domain

import (
	"regexp"
	"strings"
)

type ShippingDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// MissingFieldError names the first blank shipping field in form order.
type MissingFieldError struct {
	Field string
	Label string
}

func (e *MissingFieldError) Error() string { return "Please fill in " + e.Label }
func (e *MissingFieldError) Unwrap() error { return ErrValidation }

func (d ShippingDetails) Validate() error {
	fields := []struct {
		name, label, value string
	}{
		{"name", "Full Name", d.Name},
		{"email", "Email", d.Email},
		{"phone", "Phone Number", d.Phone},
		{"address", "Address", d.Address},
		{"city", "City", d.City},
		{"zip", "Zip Code", d.Zip},
		{"country", "Country", d.Country},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &MissingFieldError{Field: f.name, Label: f.label}
		}
	}
	return nil
}

const (
	MethodCard   = "card"
	MethodPayPal = "paypal"
	MethodCash   = "cash"
)

type PaymentDetails struct {
	Method     string `json:"method"`
	CardNumber string `json:"card_number,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	CVC        string `json:"cvc,omitempty"`
	CardName   string `json:"card_name,omitempty"`
}

// PaymentError blocks the payment stage. Reason is shown to the user as is.
type PaymentError struct {
	Field  string
	Reason string
}

func (e *PaymentError) Error() string { return e.Reason }
func (e *PaymentError) Unwrap() error { return ErrValidation }

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// Validate checks the method and, for cards only, the card fields in order.
// Lengths are counted in characters, not digits.
func (d PaymentDetails) Validate() error {
	switch d.Method {
	case "":
		return &PaymentError{Field: "method", Reason: "Please select a payment method"}
	case MethodPayPal, MethodCash:
		return nil
	case MethodCard:
	default:
		return &PaymentError{Field: "method", Reason: "Unsupported payment method " + d.Method}
	}

	switch {
	case strings.TrimSpace(d.CardNumber) == "" || len([]rune(d.CardNumber)) != 16:
		return &PaymentError{Field: "card_number", Reason: "Please enter a valid 16-digit card number"}
	case !expiryPattern.MatchString(d.Expiry):
		return &PaymentError{Field: "expiry", Reason: "Please enter a valid expiry date (MM/YY)"}
	case strings.TrimSpace(d.CVC) == "" || len([]rune(d.CVC)) != 3:
		return &PaymentError{Field: "cvc", Reason: "Please enter a valid 3-digit CVC"}
	case strings.TrimSpace(d.CardName) == "":
		return &PaymentError{Field: "card_name", Reason: "Please enter the name on card"}
	}
	return nil
}

// Masked hides all but the last four card digits.
func (d PaymentDetails) Masked() PaymentDetails {
	m := PaymentDetails{Method: d.Method, Expiry: d.Expiry, CardName: d.CardName}
	if n := len(d.CardNumber); n > 4 {
		m.CardNumber = strings.Repeat("*", n-4) + d.CardNumber[n-4:]
	} else {
		m.CardNumber = d.CardNumber
	}
	if d.CVC != "" {
		m.CVC = "***"
	}
	return m
}
