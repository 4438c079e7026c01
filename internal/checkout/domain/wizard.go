// Package domain holds the checkout wizard: a linear four stage state machine
// over a cart snapshot taken when checkout starts.
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/stylehub/internal/pricing"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrValidation        = errors.New("checkout validation failed")
)

type Stage int

const (
	StageReview Stage = iota + 1
	StageShipping
	StagePayment
	StageConfirm
)

func (s Stage) String() string {
	switch s {
	case StageReview:
		return "review"
	case StageShipping:
		return "shipping"
	case StagePayment:
		return "payment"
	case StageConfirm:
		return "confirm"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

type Line struct {
	ProductID int
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Total() decimal.Decimal {
	return pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity}.Total()
}

// Wizard is the state of one checkout. The zero value is not usable; start
// one with NewWizard.
type Wizard struct {
	Stage     Stage
	Lines     []Line
	Shipping  ShippingDetails
	Payment   PaymentDetails
	OrderID   string
	Completed bool
}

// NewWizard starts at the review stage. The lines are copied and never
// refreshed from the cart afterwards.
func NewWizard(lines []Line) (*Wizard, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	return &Wizard{
		Stage: StageReview,
		Lines: append([]Line(nil), lines...),
	}, nil
}

// Advance validates the current stage and moves to the next one. On failure
// the stage is unchanged.
func (w *Wizard) Advance() error {
	if w.Completed || w.Stage >= StageConfirm {
		return fmt.Errorf("%w: cannot advance from %s", ErrInvalidTransition, w.Stage)
	}

	switch w.Stage {
	case StageShipping:
		if err := w.Shipping.Validate(); err != nil {
			return err
		}
	case StagePayment:
		if err := w.Payment.Validate(); err != nil {
			return err
		}
	}

	w.Stage++
	return nil
}

// Back returns to the previous stage without re-validating the current one.
func (w *Wizard) Back() error {
	if w.Completed || w.Stage <= StageReview {
		return fmt.Errorf("%w: cannot go back from %s", ErrInvalidTransition, w.Stage)
	}
	w.Stage--
	return nil
}

// CanComplete reports whether Complete would succeed.
func (w *Wizard) CanComplete() error {
	if w.Completed || w.Stage != StageConfirm {
		return fmt.Errorf("%w: cannot submit from %s", ErrInvalidTransition, w.Stage)
	}
	return nil
}

func (w *Wizard) Complete() error {
	if err := w.CanComplete(); err != nil {
		return err
	}
	w.Completed = true
	return nil
}

func (w *Wizard) SetShipping(d ShippingDetails) error {
	if w.Completed || w.Stage != StageShipping {
		return fmt.Errorf("%w: shipping details are edited at the shipping stage, not %s", ErrInvalidTransition, w.Stage)
	}
	w.Shipping = d
	return nil
}

func (w *Wizard) SetPayment(d PaymentDetails) error {
	if w.Completed || w.Stage != StagePayment {
		return fmt.Errorf("%w: payment details are edited at the payment stage, not %s", ErrInvalidTransition, w.Stage)
	}
	w.Payment = d
	return nil
}

func (w *Wizard) Totals() pricing.Totals {
	lines := make([]pricing.Line, 0, len(w.Lines))
	for _, l := range w.Lines {
		lines = append(lines, pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	return pricing.Calculate(lines)
}

// Clone returns a deep copy safe to hand out of a session lock.
func (w *Wizard) Clone() Wizard {
	c := *w
	c.Lines = append([]Line(nil), w.Lines...)
	return c
}
