// Package courier provides the roster-facing view of delivery agents. The
// authoritative roster lives in an external system; dispatch only needs a
// courier's identity and whether they are currently on shift.
package courier

import (
	"errors"

	"munchies/internal/core/domain/model/kernel"
	"munchies/internal/pkg/errs"
	"munchies/internal/pkg/guard"
)

var (
	// ErrCourierIsNotConstructed is returned when a Courier instance was not
	// created through NewCourier or RestoreCourier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")

	// ErrCourierOffShift is returned when dispatch targets a courier who is
	// not currently working.
	ErrCourierOffShift = errors.New("courier is not on shift")
)

// Courier is a delivery agent as known to the dispatch core.
type Courier struct {
	id      kernel.UUID
	name    string
	onShift bool

	guard guard.ConstructorGuard
}

// NewCourier creates a courier record. New couriers start off shift.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Courier{
		id:    id,
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// RestoreCourier reconstructs a courier from persistence.
func RestoreCourier(id kernel.UUID, name string, onShift bool) (*Courier, error) {
	c, err := NewCourier(id, name)
	if err != nil {
		return nil, err
	}
	c.onShift = onShift
	return c, nil
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// IsOnShift reports whether the courier is currently working.
func (c *Courier) IsOnShift() bool { return c.onShift }

// StartShift marks the courier as available for dispatch.
func (c *Courier) StartShift() { c.onShift = true }

// EndShift marks the courier as unavailable for dispatch.
func (c *Courier) EndShift() { c.onShift = false }
