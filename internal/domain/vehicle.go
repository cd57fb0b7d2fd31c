package domain

import "fmt"

// EV battery and range parameters supplied with each planning request.
type VehicleConfig struct {
	CurrentChargePct float64 // battery charge level at departure, percent
	FinalChargePct   float64 // target charge level at arrival, percent
	MaxRangeKm       float64 // range on a full battery
}

// Validate rejects configurations the range model cannot work with.
func (v VehicleConfig) Validate() error {
	if v.MaxRangeKm <= 0 {
		return fmt.Errorf("%w: max range must be positive, got %.1f", ErrInvalidVehicleConfig, v.MaxRangeKm)
	}
	if v.CurrentChargePct < 0 || v.CurrentChargePct > 100 {
		return fmt.Errorf("%w: current charge must be within [0, 100], got %.1f", ErrInvalidVehicleConfig, v.CurrentChargePct)
	}
	if v.FinalChargePct < 0 || v.FinalChargePct > 100 {
		return fmt.Errorf("%w: final charge must be within [0, 100], got %.1f", ErrInvalidVehicleConfig, v.FinalChargePct)
	}
	return nil
}

// CurrentRangeKm returns the distance the vehicle can cover on its present charge.
func (v VehicleConfig) CurrentRangeKm() float64 {
	return v.CurrentChargePct / 100 * v.MaxRangeKm
}

// FinalRangeKm returns the range the vehicle must still hold at arrival.
func (v VehicleConfig) FinalRangeKm() float64 {
	return v.FinalChargePct / 100 * v.MaxRangeKm
}
