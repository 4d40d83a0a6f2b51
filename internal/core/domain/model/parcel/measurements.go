package parcel

import (
	"errors"
	"fmt"
	"math"

	"logistics/internal/pkg/errs"
)

// DefaultBreadthM is used for pricing when the client omits the breadth.
const DefaultBreadthM = 0.1

// Measurements are the physical properties of a parcel. Dimensions are optional.
type Measurements struct {
	weightKg float64
	heightM  *float64
	widthM   *float64
	breadthM *float64
}

// NewMeasurements requires a positive weight. Each given dimension must be positive.
func NewMeasurements(weightKg float64, heightM, widthM, breadthM *float64) (Measurements, error) {
	m := Measurements{}
	if err := errors.Join(
		m.setWeight(weightKg),
		validateDimension("heightM", heightM),
		validateDimension("widthM", widthM),
		validateDimension("breadthM", breadthM),
	); err != nil {
		return Measurements{}, err
	}

	m.heightM = copyFloat(heightM)
	m.widthM = copyFloat(widthM)
	m.breadthM = copyFloat(breadthM)
	return m, nil
}

func (m Measurements) WeightKg() float64 { return m.weightKg }

func (m Measurements) HeightM() *float64 { return copyFloat(m.heightM) }

func (m Measurements) WidthM() *float64 { return copyFloat(m.widthM) }

func (m Measurements) BreadthM() *float64 { return copyFloat(m.breadthM) }

// PricingBreadthM returns the breadth used for pricing, falling back to DefaultBreadthM.
func (m Measurements) PricingBreadthM() float64 {
	if m.breadthM == nil {
		return DefaultBreadthM
	}
	return *m.breadthM
}

func (m *Measurements) setWeight(weightKg float64) error {
	if math.IsNaN(weightKg) || math.IsInf(weightKg, 0) || weightKg <= 0 {
		return errs.NewInvalidInputErrorWithCause("weightKg", weightKg, fmt.Errorf("%v is not greater than 0", weightKg))
	}
	m.weightKg = weightKg
	return nil
}

func validateDimension(name string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		return errs.NewInvalidInputErrorWithCause(name, *v, fmt.Errorf("%v is not greater than 0", *v))
	}
	return nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
