package parcel

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// Address is a human-readable place with its coordinates.
type Address struct {
	text     string
	location kernel.Location
}

func NewAddress(text string, location kernel.Location) (Address, error) {
	text = strings.TrimSpace(text)

	var textErr error
	if text == "" {
		textErr = errs.NewValueIsRequiredError("address")
	}
	if err := errors.Join(textErr, location.Validate()); err != nil {
		return Address{}, err
	}

	return Address{text: text, location: location}, nil
}

func (a Address) Text() string {
	return a.text
}

func (a Address) Location() kernel.Location {
	return a.location
}

func (a Address) Validate() error {
	return a.location.Validate()
}
