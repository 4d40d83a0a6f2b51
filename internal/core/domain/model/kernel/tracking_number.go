package kernel

import (
	"encoding/hex"
	"regexp"
	"strings"

	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
)

// TrackingNumberPrefix starts every tracking number.
const TrackingNumberPrefix = "PMS-"

var (
	// ErrTrackingNumberIsNotConstructed is returned by Validate for the zero TrackingNumber.
	ErrTrackingNumberIsNotConstructed = errs.NewValueIsRequiredError(
		"tracking number must be created via NewTrackingNumber or ParseTrackingNumber")

	trackingNumberPattern = regexp.MustCompile(`^PMS-[0-9A-F]{8}$`)
)

// TrackingNumber is the unique, caller-visible identity of a parcel.
// It never changes once issued.
type TrackingNumber struct {
	value string
}

// NewTrackingNumber issues a fresh tracking number from the first four bytes of a random UUID.
// Uniqueness is enforced by storage; callers retry on ErrObjectAlreadyExists.
func NewTrackingNumber() TrackingNumber {
	id := uuid.New()
	return TrackingNumber{value: TrackingNumberPrefix + strings.ToUpper(hex.EncodeToString(id[:4]))}
}

// ParseTrackingNumber accepts only the canonical upper-case form.
func ParseTrackingNumber(s string) (TrackingNumber, error) {
	if s == "" {
		return TrackingNumber{}, errs.NewValueIsRequiredError("trackingNumber")
	}
	if !trackingNumberPattern.MatchString(s) {
		return TrackingNumber{}, errs.NewValueIsInvalidError("trackingNumber")
	}
	return TrackingNumber{value: s}, nil
}

func (t TrackingNumber) String() string {
	return t.value
}

func (t TrackingNumber) IsEqual(other TrackingNumber) bool {
	return t.value == other.value
}

func (t TrackingNumber) Validate() error {
	if t.value == "" {
		return ErrTrackingNumberIsNotConstructed
	}
	return nil
}
