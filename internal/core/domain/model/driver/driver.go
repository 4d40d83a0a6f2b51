package driver

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	RatingMin = 0.0
	RatingMax = 5.0
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrVehicleNumberIsRequired = errs.NewValueIsRequiredError("vehicleNumber")
	ErrDriverIsNotConstructed  = errors.New("driver must be created via NewDriver or RestoreDriver")
)

// Profile is the admin-editable part of a driver.
type Profile struct {
	Name          string
	Email         string
	Phone         string
	VehicleType   VehicleType
	VehicleNumber string
	Rating        float64
}

// Driver is the aggregate root of a delivery driver.
type Driver struct {
	id           int64
	profile      Profile
	locationText string
	location     *kernel.Location
	available    bool
	activeParcel *kernel.TrackingNumber
	guard        guard.ConstructorGuard
}

// NewDriver creates an available driver without an id. The repository assigns the id on insert.
func NewDriver(profile Profile) (*Driver, error) {
	d := &Driver{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}
	if err := d.setProfile(profile); err != nil {
		return nil, err
	}
	return d, nil
}

// RestoreDriver rebuilds a driver from storage.
func RestoreDriver(
	id int64,
	profile Profile,
	locationText string,
	location *kernel.Location,
	available bool,
	activeParcel *kernel.TrackingNumber,
) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	var idErr error
	if id <= 0 {
		idErr = errs.NewValueIsInvalidError("driverID")
	}
	if err := errors.Join(
		idErr,
		d.setProfile(profile),
		d.setLocation(locationText, location),
		validateAvailability(available, activeParcel),
	); err != nil {
		return nil, err
	}

	d.id = id
	d.available = available
	if activeParcel != nil {
		tn := *activeParcel
		d.activeParcel = &tn
	}
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// AssignID sets the store-generated id exactly once.
func (d *Driver) AssignID(id int64) error {
	if d.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("driverID", fmt.Errorf("driver already has id %d", d.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidError("driverID")
	}
	d.id = id
	return nil
}

func (d *Driver) ID() int64 { return d.id }

func (d *Driver) Profile() Profile { return d.profile }

func (d *Driver) Name() string { return d.profile.Name }

func (d *Driver) LocationText() string { return d.locationText }

// Location returns the last reported coordinates, or nil.
func (d *Driver) Location() *kernel.Location {
	if d.location == nil {
		return nil
	}
	loc := *d.location
	return &loc
}

func (d *Driver) IsAvailable() bool { return d.available }

func (d *Driver) ActiveParcel() *kernel.TrackingNumber {
	if d.activeParcel == nil {
		return nil
	}
	tn := *d.activeParcel
	return &tn
}

// UpdateProfile applies an admin edit. Availability and the active parcel are not touched.
func (d *Driver) UpdateProfile(profile Profile) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return d.setProfile(profile)
}

// ReportLocation records the driver's current position as text and, optionally, coordinates.
func (d *Driver) ReportLocation(text string, location *kernel.Location) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return d.setLocation(text, location)
}

// Reserve takes the driver off the roster for the given parcel.
func (d *Driver) Reserve(tn kernel.TrackingNumber) error {
	if err := errors.Join(d.Validate(), tn.Validate()); err != nil {
		return err
	}
	if !d.available {
		return errs.NewDriverUnavailableError(d.id)
	}

	d.available = false
	d.activeParcel = &tn
	return nil
}

// Release puts the driver back on the roster. It only succeeds for the parcel the driver holds.
func (d *Driver) Release(tn kernel.TrackingNumber) error {
	if err := errors.Join(d.Validate(), tn.Validate()); err != nil {
		return err
	}
	if d.activeParcel == nil || !d.activeParcel.IsEqual(tn) {
		return errs.NewValueIsInvalidErrorWithCause("activeParcel",
			fmt.Errorf("driver %d does not hold %s", d.id, tn))
	}

	d.available = true
	d.activeParcel = nil
	return nil
}

// EnsureDeletable fails while the driver holds an active parcel.
func (d *Driver) EnsureDeletable() error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.activeParcel != nil {
		return errs.NewDriverUnavailableErrorWithCause(d.id,
			fmt.Errorf("driver holds active parcel %s", d.activeParcel))
	}
	return nil
}

// DistanceTo returns the great-circle distance to loc, or false when the driver has no coordinates.
func (d *Driver) DistanceTo(loc kernel.Location) (float64, bool) {
	if d.location == nil {
		return 0, false
	}
	km, err := d.location.DistanceTo(loc)
	if err != nil {
		return 0, false
	}
	return km, true
}

func (d *Driver) setProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
	p.VehicleNumber = strings.TrimSpace(strings.ToUpper(p.VehicleNumber))

	var nameErr, emailErr, vehicleNumberErr, ratingErr error
	if p.Name == "" {
		nameErr = ErrNameIsRequired
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		emailErr = errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if p.VehicleNumber == "" {
		vehicleNumberErr = ErrVehicleNumberIsRequired
	}
	if math.IsNaN(p.Rating) || p.Rating < RatingMin || p.Rating > RatingMax {
		ratingErr = errs.NewValueIsOutOfRangeError("rating", p.Rating, RatingMin, RatingMax)
	}
	_, vehicleTypeErr := ParseVehicleType(string(p.VehicleType))

	if err := errors.Join(nameErr, emailErr, vehicleTypeErr, vehicleNumberErr, ratingErr); err != nil {
		return err
	}

	d.profile = p
	return nil
}

func (d *Driver) setLocation(text string, location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
		loc := *location
		d.location = &loc
	} else {
		d.location = nil
	}
	d.locationText = strings.TrimSpace(text)
	return nil
}

func validateAvailability(available bool, activeParcel *kernel.TrackingNumber) error {
	if available == (activeParcel == nil) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("available",
		errors.New("a driver is unavailable exactly when it holds an active parcel"))
}
