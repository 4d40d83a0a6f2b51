package driverrepo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	emailKey         = "drivers_email_key"
	vehicleNumberKey = "drivers_vehicle_number_key"
	activeParcelKey  = "drivers_active_parcel_key"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the driver and hands the generated id back to the aggregate.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return mapWriteError(err, dto)
	}

	if err := aggregate.AssignID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(trackingID(dto.ID), aggregate)
	return nil
}

// Update writes the profile and location. Availability columns are left alone.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DriverDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":           dto.Name,
			"email":          dto.Email,
			"phone":          dto.Phone,
			"vehicle_type":   dto.VehicleType,
			"vehicle_number": dto.VehicleNumber,
			"rating":         dto.Rating,
			"location_text":  dto.LocationText,
			"location_lat":   dto.LocationLat,
			"location_lng":   dto.LocationLng,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return mapWriteError(result.Error, dto)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driverID", dto.ID)
	}

	r.tracker.TrackAggregate(trackingID(dto.ID), aggregate)
	return nil
}

// SaveAvailability is a compare-and-swap on the available column.
func (r *GormDriverRepository) SaveAvailability(ctx context.Context, aggregate *driver.Driver, wasAvailable bool) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DriverDTO{}).
		Where("id = ? AND available = ?", dto.ID, wasAvailable).
		Updates(map[string]any{
			"available":     dto.Available,
			"active_parcel": dto.ActiveParcel,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return mapWriteError(result.Error, dto)
	}
	if result.RowsAffected == 0 {
		return errs.NewDriverUnavailableErrorWithCause(dto.ID, errors.New("availability changed concurrently"))
	}

	r.tracker.TrackAggregate(trackingID(dto.ID), aggregate)
	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, id int64) (*driver.Driver, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormDriverRepository) GetForUpdate(ctx context.Context, id int64) (*driver.Driver, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetAllAvailable returns the roster of drivers free for assignment, by id.
func (r *GormDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	if err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}

	return drivers, nil
}

func (r *GormDriverRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&DriverDTO{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driverID", id)
	}
	return nil
}

func (r *GormDriverRepository) get(db *gorm.DB, id int64) (*driver.Driver, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidError("driverID")
	}

	var dto DriverDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driverID", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func mapWriteError(err error, dto DriverDTO) error {
	constraint, ok := pgerr.UniqueViolation(err)
	if !ok {
		return err
	}

	switch constraint {
	case emailKey:
		return errs.NewObjectAlreadyExistsErrorWithCause("email", dto.Email, err)
	case vehicleNumberKey:
		return errs.NewObjectAlreadyExistsErrorWithCause("vehicleNumber", dto.VehicleNumber, err)
	case activeParcelKey:
		return errs.NewDriverUnavailableErrorWithCause(dto.ID, err)
	default:
		return errs.NewObjectAlreadyExistsErrorWithCause("driver", dto.ID, err)
	}
}

func trackingID(id int64) string {
	return "driver:" + strconv.FormatInt(id, 10)
}
