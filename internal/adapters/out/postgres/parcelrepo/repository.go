package parcelrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InFlightDriverIndex backs the one in-flight parcel per driver rule.
const InFlightDriverIndex = "parcels_driver_in_flight_key"

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects aggregates whose domain events are published after commit.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the parcel row and its initial history.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return mapWriteError(err, aggregate)
	}

	history := historyFromDomain(aggregate.TrackingNumber(), aggregate.History())
	if err := db.Create(&history).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.TrackingNumber().String(), aggregate)
	return nil
}

// Update writes status, driver and timestamp, then appends the history entries
// whose sequence is above the highest stored one.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	// A map is used so that a cleared driver is written as NULL.
	result := db.Model(&ParcelDTO{}).
		Where("tracking_number = ?", dto.TrackingNumber).
		Updates(map[string]any{
			"status":     dto.Status,
			"driver_id":  dto.DriverID,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return mapWriteError(result.Error, aggregate)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("trackingNumber", dto.TrackingNumber)
	}

	var stored int
	if err := db.Model(&HistoryDTO{}).
		Where("tracking_number = ?", dto.TrackingNumber).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&stored).Error; err != nil {
		return err
	}

	history := aggregate.History()
	if stored < len(history) {
		pending := historyFromDomain(aggregate.TrackingNumber(), history[stored:])
		if err := db.Create(&pending).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.TrackingNumber().String(), aggregate)
	return nil
}

func (r *GormParcelRepository) Get(ctx context.Context, tn kernel.TrackingNumber) (*parcel.Parcel, error) {
	return r.get(ctx, r.db.WithContext(ctx), tn)
}

// GetForUpdate takes a row lock on the parcel for the rest of the transaction.
func (r *GormParcelRepository) GetForUpdate(ctx context.Context, tn kernel.TrackingNumber) (*parcel.Parcel, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), tn)
}

func (r *GormParcelRepository) get(ctx context.Context, db *gorm.DB, tn kernel.TrackingNumber) (*parcel.Parcel, error) {
	if err := tn.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := db.First(&dto, "tracking_number = ?", tn.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingNumber", tn.String())
		}
		return nil, err
	}

	var history []HistoryDTO
	if err := r.db.WithContext(ctx).
		Where("tracking_number = ?", dto.TrackingNumber).
		Order("sequence").
		Find(&history).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, history)
}

func mapWriteError(err error, aggregate *parcel.Parcel) error {
	constraint, ok := pgerr.UniqueViolation(err)
	if !ok {
		return err
	}

	switch constraint {
	case InFlightDriverIndex:
		var driverID int64
		if id := aggregate.DriverID(); id != nil {
			driverID = *id
		}
		return errs.NewDriverUnavailableErrorWithCause(driverID, err)
	default:
		return errs.NewObjectAlreadyExistsErrorWithCause("trackingNumber", aggregate.TrackingNumber().String(), err)
	}
}
