package queries

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetParcelQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelResponse{}, err
	}

	visible, args, err := visibilityClause(query.Actor())
	if err != nil {
		return ParcelResponse{}, err
	}
	tn := query.TrackingNumber().String()

	db := h.db.WithContext(ctx)
	row := db.Raw(
		`SELECT `+parcelColumns+` FROM parcels p WHERE p.tracking_number = ? AND `+visible,
		append([]any{tn}, args...)...,
	).Row()

	out, err := scanParcel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ParcelResponse{}, errs.NewObjectNotFoundError("trackingNumber", tn)
	}
	if err != nil {
		return ParcelResponse{}, err
	}

	rows, err := db.Raw(`
		SELECT sequence, status, location, notes, actor_id, actor_role, created_at
		FROM parcel_status_history
		WHERE tracking_number = ?
		ORDER BY sequence
	`, tn).Rows()
	if err != nil {
		return ParcelResponse{}, err
	}
	defer rows.Close()

	out.History = make([]HistoryResponse, 0)
	for rows.Next() {
		var (
			h            HistoryResponse
			status, role string
			actorID      uuid.UUID
		)
		if err = rows.Scan(&h.Sequence, &status, &h.Location, &h.Notes, &actorID, &role, &h.At); err != nil {
			return ParcelResponse{}, err
		}
		if h.Status, err = parcel.ParseStatus(status); err != nil {
			return ParcelResponse{}, err
		}
		if h.ActorRole, err = kernel.ParseRole(role); err != nil {
			return ParcelResponse{}, err
		}
		if h.ActorID, err = toUUID(actorID); err != nil {
			return ParcelResponse{}, err
		}
		out.History = append(out.History, h)
	}
	if err = rows.Err(); err != nil {
		return ParcelResponse{}, err
	}

	return out, nil
}
