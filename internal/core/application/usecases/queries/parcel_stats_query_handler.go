package queries

import (
	"context"

	"logistics/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

type ParcelStatsQueryHandler struct {
	db *gorm.DB
}

func NewParcelStatsQueryHandler(db *gorm.DB) ParcelStatsQueryHandler {
	return ParcelStatsQueryHandler{db: db}
}

// Handle reports every status, including those with no parcels.
func (h ParcelStatsQueryHandler) Handle(ctx context.Context, query ParcelStatsQuery) (ParcelStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelStatsResponse{}, err
	}

	visible, args, err := visibilityClause(query.Actor())
	if err != nil {
		return ParcelStatsResponse{}, err
	}

	db := h.db.WithContext(ctx)
	rows, err := db.Raw(
		`SELECT p.status, count(*) FROM parcels p WHERE `+visible+` GROUP BY p.status`,
		args...,
	).Rows()
	if err != nil {
		return ParcelStatsResponse{}, err
	}
	defer rows.Close()

	out := ParcelStatsResponse{ByStatus: make(map[parcel.Status]int64)}
	for _, s := range parcel.Statuses() {
		out.ByStatus[s] = 0
	}
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err = rows.Scan(&status, &n); err != nil {
			return ParcelStatsResponse{}, err
		}
		s, parseErr := parcel.ParseStatus(status)
		if parseErr != nil {
			return ParcelStatsResponse{}, parseErr
		}
		out.ByStatus[s] = n
		out.Total += n
	}
	if err = rows.Err(); err != nil {
		return ParcelStatsResponse{}, err
	}

	recipient := query.Recipient()
	err = db.Raw(`
		SELECT count(*) FROM notifications
		WHERE recipient_role = ? AND recipient_id = ? AND NOT is_read
	`, recipient.Role.String(), recipient.ID).Row().Scan(&out.UnreadNotifications)
	if err != nil {
		return ParcelStatsResponse{}, err
	}

	return out, nil
}
