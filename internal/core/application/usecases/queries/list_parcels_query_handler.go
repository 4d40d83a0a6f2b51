package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type ListParcelsQueryHandler struct {
	db *gorm.DB
}

func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db}
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) ([]ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	visible, args, err := visibilityClause(query.Actor())
	if err != nil {
		return nil, err
	}

	where := []string{visible}
	if status := query.Status(); status != nil {
		where = append(where, "p.status = ?")
		args = append(args, status.String())
	}
	if search := query.Search(); search != "" {
		pattern := likePattern(search)
		where = append(where, "(p.tracking_number ILIKE ? OR p.pickup_address ILIKE ? OR p.drop_address ILIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT `+parcelColumns+`
		FROM parcels p
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY p.created_at DESC, p.tracking_number`,
		args...,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parcels := make([]ParcelResponse, 0)
	for rows.Next() {
		p, scanErr := scanParcel(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		parcels = append(parcels, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
