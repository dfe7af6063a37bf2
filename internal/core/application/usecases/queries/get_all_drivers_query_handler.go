package queries

import (
	"context"

	"dispatchsim/internal/core/domain/model/driver"
	"dispatchsim/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllDriversQueryHandler reads drivers straight from the drivers table.
//
// Example:
//
//	handler := NewGetAllDriversQueryHandler(db)
//	drivers, err := handler.Handle(ctx, NewGetAllDriversQuery())
type GetAllDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetAllDriversQueryHandler creates a handler for driver retrieval queries.
func NewGetAllDriversQueryHandler(db *gorm.DB) GetAllDriversQueryHandler {
	return GetAllDriversQueryHandler{db: db}
}

// Handle returns all drivers sorted by name. IsFatigued is derived from the
// trailing 7-day hours with the same threshold the allocator uses.
func (h GetAllDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAllDriversQuery,
) ([]GetAllDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]GetAllDriversQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			status,
			current_shift_hours,
			past_7_day_work_hours
		FROM drivers
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d GetAllDriversQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&d.Name,
			&d.Status,
			&d.CurrentShiftHours,
			&d.Past7DayWorkHours,
		)
		if err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		d.ID = driverID
		d.IsFatigued = d.Past7DayWorkHours > driver.FatigueThresholdHours

		drivers = append(drivers, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
