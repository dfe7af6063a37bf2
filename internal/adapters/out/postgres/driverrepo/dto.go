// Package driverrepo persists driver aggregates with GORM.
package driverrepo

import (
	"time"

	"dispatchsim/internal/core/domain/model/driver"
	"dispatchsim/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is the drivers table row.
type DriverDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(100);not null"`
	Status            string    `gorm:"type:varchar(20);not null;index"`
	CurrentShiftHours float64   `gorm:"column:current_shift_hours;not null;default:0"`
	Past7DayWorkHours float64   `gorm:"column:past_7_day_work_hours;not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:                d.ID().Bytes(),
		Name:              d.Name(),
		Status:            d.Status().String(),
		CurrentShiftHours: d.CurrentShiftHours(),
		Past7DayWorkHours: d.Past7DayWorkHours(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := driver.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(id, dto.Name, status, dto.CurrentShiftHours, dto.Past7DayWorkHours)
}
