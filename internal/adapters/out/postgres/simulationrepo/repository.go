package simulationrepo

import (
	"context"
	"errors"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/simulation"
	"dispatchsim/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormSimulationRunRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormSimulationRunRepository(db *gorm.DB, tracker aggregateTracker) *GormSimulationRunRepository {
	return &GormSimulationRunRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormSimulationRunRepository) Add(ctx context.Context, run *simulation.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(run)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(run.ID().String(), run)
	return nil
}

func (r *GormSimulationRunRepository) Get(ctx context.Context, id kernel.UUID) (*simulation.Run, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SimulationRunDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("simulation run", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormSimulationRunRepository) ListRecent(ctx context.Context, limit int) ([]*simulation.Run, error) {
	var dtos []SimulationRunDTO
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	runs := make([]*simulation.Run, 0, len(dtos))
	for _, dto := range dtos {
		run, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}
