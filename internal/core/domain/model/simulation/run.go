package simulation

import (
	"errors"
	"fmt"
	"time"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/pkg/errs"
)

var ErrRunIsNotConstructed = errors.New("Run must be created via NewRun constructor")

// Run is the aggregate root for a committed simulation.
type Run struct {
	id        kernel.UUID
	params    Parameters
	kpis      KPIs
	snapshot  Snapshot
	createdAt time.Time

	isConstructed bool
}

// NewRun records the result of a simulation with a freshly generated id.
func NewRun(params Parameters, kpis KPIs, snapshot Snapshot, createdAt time.Time) (*Run, error) {
	return RestoreRun(kernel.NewUUID(), params, kpis, snapshot, createdAt)
}

// RestoreRun rebuilds a run loaded from storage.
func RestoreRun(id kernel.UUID, params Parameters, kpis KPIs, snapshot Snapshot, createdAt time.Time) (*Run, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := params.Validate(); err != nil {
		problems = append(problems, err)
	}
	if kpis.EfficiencyScore < 0 || kpis.EfficiencyScore > 100 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("efficiency score", kpis.EfficiencyScore, 0, 100))
	}
	if kpis.OrdersAssigned > kpis.TotalOrders || kpis.OnTimeDeliveries > kpis.TotalOrders {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("kpis", fmt.Errorf(
			"assigned %d and on time %d cannot exceed total %d",
			kpis.OrdersAssigned, kpis.OnTimeDeliveries, kpis.TotalOrders)))
	}
	if createdAt.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("created at"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &Run{
		id:            id,
		params:        params,
		kpis:          kpis,
		snapshot:      snapshot,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (r *Run) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRunIsNotConstructed
	}
	return nil
}

func (r *Run) ID() kernel.UUID {
	return r.id
}

func (r *Run) Parameters() Parameters {
	return r.params
}

func (r *Run) KPIs() KPIs {
	return r.kpis
}

func (r *Run) Snapshot() Snapshot {
	return r.snapshot
}

func (r *Run) CreatedAt() time.Time {
	return r.createdAt
}
