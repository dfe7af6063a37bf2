package queries

import (
	"errors"
	"time"

	"dispatchsim/internal/pkg/guard"
)

var (
	ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
		"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
	)
)

// GetPendingOrdersQuery retrieves the orders the next simulation run will
// consider, in the order it will consider them.
type GetPendingOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingOrdersQuery() GetPendingOrdersQuery {
	return GetPendingOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// GetPendingOrdersQueryResponse is a pending order joined with its route.
type GetPendingOrdersQueryResponse struct {
	OrderID           string
	ValueRs           float64
	DeliveryTimestamp time.Time
	RouteID           string
	DistanceKm        float64
	TrafficLevel      string
	BaseTimeMinutes   int
}
