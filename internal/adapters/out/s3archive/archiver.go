// Package s3archive copies committed simulation runs to S3 as JSON documents.
package s3archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"dispatchsim/internal/adapters/out/postgres/simulationrepo"
	"dispatchsim/internal/core/domain/model/simulation"
	"dispatchsim/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of *s3.Client the archiver uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// RunDocument is the archived object. simulation_data has the same shape as
// the simulation_runs.simulation_data column.
type RunDocument struct {
	RunID             string                          `json:"run_id"`
	CreatedAt         time.Time                       `json:"created_at"`
	AvailableDrivers  int                             `json:"available_drivers"`
	RouteStartTime    string                          `json:"route_start_time"`
	MaxHoursPerDriver float64                         `json:"max_hours_per_driver"`
	KPIs              KPIDocument                     `json:"kpis"`
	SimulationData    simulationrepo.SnapshotDocument `json:"simulation_data"`
}

type KPIDocument struct {
	TotalOrders      int     `json:"total_orders"`
	OrdersAssigned   int     `json:"orders_assigned"`
	OnTimeDeliveries int     `json:"on_time_deliveries"`
	TotalPenalties   float64 `json:"total_penalties"`
	TotalBonuses     float64 `json:"total_bonuses"`
	TotalFuelCost    float64 `json:"total_fuel_cost"`
	OverallProfit    float64 `json:"overall_profit"`
	EfficiencyScore  float64 `json:"efficiency_score"`
}

// SnapshotArchiver implements ports.SnapshotArchiver.
type SnapshotArchiver struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewSnapshotArchiver loads the default AWS configuration for region.
func NewSnapshotArchiver(ctx context.Context, region, bucket, prefix string) (*SnapshotArchiver, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return NewSnapshotArchiverWith(s3.NewFromConfig(cfg), bucket, prefix)
}

func NewSnapshotArchiverWith(client ObjectPutter, bucket, prefix string) (*SnapshotArchiver, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}
	return &SnapshotArchiver{client: client, bucket: bucket, prefix: prefix}, nil
}

// ObjectKey is <prefix>/YYYY/MM/DD/<run id>.json, dated by the run's UTC creation time.
func (a *SnapshotArchiver) ObjectKey(run *simulation.Run) string {
	day := run.CreatedAt().UTC()
	return path.Join(a.prefix, day.Format("2006/01/02"), run.ID().String()+".json")
}

func (a *SnapshotArchiver) Archive(ctx context.Context, run *simulation.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	params := run.Parameters()
	kpis := run.KPIs()
	body, err := json.Marshal(RunDocument{
		RunID:             run.ID().String(),
		CreatedAt:         run.CreatedAt(),
		AvailableDrivers:  params.AvailableDrivers(),
		RouteStartTime:    params.RouteStartTime(),
		MaxHoursPerDriver: params.MaxHoursPerDriver(),
		KPIs: KPIDocument{
			TotalOrders:      kpis.TotalOrders,
			OrdersAssigned:   kpis.OrdersAssigned,
			OnTimeDeliveries: kpis.OnTimeDeliveries,
			TotalPenalties:   kpis.TotalPenalties,
			TotalBonuses:     kpis.TotalBonuses,
			TotalFuelCost:    kpis.TotalFuelCost,
			OverallProfit:    kpis.OverallProfit,
			EfficiencyScore:  kpis.EfficiencyScore,
		},
		SimulationData: simulationrepo.NewSnapshotDocument(run.Snapshot()),
	})
	if err != nil {
		return err
	}

	key := a.ObjectKey(run)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("unable to upload %s to bucket %s: %w", key, a.bucket, err)
	}

	return nil
}
