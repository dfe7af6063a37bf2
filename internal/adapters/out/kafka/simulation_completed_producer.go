// Package kafka publishes simulation events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dispatchsim/internal/core/domain/model/simulation"
	"dispatchsim/internal/pkg/errs"

	"github.com/IBM/sarama"
	"github.com/lucsky/cuid"
)

// SimulationCompletedEventType is sent in the event_type header.
const SimulationCompletedEventType = "simulation.completed"

// SimulationCompletedEvent is the message value. It carries the run KPIs;
// the full snapshot stays in the database and the archive. EventID is unique
// per publication so consumers can drop redeliveries.
type SimulationCompletedEvent struct {
	EventID           string    `json:"event_id"`
	RunID             string    `json:"run_id"`
	CreatedAt         time.Time `json:"created_at"`
	AvailableDrivers  int       `json:"available_drivers"`
	RouteStartTime    string    `json:"route_start_time"`
	MaxHoursPerDriver float64   `json:"max_hours_per_driver"`
	TotalOrders       int       `json:"total_orders"`
	OrdersAssigned    int       `json:"orders_assigned"`
	OnTimeDeliveries  int       `json:"on_time_deliveries"`
	TotalPenalties    float64   `json:"total_penalties"`
	TotalBonuses      float64   `json:"total_bonuses"`
	TotalFuelCost     float64   `json:"total_fuel_cost"`
	OverallProfit     float64   `json:"overall_profit"`
	EfficiencyScore   float64   `json:"efficiency_score"`
	UnassignedOrders  []string  `json:"unassigned_orders"`
}

func NewSimulationCompletedEvent(run *simulation.Run) SimulationCompletedEvent {
	params := run.Parameters()
	kpis := run.KPIs()
	unassigned := append([]string{}, run.Snapshot().UnassignedOrders...)

	return SimulationCompletedEvent{
		EventID:           cuid.New(),
		RunID:             run.ID().String(),
		CreatedAt:         run.CreatedAt(),
		AvailableDrivers:  params.AvailableDrivers(),
		RouteStartTime:    params.RouteStartTime(),
		MaxHoursPerDriver: params.MaxHoursPerDriver(),
		TotalOrders:       kpis.TotalOrders,
		OrdersAssigned:    kpis.OrdersAssigned,
		OnTimeDeliveries:  kpis.OnTimeDeliveries,
		TotalPenalties:    kpis.TotalPenalties,
		TotalBonuses:      kpis.TotalBonuses,
		TotalFuelCost:     kpis.TotalFuelCost,
		OverallProfit:     kpis.OverallProfit,
		EfficiencyScore:   kpis.EfficiencyScore,
		UnassignedOrders:  unassigned,
	}
}

// SimulationCompletedProducer implements ports.SimulationEventPublisher.
// Messages are keyed by run id.
type SimulationCompletedProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewSimulationCompletedProducer connects a synchronous producer that waits
// for all in-sync replicas.
func NewSimulationCompletedProducer(brokers []string, topic string) (*SimulationCompletedProducer, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return NewSimulationCompletedProducerWith(producer, topic)
}

// NewSimulationCompletedProducerWith wraps an existing producer.
func NewSimulationCompletedProducerWith(producer sarama.SyncProducer, topic string) (*SimulationCompletedProducer, error) {
	if producer == nil {
		return nil, errs.NewValueIsRequiredError("producer")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	return &SimulationCompletedProducer{producer: producer, topic: topic}, nil
}

func (p *SimulationCompletedProducer) PublishSimulationCompleted(ctx context.Context, run *simulation.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := run.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(NewSimulationCompletedEvent(run))
	if err != nil {
		return err
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(run.ID().String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(SimulationCompletedEventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send %s to topic %s: %w", SimulationCompletedEventType, p.topic, err)
	}

	return nil
}

func (p *SimulationCompletedProducer) Close() error {
	return p.producer.Close()
}
