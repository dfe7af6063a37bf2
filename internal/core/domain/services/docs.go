// Package services provides the domain services of the allocation engine.
// They operate on in-memory snapshots of drivers, orders and routes and
// never perform I/O.
//
// The package includes:
//   - Rule set: pure pricing and timing functions (FuelCost, LatePenalty, ...)
//   - CandidateSelector: eligibility filtering and ordering of drivers and orders
//   - Allocator: capacity-bounded round-robin assignment of orders to drivers
//   - OutcomeEvaluator: simulated delivery times and per-order financials
//   - Summarize: KPI and driver workload aggregation
//
// Control flow within one run:
//
//	CandidateSelector -> Allocator -> OutcomeEvaluator -> Summarize
package services
