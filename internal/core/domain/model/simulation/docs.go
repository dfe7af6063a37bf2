// Package simulation provides the SimulationRun aggregate: the immutable
// audit record of one allocation run, its input parameters, the KPIs it
// produced and a snapshot of every allocation decision.
//
// A run is created once, after the allocation has been evaluated, and is
// never modified afterwards.
package simulation
