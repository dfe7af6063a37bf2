// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// SimulationJob runs the allocation engine with fixed parameters on a
// six-field cron schedule (seconds first), e.g. "0 */15 6-20 * * *".
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(runSimulationHandler, jobs.SimulationSchedule{
//		Spec:              cfg.SimulationSchedule,
//		AvailableDrivers:  cfg.SimulationScheduleDrivers,
//		RouteStartTime:    cfg.SimulationScheduleStart,
//		MaxHoursPerDriver: cfg.SimulationScheduleMaxHours,
//	}, logger)
//	if err != nil {
//		return err
//	}
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - Rejected runs (no pending orders, too few drivers) are logged at debug level
//   - Persistence failures are logged as errors; the next tick retries
//   - Invalid parameters fail NewJobManager before anything is scheduled
package jobs
