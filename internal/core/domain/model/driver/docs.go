// Package driver provides the Driver aggregate: a person who can take
// delivery orders during a shift.
//
// Key business rules:
//   - A driver is fatigued when the trailing 7-day work hours exceed 56
//   - Only available drivers can be handed work by a simulation run
//   - Taking work moves the driver to Busy and adds to the current shift hours
//   - A shift never exceeds 24 hours
package driver
