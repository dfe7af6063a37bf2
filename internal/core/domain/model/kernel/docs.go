// Package kernel holds value objects shared by every aggregate of the
// simulation: identifiers and currency/time arithmetic helpers.
package kernel
