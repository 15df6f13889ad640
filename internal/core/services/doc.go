// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The aggregation pipeline lives here: provider fan-out, normalisation,
// scoring, sectioning, and the time-bucketed result cache.
package services
