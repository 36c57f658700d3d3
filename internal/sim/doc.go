// Package sim provides the fixed-step simulation primitives for the
// longitudinal vehicle model:
//
//   - [Snapshot]: recorded vehicle state at one sample instant
//   - [Command]: throttle/incline input applied over a step
//   - [Model]: the stateful plant interface (Step/Reset/Snapshot)
//   - [Driver]: open-loop input schedule
//   - [Runner]: orchestrates runs and records trajectories
//
// # Thread Safety
//
// Runner and Model instances are NOT thread-safe. For parallel runs,
// give each goroutine its own Runner and Model; instances share no
// state.
package sim
