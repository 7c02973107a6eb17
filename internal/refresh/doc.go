// Package refresh provides the orchestration core for the partition refresh
// workflow: clone the boot and data volumes of a running source partition,
// attach the clones to a target partition, configure its boot device, start
// it, and confirm it reaches ACTIVE.
//
// # Stages
//
//   - resume guard — detect and resume a previously interrupted run
//   - identify — classify the source partition's boot and data volumes
//   - clone — submit one async clone task and track it to a terminal state
//   - availability — wait for each clone to report available
//   - attach — attach the clones and confirm visibility within a bound
//   - boot — configure boot mode, start, and poll to ACTIVE
//
// # Core Types
//
// Context carries configuration, timeouts, the control-plane client, the
// Observer, and the run State. State accumulates resolved ids as stages
// complete, plus the FailedStage tag and JobSuccess flag the exit-time
// recovery classifier reads. Run drives the stages in order and always
// invokes the classifier afterwards, success or not.
package refresh
