// Package domain defines the core business entities for driveminder.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Participant: A person tracked for daily upload compliance
//   - UploadRecord: A file observed in the monitored Drive folder
//   - RunSummary: The outcome counts of one reconciliation pass
//   - TriggerTime: The wall-clock time the daily pass fires
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
