// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RosterLoader: Reads the participant roster
//   - UploadLister: Resolves the monitored folder and lists upload owners
//   - Mailer: Dispatches reminder messages
//
// # Optional Interfaces
//
//   - RunStore: Journals run and dispatch outcomes. Can be nil; journalling
//     is observability only and reconciliation never reads it back.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
