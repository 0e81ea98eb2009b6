// Package services provides domain services that implement business operations
// spanning multiple domain entities in the fulfillment system. It holds logic
// that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - Validator: A pure rule engine that checks an incoming order candidate
//     and produces a validation result with errors and warnings
//   - Fingerprinter: Deterministic content fingerprinting used for duplicate
//     order detection
//   - BatchPlanner: Deterministic grouping of eligible orders into batch
//     proposals with savings estimates
//
// All services in this package are stateless and side-effect free; persistence
// and messaging are handled by the application layer.
package services
