// Package order provides domain entities and business logic for order
// lifecycle management in the fulfillment pipeline. It implements the Order
// aggregate root with state transitions and the exception workflow.
//
// The package includes:
//   - Order: the aggregate root owning identity, content, and lifecycle
//   - Status: a state machine enforcing legal order status transitions
//   - Candidate: a normalized payload awaiting admission
//   - Customer, Item, Payment: validated value objects for order content
//   - ValidationResult: the intake rule-engine outcome
//   - ExceptionRecord and Category: the exception workflow's data
//
// Key business rules:
//   - Orders are created only by successful intake and never deleted, only
//     transitioned to a terminal status (delivered or closed)
//   - Status moves strictly forward along the main chain one step at a time;
//     exceptions are raised from validated through packed and resolved back
//     into processing
//   - An order holds a live exception record exactly while in exception status
//   - Every mutation stamps updated_at monotonically and goes through the
//     state machine; no external write bypasses it
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
