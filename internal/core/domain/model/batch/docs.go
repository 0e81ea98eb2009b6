// Package batch provides the Batch aggregate: an immutable grouping snapshot
// of orders sharing a strategy, created for bulk action efficiency.
//
// A batch records which orders were grouped, the strategy that grouped them,
// the status they were eligible in at creation time, and a savings estimate.
// Membership never changes after creation; the batch is retired when all its
// members leave the eligible status that produced it.
package batch
