// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - Group: snapshot of a named group of people sharing expenses
//   - User: a member of one group, carrying the running total they have paid
//   - Transaction: a single payment recorded against one user of a group
//   - Settlement: a suggested payment that brings two members closer to an even split
//   - Summary: read-only report over a group (totals, fair share, settle-up plan)
//
// # Design Principles
//
// 1. **Values, not pointers**: models returned to callers are copies; mutating them
//    never changes ledger state.
// 2. **Name references**: a Transaction points at its owner by user name, not by
//    pointer. Removing a user sweeps the group's transactions by that name.
// 3. **Group scope**: user names are unique within a group only.
package models
