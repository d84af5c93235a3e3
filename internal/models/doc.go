// Package models defines the core domain models for the housetab ledger.
//
// # Models
//
//   - User: a registered account; houses are made of users
//   - House: the scoping boundary for all ledger data
//   - Member: a user's membership in a house (the roster entry)
//   - Expense: something one member paid for on behalf of the house
//   - ExpenseSplit: one debtor's owed share of a single Expense
//
// Balances are never persisted. They are derived on every read from the
// unsettled splits of a house (see the balance package), which is what
// keeps them from drifting away from the ledger.
//
// # Design Principles
//
//  1. Splits are owned by their Expense (composition): deleting an
//     Expense deletes its splits via the storage cascade.
//  2. The payer's own share of an Expense is never stored as a split
//     row; it is the remainder amount - sum(splits), exposed through
//     Expense.PayerShare.
//  3. Relationships use ID strings instead of pointers to avoid
//     circular references.
package models
