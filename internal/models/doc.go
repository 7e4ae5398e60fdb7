// Package models defines the persisted domain records for Splitkaro.
//
// # Records
//
//   - User: registered account, identified externally by email
//   - Group: a set of members who split expenses together
//   - GroupMember: membership with a role; leaving is a soft delete
//   - Expense: an amount paid by one member on behalf of participants
//   - ExpenseSplit: one participant's owed portion of an expense
//   - Settlement: a recorded payment from a debtor to a creditor
//
// Expenses, splits, and settlements are written once and never mutated;
// balances, the participation relation, and settlement suggestions are
// derived from them per request (see the ledger package) and are never
// stored.
//
// All money fields are int64 minor currency units. Timestamps are Unix
// seconds. Relationships use ID strings rather than pointers to avoid
// circular references.
package models
