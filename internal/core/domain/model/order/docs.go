// Package order provides the Order aggregate and its OrderItems together with
// the vocabulary of the progress state machine they share.
//
// The package includes:
//   - Status: the closed five-value status enum shared by orders and items
//   - HistoryEntry: an immutable audit record appended to an order
//   - Item: one product line of an order progressing through process steps
//   - Order: the aggregate root owning the append-only history
//   - Label: the rule naming history entries after a transition
//   - board ordering and the 48h visibility policy for cancelled orders
//
// Key business rules:
//   - history is append-only; entries are never edited or removed
//   - an item's step index, when present, addresses one of its product's steps
//   - no status transition is globally forbidden; operations enforce their own
//     preconditions
//
// Cross-aggregate behaviour (advancing an item and recording it on the parent
// order, deriving order status from items) lives in the domain services
// package.
package order
