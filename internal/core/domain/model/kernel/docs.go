// Package kernel holds the value objects shared by every aggregate of the
// print-shop domain. Today that is UUID, the identifier type used for clients,
// products, orders, order items and outbox messages.
package kernel
