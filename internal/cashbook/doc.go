// Package cashbook turns a snapshot of contas into the filtered, ordered,
// bucketed and totalled views that back the cash book screen and its
// reports. Every function is pure: inputs are never mutated and each call
// returns freshly allocated output, so concurrent calls need no locking.
package cashbook
