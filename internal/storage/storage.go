// Package storage provides the key-value store the whole application
// persists through.
//
// The store emulates the browser's localStorage: a flat namespace of
// string keys, each holding one JSON document. Every logical "table"
// (users, meals, profiles, ...) is a single JSON array under one fixed key,
// and the localdb package reads and rewrites whole regions at a time.
//
// FIRE-AND-FORGET FAILURE POLICY:
// Neither Get nor Set returns an error — that is the contract, not an
// oversight. A missing key, unparsable JSON, or a broken backend on read
// leaves the caller's default value in place; a failed write (disk full,
// closed connection) is logged and swallowed, and the mutation appears to
// succeed. localStorage behaves exactly this way from the application's
// point of view, and the repositories above are written against that
// guarantee: no storage error ever crosses this boundary.
package storage

import "context"

// Store is the flat string-keyed JSON store.
//
// Get unmarshals the value at key into out (a pointer). If the key is
// missing or the stored text is not valid JSON for out's type, out is left
// exactly as the caller initialised it — so the caller's initial value IS
// the default.
//
// Set marshals value to JSON and writes it under key. Failures are logged
// inside the implementation and never reported.
//
// Remove deletes the key outright (used for the session pointer on logout).
type Store interface {
	Get(ctx context.Context, key string, out any)
	Set(ctx context.Context, key string, value any)
	Remove(ctx context.Context, key string)
}
