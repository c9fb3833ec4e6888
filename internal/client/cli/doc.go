// Package cli provides the interactive gophwallet command-line client.
//
// It wires configuration, a transport (HTTP or gRPC) and a small REPL that
// covers the account lifecycle:
//   - signup / signin / logout
//   - me: show the signed-in profile
//   - update: change first name, last name or password
//   - users [filter]: list users whose first or last name contains filter
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
