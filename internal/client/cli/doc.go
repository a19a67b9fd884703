// Package cli provides the interactive shopadmin terminal client.
//
// It wires configuration, local storage, the REST client and the services,
// restores the previous session, starts a background session watcher and runs
// a REPL. Each screen is a command; which commands a user sees follows the
// role policy: admins get every screen, store clerks get the product list and
// the quantity update.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
