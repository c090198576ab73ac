// Package cli is a line-oriented front-end for SharkBite.
//
// It reads commands from standard input, prompts for missing arguments and
// calls the services layer. Commands offered depend on the role of the
// logged-in user; the services layer enforces the same rules, so the CLI
// never has to be trusted for access control.
package cli
