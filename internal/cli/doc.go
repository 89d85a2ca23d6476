// Package cli provides the interactive PrefKeeper terminal front-end.
//
// It wires configuration, the account and ledger stores, the catalog loader
// and the export service, and runs a REPL in which respondents answer the
// catalog one question at a time. The "admin" identity additionally lists and
// deletes accounts, exports everyone's answers and views statistics.
//
// Navigation state lives in a survey.Session owned by the App; the services
// it calls hold none.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
