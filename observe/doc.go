// Package observe instruments wascap operations with tracing, metrics and
// structured logging.
//
// Failures are attributed by their caperr code ("expired_token",
// "decode", ...) and never by parsing error strings. Operations that return
// an error outside the wascap taxonomy are attributed as "unclassified".
package observe
