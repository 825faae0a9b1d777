// Package checks implements the individual integrity checks.
//
// Each check is a plain function over the storage client or the database so it can be
// run from HTTP handlers and tests alike.
package checks
