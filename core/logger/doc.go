// Package logger builds the zap logger used across the service.
//
// Level accepts any zap level name. Format is json for production or console for
// local runs; the debug level switches to zap's development config.
//
// Handlers log through WithRayID so every line of a request carries the ray_id
// set by the rayid middleware:
//
//	l := logger.WithRayID(h.service.logger, c)
//	l.Error("Reconciliation request failed", zap.Error(err))
package logger
