// Package middleware groups the Fiber middleware shared by every feature.
//
// Subpackages:
//   - rayid tags each request with an X-Ray-ID header and stores it in the locals
//     so handler logs can be correlated.
//   - auth requires the configured API key on the feature routes. Swagger and
//     /metrics are registered before it and stay public.
package middleware
