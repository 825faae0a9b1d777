// Package loader registers the HTTP features of the service.
//
// A Feature reports its name, whether it is enabled, and mounts its routes in Load.
// Manager.LoadAll rejects duplicate names, skips disabled features and stops on the
// first Load error. The restrictions and integrity features are registered from the
// start command.
package loader
