// Package orchestrator wires the device catalog, default derivation, config
// overrides, theme selection and renderer registry into a single Generate
// call.
package orchestrator
