// Package panel wires configuration, storage, the classifier, and the
// decision engine together for the CLI.
//
// Each operation opens a session from Options (load settings, open the
// configured repository backend, seed configured sensors, build the engine),
// performs one synchronous engine call, and closes the backend.
package panel
