// Package provision runs the runtime provisioning pipeline.
//
// The pipeline is a small state machine:
//
//	Start -> CheckingPresence -> UsingCached -> ReconcilingExtensions -> Done
//	                          \-> Building -> ConfiguringTemplate -/
//
// Any stage may move to Failed, which ends the run. A binary that is
// already present skips the configuration template entirely.
//
// Every stage handles its own errors: it logs them, tells the user and
// stops the pipeline. Run returns a plain boolean; Execute also returns the
// visited states and the structured error for callers that want them.
package provision
