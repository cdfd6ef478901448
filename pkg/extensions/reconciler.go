// Package extensions brings the runtime's loaded extensions in line with
// the required set, installing only what is missing.
package extensions

import (
	"context"
	"fmt"

	"github.com/arthur-debert/runtimeup/pkg/errors"
	"github.com/arthur-debert/runtimeup/pkg/logging"
	"github.com/arthur-debert/runtimeup/pkg/phases"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/rs/zerolog"
)

// SeeLogHint ends every user facing failure message
const SeeLogHint = "See ERROR log above."

// Installer is the part of the version manager the reconciler needs
type Installer interface {
	LoadedExtensions(ctx context.Context, binaryPath string) (types.ExtensionSet, error)
	InstallExtension(ctx context.Context, version string, ext types.ExtensionSpec, onLine types.LineHandler) error
}

// Reconciler installs missing extensions into one runtime version
type Reconciler struct {
	installer   Installer
	runtime     types.RuntimeSpec
	displayName string
	reporter    types.Logger
	logger      zerolog.Logger
}

// NewReconciler returns a Reconciler for runtime. displayName prefixes
// progress messages, e.g. "PHP".
func NewReconciler(installer Installer, runtime types.RuntimeSpec, displayName string, reporter types.Logger) *Reconciler {
	return &Reconciler{
		installer:   installer,
		runtime:     runtime,
		displayName: displayName,
		reporter:    reporter,
		logger:      logging.GetLogger("extensions").With().Str("version", runtime.RequiredVersion).Logger(),
	}
}

// Missing returns the required extensions absent from loaded, in
// declared order
func Missing(required []types.ExtensionSpec, loaded types.ExtensionSet) []types.ExtensionSpec {
	var missing []types.ExtensionSpec
	for _, ext := range required {
		if !loaded.Has(ext.Name) {
			missing = append(missing, ext)
		}
	}
	return missing
}

// Reconcile installs required minus loaded and reports success.
// Failures are logged, never returned.
func (r *Reconciler) Reconcile(ctx context.Context, required []types.ExtensionSpec, loaded types.ExtensionSet) bool {
	return r.Report(r.ReconcileErr(ctx, required, loaded))
}

// ReconcileErr is Reconcile returning the first failure. Installs that
// completed before it are left in place.
func (r *Reconciler) ReconcileErr(ctx context.Context, required []types.ExtensionSpec, loaded types.ExtensionSet) error {
	missing := Missing(required, loaded)
	if len(missing) == 0 {
		r.logger.Info().Int("required", len(required)).Msg("All extensions already loaded")
		return nil
	}

	r.logger.Info().Int("missing", len(missing)).Msg("Installing missing extensions")
	for _, ext := range missing {
		if err := r.install(ctx, ext); err != nil {
			return err
		}
	}
	r.reporter.Info(fmt.Sprintf("%s extensions are installed", r.displayName))
	return nil
}

// ReconcileInstalled lists what the runtime binary already loads and
// reconciles against it.
func (r *Reconciler) ReconcileInstalled(ctx context.Context, required []types.ExtensionSpec) bool {
	return r.Report(r.ReconcileInstalledErr(ctx, required))
}

// ReconcileInstalledErr is ReconcileInstalled returning the failure
func (r *Reconciler) ReconcileInstalledErr(ctx context.Context, required []types.ExtensionSpec) error {
	loaded, err := r.installer.LoadedExtensions(ctx, r.runtime.BinaryPath)
	if err != nil {
		return err
	}
	r.logger.Debug().Strs("loaded", loaded.Names()).Msg("Listed loaded extensions")
	return r.ReconcileErr(ctx, required, loaded)
}

func (r *Reconciler) install(ctx context.Context, ext types.ExtensionSpec) error {
	logger := r.logger.With().Str("extension", ext.Name).Logger()
	done := logging.LogOperationStart(logger, "install extension")
	defer done()

	if ext.HasBuildOptions() {
		r.reporter.Info(fmt.Sprintf("Installing %s extension %s with options %q...", r.displayName, ext.Name, ext.BuildOptions))
	} else {
		r.reporter.Info(fmt.Sprintf("Installing %s extension %s...", r.displayName, ext.Name))
	}

	tracker := phases.NewTracker(phases.NewExtensionClassifier(), func(p types.Phase) {
		r.reporter.Info(fmt.Sprintf("%s %s extension %s...", p.Label(), r.displayName, ext.Name))
	})

	if err := r.installer.InstallExtension(ctx, r.runtime.RequiredVersion, ext, tracker.LineHandler()); err != nil {
		return err
	}

	r.reporter.Info(fmt.Sprintf("%s extension %s installed", r.displayName, ext.Name))
	return nil
}

// Report logs err and tells the user, returning err == nil
func (r *Reconciler) Report(err error) bool {
	if err == nil {
		return true
	}
	r.logger.Error().
		Err(err).
		Str("code", string(errors.GetErrorCode(err))).
		Interface("details", errors.GetErrorDetails(err)).
		Msg("Extension reconciliation failed")
	r.reporter.Error(fmt.Sprintf("Failed to install %s extensions. %s", r.displayName, SeeLogHint), errors.UserMessage(err))
	return false
}
