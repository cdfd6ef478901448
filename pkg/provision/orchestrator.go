package provision

import (
	"context"
	"fmt"

	"github.com/arthur-debert/runtimeup/pkg/buildcmd"
	"github.com/arthur-debert/runtimeup/pkg/errors"
	"github.com/arthur-debert/runtimeup/pkg/extensions"
	"github.com/arthur-debert/runtimeup/pkg/logging"
	"github.com/arthur-debert/runtimeup/pkg/materialize"
	"github.com/arthur-debert/runtimeup/pkg/phases"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/rs/zerolog"
)

// PresenceChecker tells whether the runtime binary exists
type PresenceChecker interface {
	Check(binaryPath string) bool
}

// OSDetector describes the host
type OSDetector interface {
	Detect() types.OSDescriptor
}

// CommandSynthesizer builds the "install version" command
type CommandSynthesizer interface {
	Synthesize(os types.OSDescriptor, spec types.RuntimeSpec) buildcmd.BuildCommand
}

// VersionManager is the external tool building runtimes and extensions
type VersionManager interface {
	extensions.Installer

	Name() string
	InstallURL() string
	CheckInvocable(ctx context.Context) error
	IsInstalled(ctx context.Context, spec types.RuntimeSpec) (bool, error)
	Install(ctx context.Context, cmd buildcmd.BuildCommand, onLine types.LineHandler) error

	VersionCommand() string
	ListCommand() string
	ExtensionInstallCommand(version string, ext types.ExtensionSpec) (string, error)
}

// ConfigMaterializer renders the runtime configuration file
type ConfigMaterializer interface {
	Materialize(req materialize.Request) bool
}

// Options wire an Orchestrator
type Options struct {
	Runtime    types.RuntimeSpec
	Extensions []types.ExtensionSpec
	Template   types.TemplateSpec

	Presence     PresenceChecker
	Detector     OSDetector
	Synthesizer  CommandSynthesizer
	Tool         VersionManager
	Materializer ConfigMaterializer
	Reporter     types.Logger

	// FS is only used by Status to look for the configuration file
	FS types.FS

	// Observer, when set, sees every state transition
	Observer func(Transition)
}

// Orchestrator runs the provisioning pipeline. It is not safe for
// concurrent use.
type Orchestrator struct {
	opts        Options
	displayName string
	reconciler  *extensions.Reconciler
	logger      zerolog.Logger

	state       State
	transitions []Transition
}

// New returns an Orchestrator
func New(opts Options) *Orchestrator {
	name := opts.Template.DisplayName
	if name == "" {
		name = "PHP"
	}
	return &Orchestrator{
		opts:        opts,
		displayName: name,
		reconciler:  extensions.NewReconciler(opts.Tool, opts.Runtime, name, opts.Reporter),
		logger:      logging.GetLogger("provision").With().Str("version", opts.Runtime.RequiredVersion).Logger(),
		state:       StateStart,
	}
}

// Run executes the pipeline and reports success
func (o *Orchestrator) Run(ctx context.Context) bool {
	return o.Execute(ctx).Succeeded()
}

// Execute runs the pipeline from Start
func (o *Orchestrator) Execute(ctx context.Context) Result {
	o.state = StateStart
	o.transitions = nil

	done := logging.LogOperationStart(o.logger, "provision")
	defer done()

	version := o.opts.Runtime.RequiredVersion

	o.enter(StateCheckingPresence)
	o.opts.Reporter.Info(fmt.Sprintf("Checking %s...", o.displayName))

	if o.opts.Presence.Check(o.opts.Runtime.BinaryPath) {
		o.enter(StateUsingCached)
		o.opts.Reporter.Info(fmt.Sprintf("Using %s version %s", o.displayName, version))
	} else {
		o.enter(StateBuilding)
		o.opts.Reporter.Warn(fmt.Sprintf("Required %s version %s not found in cache, starting build...", o.displayName, version))
		o.opts.Reporter.Info("This operation can take some time")

		if err := o.build(ctx); err != nil {
			return o.fail(err)
		}

		o.enter(StateConfiguringTemplate)
		if !o.opts.Materializer.Materialize(materialize.RequestFor(o.opts.Template, true)) {
			return o.fail(errors.Newf(errors.ErrConfigFailed, "configuring %s failed", o.displayName).
				WithDetail("target", o.opts.Template.TargetPath))
		}
	}

	o.enter(StateReconcilingExtensions)
	if err := o.reconciler.ReconcileInstalledErr(ctx, o.opts.Extensions); err != nil {
		o.reconciler.Report(err)
		return o.fail(err)
	}

	o.enter(StateDone)
	return o.result(nil)
}

// build verifies the tool, then compiles the version unless the tool
// already lists it
func (o *Orchestrator) build(ctx context.Context) error {
	done := logging.LogOperationStart(o.logger, "build")
	defer done()

	version := o.opts.Runtime.RequiredVersion
	tool := o.opts.Tool

	if err := tool.CheckInvocable(ctx); err != nil {
		o.logger.Error().Err(err).Msg("Version manager unavailable")
		if errors.IsErrorCode(err, errors.ErrToolMissing) {
			o.opts.Reporter.Error(
				fmt.Sprintf("Package %s is not installed!", tool.Name()),
				fmt.Sprintf("To install, follow these instructions: %s", tool.InstallURL()),
			)
		} else {
			o.reportBuildError(err)
		}
		return err
	}

	host := o.opts.Detector.Detect()
	o.logger.Debug().Str("os", host.String()).Msg("Detected host")

	installed, err := tool.IsInstalled(ctx, o.opts.Runtime)
	if err != nil {
		o.logger.Error().Err(err).Msg("Listing installed versions failed")
		o.reportBuildError(err)
		return err
	}
	if installed {
		o.logger.Info().Msg("Version already built by the version manager")
		o.opts.Reporter.Info(fmt.Sprintf("%s-%s is already compiled", o.displayName, version))
		return nil
	}

	o.opts.Reporter.Info(fmt.Sprintf("Compiling and building %s-%s...", o.displayName, version))
	cmd := o.opts.Synthesizer.Synthesize(host, o.opts.Runtime)

	tracker := phases.NewTracker(phases.NewBuildClassifier(), func(p types.Phase) {
		o.opts.Reporter.Info(fmt.Sprintf("%s %s-%s...", p.Label(), o.displayName, version))
	})
	if err := tool.Install(ctx, cmd, tracker.LineHandler()); err != nil {
		o.logger.Error().
			Err(err).
			Interface("details", errors.GetErrorDetails(err)).
			Strs("phases", phaseNames(tracker.Transitions())).
			Msg("Build failed")
		o.reportBuildError(err)
		return err
	}

	o.opts.Reporter.Info(fmt.Sprintf("%s compiled successfully!", o.displayName))
	return nil
}

func (o *Orchestrator) reportBuildError(err error) {
	o.opts.Reporter.Error(
		fmt.Sprintf("Unexpected error while compiling and building %s. %s", o.displayName, extensions.SeeLogHint),
		errors.UserMessage(err),
	)
}

func (o *Orchestrator) enter(next State) {
	t := Transition{From: o.state, To: next}
	o.logger.Debug().Str("from", string(t.From)).Str("to", string(t.To)).Msg("State transition")
	o.state = next
	o.transitions = append(o.transitions, t)
	if o.opts.Observer != nil {
		o.opts.Observer(t)
	}
}

func (o *Orchestrator) fail(err error) Result {
	o.logger.Error().
		Err(err).
		Str("stage", string(o.state)).
		Str("code", string(errors.GetErrorCode(err))).
		Msg("Provisioning failed")
	o.enter(StateFailed)
	return o.result(err)
}

func (o *Orchestrator) result(err error) Result {
	transitions := make([]Transition, len(o.transitions))
	copy(transitions, o.transitions)
	return Result{State: o.state, Transitions: transitions, Err: err}
}

func phaseNames(ps []types.Phase) []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, string(p))
	}
	return names
}
