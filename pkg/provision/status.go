package provision

import (
	"context"
	"fmt"

	"github.com/arthur-debert/runtimeup/pkg/buildcmd"
	"github.com/arthur-debert/runtimeup/pkg/errors"
	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/arthur-debert/runtimeup/pkg/versionmanager"
)

// Status inspects the host without changing it. Only read-only tool
// subcommands are run.
func (o *Orchestrator) Status(ctx context.Context) types.StatusReport {
	report := types.StatusReport{
		OS:            o.opts.Detector.Detect().String(),
		Version:       o.opts.Runtime.RequiredVersion,
		BinaryPath:    o.opts.Runtime.BinaryPath,
		BinaryPresent: o.opts.Presence.Check(o.opts.Runtime.BinaryPath),
		Tool:          o.opts.Tool.Name(),
		ConfigPath:    o.opts.Template.TargetPath,
	}

	if o.opts.FS != nil && report.ConfigPath != "" {
		if _, err := o.opts.FS.Stat(report.ConfigPath); err == nil {
			report.ConfigPresent = true
		}
	}

	if err := o.opts.Tool.CheckInvocable(ctx); err != nil {
		report.Problems = append(report.Problems, errors.UserMessage(err))
	} else {
		report.ToolAvailable = true
		installed, err := o.opts.Tool.IsInstalled(ctx, o.opts.Runtime)
		if err != nil {
			report.Problems = append(report.Problems, errors.UserMessage(err))
		}
		report.Installed = installed
	}

	loaded := types.NewExtensionSet()
	if report.BinaryPresent {
		set, err := o.opts.Tool.LoadedExtensions(ctx, o.opts.Runtime.BinaryPath)
		if err != nil {
			report.Problems = append(report.Problems, errors.UserMessage(err))
		} else {
			loaded = set
		}
	} else {
		report.Problems = append(report.Problems, fmt.Sprintf("%s binary not found at %s", o.displayName, report.BinaryPath))
	}

	for _, ext := range o.opts.Extensions {
		report.Extensions = append(report.Extensions, types.ExtensionStatus{
			Name:   ext.Name,
			Loaded: loaded.Has(ext.Name),
		})
	}

	o.logger.Debug().
		Bool("present", report.BinaryPresent).
		Bool("tool", report.ToolAvailable).
		Int("problems", len(report.Problems)).
		Msg("Status collected")
	return report
}

// Plan lists the commands Execute would run on this host, without
// running any of them
func (o *Orchestrator) Plan() types.PlanReport {
	host := o.opts.Detector.Detect()
	tool := o.opts.Tool

	plan := types.PlanReport{
		OS:            host.String(),
		Version:       o.opts.Runtime.RequiredVersion,
		BinaryPresent: o.opts.Presence.Check(o.opts.Runtime.BinaryPath),
	}

	if !plan.BinaryPresent {
		cmd := o.opts.Synthesizer.Synthesize(host, o.opts.Runtime)
		if err := cmd.Validate(); err != nil {
			plan.Notes = append(plan.Notes, errors.UserMessage(err))
		}
		plan.Commands = append(plan.Commands, tool.VersionCommand(), tool.ListCommand(), cmd.String())
		plan.ConfigTarget = o.opts.Template.TargetPath
		plan.Notes = append(plan.Notes,
			fmt.Sprintf("The build is skipped when %q already lists %s.", tool.ListCommand(), plan.Version))
	} else {
		plan.Notes = append(plan.Notes,
			fmt.Sprintf("%s %s is present at %s, nothing is built.", o.displayName, plan.Version, o.opts.Runtime.BinaryPath))
	}

	plan.Commands = append(plan.Commands, versionmanager.LoadedExtensionsCommand(o.opts.Runtime.BinaryPath))
	for _, ext := range o.opts.Extensions {
		plan.Extensions = append(plan.Extensions, ext.Name)
		command, err := tool.ExtensionInstallCommand(plan.Version, ext)
		if err != nil {
			plan.Notes = append(plan.Notes, errors.UserMessage(err))
			continue
		}
		plan.Commands = append(plan.Commands, command)
	}
	if len(o.opts.Extensions) > 0 {
		plan.Notes = append(plan.Notes, "Only extensions the runtime does not already load are installed.")
	}
	return plan
}

var _ CommandSynthesizer = (*buildcmd.Synthesizer)(nil)
var _ VersionManager = (*versionmanager.Tool)(nil)
