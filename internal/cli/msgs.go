package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Provision a PHP runtime and its extensions"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgInstallShort    = "Build, configure and extend the PHP runtime"
	MsgStatusShort     = "Show what is installed on this host"
	MsgPlanShort       = "Print the commands install would run"
	MsgExtensionsShort = "Install missing PHP extensions only"
	MsgGenConfigShort  = "Print the default configuration"
	MsgCompletionShort = "Generate shell completion scripts"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgInstallDone   = "PHP runtime is ready."
	MsgInstallFailed = "provisioning failed"
	MsgExtFailed     = "extension reconciliation failed"
	MsgManWritten    = "Man pages written to %s\n"

	// Version output
	MsgVersionFormat = "runtimeup version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"
)

// Long descriptions
const (
	MsgRootLong = `runtimeup provisions the PHP runtime a project needs on a developer
machine or CI host. It reuses a cached runtime when one is present,
otherwise drives phpbrew to compile it with flags suited to the host,
renders php.ini from a template and installs the PHP extensions the
runtime does not load yet.`

	MsgInstallLong = `Install runs the full provisioning pipeline:

  check presence -> build (when absent) -> render php.ini -> extensions

Each step reports progress and the first failure stops the run with a
non-zero exit status. See 'runtimeup help provisioning'.`

	MsgStatusLong = `Status inspects the host without changing it: whether the runtime
binary is present, whether phpbrew is available and lists the version,
and which required extensions are loaded.`

	MsgPlanLong = `Plan prints the shell commands install would run on this host, in
order, without running any of them.`

	MsgExtensionsLong = `Extensions compares the loaded extensions of an existing runtime with
the configured ones and installs those that are missing. Nothing is
built.`

	MsgGenConfigLong = `GenConfig prints the effective configuration as TOML, ready to be saved
as the user configuration file.`
)
