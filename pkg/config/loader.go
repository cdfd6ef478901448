package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/runtimeup/pkg/errors"
	"github.com/arthur-debert/runtimeup/pkg/logging"
	"github.com/arthur-debert/runtimeup/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables overriding configuration.
// RUNTIMEUP_RUNTIME_BINARY_PATH maps to runtime.binary_path.
const EnvPrefix = "RUNTIMEUP_"

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile is an explicit user config file. When empty the default
	// XDG location is used if it exists.
	ConfigFile string

	// Overrides are applied last, keyed by dotted path (e.g. "runtime.version")
	Overrides map[string]interface{}

	// SkipEnv disables environment variable overrides
	SkipEnv bool
}

// Load builds the configuration from defaults, user file, environment and overrides
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Load system defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Load user config if it exists
	configFile := opts.ConfigFile
	explicit := configFile != ""
	if !explicit {
		configFile = paths.DefaultConfigFile()
	}
	configFile = paths.ExpandHome(configFile)

	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), parserFor(configFile)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", configFile).
				WithDetail("path", configFile)
		}
		logger.Debug().Str("path", configFile).Msg("Loaded user config")
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", configFile).
			WithDetail("path", configFile)
	}

	// 3. Load env vars
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
			return strings.Replace(key, "_", ".", 1)
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Command line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	// 6. Post-process
	postProcessConfig(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// parserFor selects the koanf parser from the file extension
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// postProcessConfig fills values derived from the runtime version
func postProcessConfig(cfg *Config) {
	version := cfg.Runtime.Version
	if cfg.Runtime.VersionPattern == "" && version != "" {
		cfg.Runtime.VersionPattern = DefaultVersionPattern(version)
	}
	if cfg.Runtime.BinaryPath == "" && version != "" {
		cfg.Runtime.BinaryPath = filepath.Join("~", ".phpbrew", "php", "php-"+version, "bin", "php")
	}
	if cfg.Template.Target == "" && version != "" {
		cfg.Template.Target = filepath.Join("~", ".phpbrew", "php", "php-"+version, "etc", "php.ini")
	}
	if cfg.Template.DisplayName == "" {
		cfg.Template.DisplayName = cfg.Tool.Name
	}
	if cfg.Tool.Shell == "" {
		cfg.Tool.Shell = "bash"
	}
}

// DefaultVersionPattern matches the version as a whole word in the version
// manager listing, so 8.1.0 does not match 8.1.01.
func DefaultVersionPattern(version string) string {
	return `(^|[^0-9.])` + regexp.QuoteMeta(version) + `($|[^0-9.])`
}

// Validate checks the invariants the provisioning pipeline relies on
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Runtime.Version) == "" {
		return errors.New(errors.ErrConfigValid, "runtime.version must not be empty")
	}
	if _, err := regexp.Compile(c.Runtime.VersionPattern); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "runtime.version_pattern %q is not a valid regular expression", c.Runtime.VersionPattern)
	}
	if strings.TrimSpace(c.Runtime.BinaryPath) == "" {
		return errors.New(errors.ErrConfigValid, "runtime.binary_path must not be empty")
	}
	if strings.TrimSpace(c.Tool.Name) == "" {
		return errors.New(errors.ErrConfigValid, "tool.name must not be empty")
	}
	if c.Tool.Timeout < 0 {
		return errors.Newf(errors.ErrConfigValid, "tool.timeout must not be negative, got %s", c.Tool.Timeout)
	}

	seen := make(map[string]bool, len(c.Extensions))
	for i, ext := range c.Extensions {
		name := strings.TrimSpace(ext.Name)
		if name == "" {
			return errors.Newf(errors.ErrConfigValid, "extensions[%d].name must not be empty", i)
		}
		// names compare like types.ExtensionSet does
		key := strings.ToLower(name)
		if seen[key] {
			return errors.Newf(errors.ErrConfigValid, "extension %q is declared more than once", name).
				WithDetail("extension", name)
		}
		seen[key] = true
	}

	return nil
}

// String is used in log lines
func (c *Config) String() string {
	return fmt.Sprintf("%s %s (%d extensions)", c.Tool.Name, c.Runtime.Version, len(c.Extensions))
}
