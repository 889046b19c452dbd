package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	ferrors "github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/logging"
	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName names the configuration directories and files
	AppName = "fastidious"
	// EnvPrefix starts every environment override
	EnvPrefix = "FASTIDIOUS_"
	// ProjectFile is read from the working directory
	ProjectFile = "fastidious.toml"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions selects the optional configuration layers
type LoadOptions struct {
	// ConfigFile is an explicit file; it must exist when set
	ConfigFile string
	// WorkDir is searched for fastidious.toml; the process working
	// directory when empty
	WorkDir string
	// Overrides are applied last, keyed like "diff.tool"
	Overrides map[string]interface{}
}

// Load builds the effective configuration. Later layers win:
// embedded defaults, the user config file, ./fastidious.toml, the explicit
// config file, FASTIDIOUS_* variables, then overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, ferrors.Wrap(err, ferrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Optional files
	for _, path := range []string{UserConfigPath(), projectConfigPath(opts.WorkDir)} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", path).Msg("loaded config file")
	}

	// 3. Explicit file
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, ferrors.Wrapf(err, ferrors.ErrConfigLoad, "config file %s", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		if err := loadFile(k, opts.ConfigFile); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", opts.ConfigFile).Msg("loaded config file")
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, ferrors.Wrap(err, ferrors.ErrConfigLoad, "failed to load environment")
	}

	// 5. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, ferrors.Wrap(err, ferrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	if cfg.ScriptDir == "" {
		cfg.ScriptDir = filepath.Join(xdg.ConfigHome, AppName, "scripts")
	}
	return cfg, nil
}

// UserConfigPath is the per-user configuration file
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

func projectConfigPath(workDir string) string {
	if workDir == "" {
		workDir = "."
	}
	return filepath.Join(workDir, ProjectFile)
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return ferrors.Wrapf(err, ferrors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

// envKey maps FASTIDIOUS_DIFF__TOOL to diff.tool. A double underscore
// separates levels so single underscores can stay in key names.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, ferrors.Wrap(err, ferrors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
