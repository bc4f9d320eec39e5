package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/FrenchBear/myglob/pkg/errors"
	"github.com/FrenchBear/myglob/pkg/logging"
	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "MYGLOB_"

	// ProjectFileName is the file written by "myglob config -w"
	ProjectFileName = ".myglob.toml"
)

// projectFiles are tried in order; the first one found wins
var projectFiles = []string{ProjectFileName, ".myglob.yaml", ".myglob.yml"}

// Options selects the sources read by Load
type Options struct {
	// UserConfigPath overrides the XDG user file location
	UserConfigPath string
	// ProjectDir is searched for a project file; defaults to "."
	ProjectDir string
	// Overrides are flattened keys such as "search.autorecurse", applied last
	Overrides map[string]interface{}
}

// UserConfigPath returns $XDG_CONFIG_HOME/myglob/config.toml
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "myglob", "config.toml")
}

// Load builds the effective configuration from every layer
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = UserConfigPath()
	}
	if loaded, err := loadFileIfExists(k, userPath); err != nil {
		return nil, err
	} else if loaded {
		logger.Debug().Str("path", userPath).Msg("Loaded user config")
	}

	// 3. Project config
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	for _, name := range projectFiles {
		path := filepath.Join(projectDir, name)
		loaded, err := loadFileIfExists(k, path)
		if err != nil {
			return nil, err
		}
		if loaded {
			logger.Debug().Str("path", path).Msg("Loaded project config")
			break
		}
	}

	// 4. Environment, MYGLOB_SEARCH_IGNORE_DIRS -> search.ignore_dirs
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 5. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadFileIfExists merges path into k, choosing the parser by extension
func loadFileIfExists(k *koanf.Koanf, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat %s", path).
			WithDetail("path", path)
	}

	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return true, nil
}
