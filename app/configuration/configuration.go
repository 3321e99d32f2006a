package configuration

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/spf13/cast"
	flag "github.com/spf13/pflag"

	"github.com/iotaledger/rwlist/ierrors"
)

var (
	// ErrConfigDoesNotExist is returned if the config file does not exist.
	ErrConfigDoesNotExist = ierrors.New("config does not exist")
	// ErrUnknownConfigFormat is returned if the format of the config file is unknown.
	ErrUnknownConfigFormat = ierrors.New("unknown config file format")
)

// Configuration holds config parameters from several sources (file, env vars, flags).
type Configuration struct {
	config *koanf.Koanf
	// boundParameters keeps track of all parameters that were bound using the BindParameters function.
	boundParameters map[string]*BoundParameter
}

// New returns a new configuration.
func New() *Configuration {
	return &Configuration{
		config:          koanf.New("."),
		boundParameters: make(map[string]*BoundParameter),
	}
}

// LoadFile loads parameters from a JSON, YAML or TOML file and merges them into the loaded config.
// Existing keys will be overwritten.
func (c *Configuration) LoadFile(filePath string) error {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return ierrors.Wrapf(ErrConfigDoesNotExist, "failed to load %s", filePath)
		}

		return ierrors.Wrapf(err, "failed to load %s", filePath)
	}
	if fileInfo.IsDir() {
		return ierrors.Errorf("given path is a directory instead of a file %s", filePath)
	}

	parser, err := parserForFile(filePath)
	if err != nil {
		return err
	}

	if err := c.config.Load(file.Provider(filePath), parser); err != nil {
		return ierrors.Wrapf(err, "failed to parse %s", filePath)
	}

	return nil
}

// LoadFlagSet loads parameters from a FlagSet (spf13/pflag lib) including
// default values and merges them into the loaded config.
// Existing keys will only be overwritten, if they were set via command line.
// If not given via command line, default values will only be used if they did not exist beforehand.
func (c *Configuration) LoadFlagSet(flagSet *flag.FlagSet) error {
	return c.config.Load(lowerPosflagProvider(flagSet, ".", c.config), nil)
}

// LoadEnvironmentVars loads parameters from env vars and merges them into the loaded config.
// The prefix is used to filter the env vars.
// Only existing keys will be overwritten, all other keys are ignored.
func (c *Configuration) LoadEnvironmentVars(prefix string) error {
	if prefix != "" {
		prefix += "_"
	}

	return c.config.Load(env.Provider(prefix, ".", func(s string) string {
		mapKey := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "_", ".")
		if !c.config.Exists(mapKey) {
			// only accept values from env vars that already exist in the config
			return ""
		}

		return mapKey
	}), nil)
}

// Koanf returns the underlying Koanf instance.
func (c *Configuration) Koanf() *koanf.Koanf {
	return c.config
}

// Load takes a Provider that either provides a parsed config map[string]interface{}
// in which case pa (Parser) can be nil, or raw bytes to be parsed, where a Parser
// can be provided to parse.
func (c *Configuration) Load(p koanf.Provider, pa koanf.Parser, opts ...koanf.Option) error {
	return c.config.Load(p, pa, opts...)
}

// Exists returns true if the given key (case-insensitive) exists in the config.
func (c *Configuration) Exists(path string) bool {
	return c.config.Exists(strings.ToLower(path))
}

// Get returns the raw value of the given key (case-insensitive).
func (c *Configuration) Get(path string) interface{} {
	return c.config.Get(strings.ToLower(path))
}

// All returns the flattened config map.
func (c *Configuration) All() map[string]interface{} {
	return c.config.All()
}

func (c *Configuration) Bool(path string) bool {
	return c.config.Bool(strings.ToLower(path))
}

func (c *Configuration) Int(path string) int {
	return c.config.Int(strings.ToLower(path))
}

func (c *Configuration) Int64(path string) int64 {
	return c.config.Int64(strings.ToLower(path))
}

func (c *Configuration) String(path string) string {
	return c.config.String(strings.ToLower(path))
}

func (c *Configuration) Strings(path string) []string {
	return c.config.Strings(strings.ToLower(path))
}

// Duration returns the duration of the given key (case-insensitive). String values are parsed with
// time.ParseDuration, numeric values are interpreted as nanoseconds.
func (c *Configuration) Duration(path string) time.Duration {
	return cast.ToDuration(c.config.Get(strings.ToLower(path)))
}

func parserForFile(filePath string) (koanf.Parser, error) {
	switch filepath.Ext(filePath) {
	case ".json":
		return &JSONLowerParser{}, nil
	case ".yaml", ".yml":
		return &YAMLLowerParser{}, nil
	case ".toml":
		return &TOMLLowerParser{}, nil
	default:
		return nil, ierrors.Wrapf(ErrUnknownConfigFormat, "unsupported extension of %s", filePath)
	}
}
