package pythonanalyzer

import (
	"io"
	"os"

	"github.com/kiteco/pyeval/kite-go/lang/python/pythoneval"
	"github.com/kiteco/pyeval/kite-golib/envutil"
	"github.com/kiteco/pyeval/kite-golib/errors"
	yaml "gopkg.in/yaml.v2"
)

const (
	sysPathEnv  = "PYEVAL_SYS_PATH"
	maxDepthEnv = "PYEVAL_MAX_DEPTH"
)

// Config configures a Session
type Config struct {
	// SysPath lists the import roots, searched in order
	SysPath []string           `yaml:"sys_path"`
	Options pythoneval.Options `yaml:"options"`
	// NoDynamicParams disables the call-site search for functions with no known caller
	NoDynamicParams bool `yaml:"no_dynamic_params"`
	// NoDocstrings disables return types read from docstrings
	NoDocstrings bool `yaml:"no_docstrings"`
}

// DefaultConfig has no import roots and the default evaluator limits
func DefaultConfig() Config {
	return Config{Options: pythoneval.DefaultOptions}
}

// LoadConfig decodes a YAML configuration. Fields missing from the document keep
// their defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrapf(err, "error decoding config")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML configuration from a file
func LoadConfigFile(fname string) (Config, error) {
	f, err := os.Open(fname)
	if err != nil {
		return Config{}, errors.Wrapf(err, "error opening config")
	}
	defer f.Close()
	return LoadConfig(f)
}

// WithEnv applies the PYEVAL_SYS_PATH and PYEVAL_MAX_DEPTH overrides. The sys path
// variable is a list separated by os.PathListSeparator.
func (c Config) WithEnv() (Config, error) {
	if roots := envutil.GetenvList(sysPathEnv, string(os.PathListSeparator)); roots != nil {
		c.SysPath = roots
	}
	depth, err := envutil.GetenvDefaultInt(maxDepthEnv, c.Options.MaxRecursionDepth)
	if err != nil {
		return c, err
	}
	c.Options.MaxRecursionDepth = depth
	return c, c.validate()
}

func (c Config) validate() error {
	if c.Options.MaxRecursionDepth < 0 {
		return errors.New("max_recursion_depth must not be negative, got %d", c.Options.MaxRecursionDepth)
	}
	if c.Options.MaxResultSize < 0 {
		return errors.New("max_result_size must not be negative, got %d", c.Options.MaxResultSize)
	}
	return nil
}
