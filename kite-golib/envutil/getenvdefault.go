// Package envutil reads configuration overrides from the environment.
package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/kiteco/pyeval/kite-golib/errors"
)

// GetenvDefault gets the value of an environment variable, or returns the
// specified default value if that variable is not set.
func GetenvDefault(name, defaultValue string) string {
	val, found := os.LookupEnv(name)
	if !found {
		return defaultValue
	}
	return val
}

// GetenvDefaultInt gets an environment variable as an int, or else returns the default
func GetenvDefaultInt(name string, defaultVal int) (int, error) {
	val, found := os.LookupEnv(name)
	if !found {
		return defaultVal, nil
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal, errors.Wrapf(err, "environment variable %s should be an integer", name)
	}
	return intVal, nil
}

// GetenvList splits a list-valued variable on sep, dropping empty entries.
// It returns nil when the variable is unset.
func GetenvList(name, sep string) []string {
	val, found := os.LookupEnv(name)
	if !found {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
