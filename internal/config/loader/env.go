package loader

import "os"

// EnvLoader maps environment variables onto configuration keys.
type EnvLoader struct {
	mapping map[string]string // env var -> config key
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader for the given env var -> key mapping,
// reading the process environment.
func NewEnvLoader(mapping map[string]string) *EnvLoader {
	return &EnvLoader{mapping: mapping, lookup: os.LookupEnv}
}

// WithLookup replaces the environment lookup function.
func (l *EnvLoader) WithLookup(lookup func(string) (string, bool)) *EnvLoader {
	l.lookup = lookup
	return l
}

// Load returns the raw values of every mapped variable that is set, keyed
// by configuration key. Empty values count as set.
func (l *EnvLoader) Load() map[string]string {
	out := make(map[string]string)
	for env, key := range l.mapping {
		if val, ok := l.lookup(env); ok {
			out[key] = val
		}
	}
	return out
}
