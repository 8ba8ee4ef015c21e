package logging

import (
	"path"
	"regexp"
)

// LoggerPatternConfig is an instance of a level specification for a given logger.
type LoggerPatternConfig struct {
	Pattern string `json:"pattern"`
	Level   string `json:"level"`
}

// A pattern is dot-separated sections, each a name such as "mesh" or "ur_description" or the
// wildcard "*".
var loggerPatternRegexp = func() *regexp.Regexp {
	const section = `([a-zA-Z0-9]+([_-]*[a-zA-Z0-9]+)*|\*)`
	return regexp.MustCompile(`^` + section + `(\.` + section + `)*$`)
}()

// ValidPattern reports whether pattern is a well formed logger name pattern.
func ValidPattern(pattern string) bool {
	return loggerPatternRegexp.MatchString(pattern)
}

// patternMatches reports whether the logger called name is selected by a valid pattern. A "*"
// matches any run of characters, dots included, so "leatherman.*" selects
// "leatherman.mesh.stl".
func patternMatches(pattern, name string) bool {
	// valid patterns hold no '/' or other path.Match syntax besides '*'
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}
