// Package config reads the leatherman configuration file: logger levels and where to find
// packages referenced by package:// resources.
package config

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.viam.com/utils"

	"go.viam.com/leatherman/logging"
	"go.viam.com/leatherman/rospkg"
)

// Config is the on-disk configuration.
type Config struct {
	ConfigFilePath string `json:"-"`

	// Log sets logger levels by name pattern, e.g. {"pattern": "leatherman.mesh", "level": "debug"}.
	Log []logging.LoggerPatternConfig `json:"log,omitempty"`

	// LogFile, when set, receives a copy of every log line.
	LogFile string `json:"log_file,omitempty"`

	// PackagePaths are crawled for package.xml files, like ROS_PACKAGE_PATH.
	PackagePaths []string `json:"package_paths,omitempty"`

	// Packages maps package names straight to their directories and wins over every other source.
	Packages map[string]string `json:"packages,omitempty"`

	// IgnoreEnvironment stops the locator from consulting AMENT_PREFIX_PATH and ROS_PACKAGE_PATH.
	IgnoreEnvironment bool `json:"ignore_environment,omitempty"`
}

// Validate returns an error naming the first invalid field.
func (c *Config) Validate() error {
	for idx, lpc := range c.Log {
		path := fmt.Sprintf("%s.%d", "log", idx)
		if lpc.Pattern == "" {
			return utils.NewConfigValidationFieldRequiredError(path, "pattern")
		}
		if !logging.ValidPattern(lpc.Pattern) {
			return utils.NewConfigValidationError(path, errors.Errorf("invalid logger pattern %q", lpc.Pattern))
		}
		if lpc.Level == "" {
			return utils.NewConfigValidationFieldRequiredError(path, "level")
		}
		if _, err := logging.LevelFromString(lpc.Level); err != nil {
			return utils.NewConfigValidationError(path, err)
		}
	}

	for idx, p := range c.PackagePaths {
		if p == "" {
			return utils.NewConfigValidationError(fmt.Sprintf("%s.%d", "package_paths", idx), errors.New("empty path"))
		}
	}

	names := lo.Keys(c.Packages)
	slices.Sort(names)
	for _, name := range names {
		if name == "" {
			return utils.NewConfigValidationError("packages", errors.New("empty package name"))
		}
		if c.Packages[name] == "" {
			return utils.NewConfigValidationFieldRequiredError(fmt.Sprintf("%s.%s", "packages", name), "path")
		}
	}
	return nil
}

// Locator builds the package locator described by the config. Static packages are consulted
// first, then the configured package paths, then the environment.
func (c *Config) Locator(logger logging.Logger) rospkg.Locator {
	var locators rospkg.Locators
	if len(c.Packages) > 0 {
		locators = append(locators, rospkg.StaticLocator(c.Packages))
	}
	if len(c.PackagePaths) > 0 {
		locators = append(locators, rospkg.NewLocator(c.PackagePaths, logger))
	}
	if !c.IgnoreEnvironment {
		locators = append(locators, rospkg.FromEnvironment(logger))
	}
	return locators
}

// ApplyLogging installs the configured logger patterns in registry.
func (c *Config) ApplyLogging(registry *logging.Registry, logger logging.Logger) error {
	return registry.UpdateConfig(c.Log, logger)
}
