package logging

import (
	"strings"
	"testing"

	"go.viam.com/test"
)

func verifySetLevels(registry *Registry, expectedMatches map[string]string) bool {
	for name, level := range expectedMatches {
		logger, ok := registry.LoggerNamed(name)
		if !ok || !strings.EqualFold(level, logger.GetLevel().String()) {
			return false
		}
	}
	return true
}

func createTestRegistry(loggerNames []string) *Registry {
	registry := NewRegistry()
	for _, name := range loggerNames {
		registry.NewLoggerWithAppenders(name)
	}
	return registry
}

func TestValidatePattern(t *testing.T) {
	t.Parallel()

	type testCfg struct {
		pattern string
		isValid bool
	}

	tests := []testCfg{
		// Valid patterns
		{"leatherman.viz", true},
		{"leatherman.viz.*", true},
		{"leatherman.*.markers", true},
		{"leatherman.*.*", true},
		{"*.viz", true},
		{"*", true},
		{"sbpl_collision_checking", true},

		// Invalid patterns
		{"leatherman..viz", false},
		{"leatherman.viz.", false},
		{".leatherman.viz", false},
		{"leatherman.viz.**", false},
		{"leatherman.**.viz", false},

		// Invalid patterns with special characters
		{"_.leatherman.viz", false},
		{"-.leatherman", false},
		{"leatherman.-", false},
		{"leatherman._.viz", false},
	}

	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			t.Parallel()
			test.That(t, ValidPattern(tc.pattern), test.ShouldEqual, tc.isValid)
		})
	}
}

func TestUpdateLoggerRegistry(t *testing.T) {
	type testCfg struct {
		loggerConfig    []LoggerPatternConfig
		loggerNames     []string
		expectedMatches map[string]string
	}

	tests := []testCfg{
		{
			loggerConfig: []LoggerPatternConfig{
				{Pattern: "leatherman.mesh", Level: "WARN"},
			},
			loggerNames: []string{
				"leatherman.mesh",
				"leatherman.mesh.stl",
				"leatherman.viz",
			},
			expectedMatches: map[string]string{
				"leatherman.mesh":     "WARN",
				"leatherman.mesh.stl": "INFO",
				"leatherman.viz":      "INFO",
			},
		},
		{
			loggerConfig: []LoggerPatternConfig{
				{Pattern: "leatherman.*", Level: "DEBUG"},
			},
			loggerNames: []string{
				"leatherman.mesh",
				"leatherman.rospkg.locator",
			},
			expectedMatches: map[string]string{
				"leatherman.mesh":           "DEBUG",
				"leatherman.rospkg.locator": "DEBUG",
			},
		},
		{
			loggerConfig: []LoggerPatternConfig{
				{Pattern: "leatherman.*", Level: "DEBUG"},
				{Pattern: "leatherman.mesh", Level: "WARN"},
			},
			loggerNames: []string{
				"leatherman.mesh",
			},
			expectedMatches: map[string]string{
				"leatherman.mesh": "WARN",
			},
		},
		{
			loggerConfig: []LoggerPatternConfig{
				{Pattern: "_.*.mesh", Level: "DEBUG"},
			},
			loggerNames: []string{
				"leatherman.mesh",
			},
			expectedMatches: map[string]string{
				"leatherman.mesh": "INFO",
			},
		},
	}

	for _, tc := range tests {
		testRegistry := createTestRegistry(tc.loggerNames)

		err := testRegistry.UpdateConfig(tc.loggerConfig, NewBlankLogger("error-logger"))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, verifySetLevels(testRegistry, tc.expectedMatches), test.ShouldBeTrue)
	}
}

func TestUpdateConfigBadLevel(t *testing.T) {
	registry := createTestRegistry([]string{"a"})
	err := registry.UpdateConfig([]LoggerPatternConfig{{Pattern: "a", Level: "loud"}}, NewBlankLogger("error-logger"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPatternMatches(t *testing.T) {
	test.That(t, patternMatches("leatherman.*", "leatherman.mesh"), test.ShouldBeTrue)
	test.That(t, patternMatches("leatherman.*", "leatherman.mesh.stl"), test.ShouldBeTrue)
	test.That(t, patternMatches("leatherman.*", "leatherman"), test.ShouldBeFalse)
	test.That(t, patternMatches("*.locator", "leatherman.rospkg.locator"), test.ShouldBeTrue)
	test.That(t, patternMatches("*", "anything.at.all"), test.ShouldBeTrue)
	test.That(t, patternMatches("leatherman.mesh", "leatherman.meshes"), test.ShouldBeFalse)
}
