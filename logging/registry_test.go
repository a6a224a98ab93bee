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
		registry.Register(name, NewBlankLogger(name))
	}
	return registry
}

func TestValidatePattern(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		pattern string
		isValid bool
	}{
		{"pursuit.control", true},
		{"pursuit.control.*", true},
		{"pursuit.*.follow", true},
		{"pursuit.*.*", true},
		{"*.control", true},
		{"*", true},

		{"pursuit..control", false},
		{"pursuit.control.", false},
		{".pursuit.control", false},
		{"pursuit.control.**", false},
		{"_.pursuit.control", false},
		{"pursuit.-", false},
		{"pursuit control", false},
	} {
		tc := tc
		t.Run(tc.pattern, func(t *testing.T) {
			t.Parallel()
			test.That(t, validatePattern(tc.pattern), test.ShouldEqual, tc.isValid)
		})
	}
}

func TestUpdateConfig(t *testing.T) {
	for _, tc := range []struct {
		name            string
		loggerConfig    []LoggerPatternConfig
		loggerNames     []string
		expectedMatches map[string]string
	}{
		{
			name:            "exact name",
			loggerConfig:    []LoggerPatternConfig{{Pattern: "pursuit.control", Level: "WARN"}},
			loggerNames:     []string{"pursuit.control", "pursuit.control.profile", "pursuit.base"},
			expectedMatches: map[string]string{"pursuit.control": "WARN", "pursuit.control.profile": "INFO", "pursuit.base": "INFO"},
		},
		{
			name:         "trailing wildcard",
			loggerConfig: []LoggerPatternConfig{{Pattern: "pursuit.*", Level: "DEBUG"}},
			loggerNames:  []string{"pursuit.control", "pursuit.base", "pursuit.follow.run"},
			expectedMatches: map[string]string{
				"pursuit.control":    "DEBUG",
				"pursuit.base":       "DEBUG",
				"pursuit.follow.run": "DEBUG",
			},
		},
		{
			name: "later pattern wins",
			loggerConfig: []LoggerPatternConfig{
				{Pattern: "pursuit.*", Level: "DEBUG"},
				{Pattern: "pursuit.base", Level: "ERROR"},
			},
			loggerNames:     []string{"pursuit.base", "pursuit.control"},
			expectedMatches: map[string]string{"pursuit.base": "ERROR", "pursuit.control": "DEBUG"},
		},
		{
			name:            "invalid pattern skipped",
			loggerConfig:    []LoggerPatternConfig{{Pattern: "_.*.control", Level: "DEBUG"}},
			loggerNames:     []string{"pursuit.control"},
			expectedMatches: map[string]string{"pursuit.control": "INFO"},
		},
		{
			name:            "prefix does not match",
			loggerConfig:    []LoggerPatternConfig{{Pattern: "a.b", Level: "DEBUG"}},
			loggerNames:     []string{"a.b.c"},
			expectedMatches: map[string]string{"a.b.c": "INFO"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			registry := createTestRegistry(tc.loggerNames)
			err := registry.UpdateConfig(tc.loggerConfig, INFO, NewTestLogger(t))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, verifySetLevels(registry, tc.expectedMatches), test.ShouldBeTrue)
		})
	}

	t.Run("bad level", func(t *testing.T) {
		registry := createTestRegistry([]string{"pursuit"})
		err := registry.UpdateConfig([]LoggerPatternConfig{{Pattern: "pursuit", Level: "loud"}}, INFO, NewTestLogger(t))
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestRegister(t *testing.T) {
	registry := NewRegistry()
	test.That(t, registry.UpdateConfig([]LoggerPatternConfig{{Pattern: "pursuit.*", Level: "ERROR"}}, INFO, NewTestLogger(t)),
		test.ShouldBeNil)

	root := registry.Register("pursuit", NewBlankLogger("pursuit"))
	test.That(t, root.GetLevel(), test.ShouldEqual, DEBUG)

	// patterns set earlier apply to loggers registered later
	control := registry.Sublogger("pursuit", root, "control")
	test.That(t, control.GetLevel(), test.ShouldEqual, ERROR)

	again := registry.Register("pursuit.control", NewBlankLogger("other"))
	test.That(t, again, test.ShouldEqual, control)
	test.That(t, registry.Names(), test.ShouldResemble, []string{"pursuit", "pursuit.control"})

	test.That(t, registry.UpdateLoggerLevel("pursuit.control", WARN), test.ShouldBeNil)
	test.That(t, control.GetLevel(), test.ShouldEqual, WARN)
	test.That(t, registry.UpdateLoggerLevel("missing", WARN), test.ShouldNotBeNil)

	test.That(t, registry.Deregister("pursuit.control"), test.ShouldBeTrue)
	test.That(t, registry.Deregister("pursuit.control"), test.ShouldBeFalse)
	_, ok := registry.LoggerNamed("pursuit.control")
	test.That(t, ok, test.ShouldBeFalse)
}

func TestParsePatternConfig(t *testing.T) {
	cfg, err := ParsePatternConfig("pursuit.control=debug")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, LoggerPatternConfig{Pattern: "pursuit.control", Level: "debug"})

	for _, bad := range []string{"pursuit.control", "pursuit..control=debug", "pursuit=loud"} {
		_, err := ParsePatternConfig(bad)
		test.That(t, err, test.ShouldNotBeNil)
	}
}
