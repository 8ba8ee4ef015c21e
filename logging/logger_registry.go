package logging

import (
	"fmt"
	"sort"
	"sync"
)

// Registry owns a set of named loggers and their levels. A process typically builds one at
// startup and hands loggers out of it, so that levels can be changed per logger name at runtime.
type Registry struct {
	mu      sync.RWMutex
	loggers map[string]Logger
	// levels holds explicit per-name overrides set through SetLoggerLevel. They are applied to
	// loggers registered later as well.
	levels    map[string]Level
	logConfig []LoggerPatternConfig
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		loggers: make(map[string]Logger),
		levels:  make(map[string]Level),
	}
}

// NewLogger returns the logger registered under `name`, creating an Info+ stdout logger if none
// exists yet.
func (lr *Registry) NewLogger(name string) Logger {
	return lr.NewLoggerWithAppenders(name, NewStdoutAppender())
}

// NewLoggerWithAppenders is like NewLogger but writes to the given appenders instead of stdout.
func (lr *Registry) NewLoggerWithAppenders(name string, appenders ...Appender) Logger {
	logger := newImpl(name, INFO, true, appenders...)
	logger.registry = lr
	return lr.getOrRegister(name, logger)
}

// Register adds `logger` under `name`, replacing any existing entry, and applies the current
// level configuration to it.
func (lr *Registry) Register(name string, logger Logger) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.loggers[name] = logger
	lr.applyLevelLocked(name, logger)
}

// Deregister removes the logger named `name`. It returns false if no such logger existed.
func (lr *Registry) Deregister(name string) bool {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	_, ok := lr.loggers[name]
	if ok {
		delete(lr.loggers, name)
	}
	return ok
}

// LoggerNamed returns logger with specified name if exists.
func (lr *Registry) LoggerNamed(name string) (logger Logger, ok bool) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	logger, ok = lr.loggers[name]
	return
}

// SetLoggerLevel sets the level of the logger called `name`. The level is remembered, so a
// logger registered under that name afterwards starts at this level too.
func (lr *Registry) SetLoggerLevel(name, level string) error {
	parsed, err := LevelFromString(level)
	if err != nil {
		return err
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.levels[name] = parsed
	if logger, ok := lr.loggers[name]; ok {
		logger.SetLevel(parsed)
	}
	return nil
}

// SetPackageLoggerLevel sets the level of the logger `<pkg>.<name>`.
func (lr *Registry) SetPackageLoggerLevel(pkg, name, level string) error {
	if pkg == "" {
		return lr.SetLoggerLevel(name, level)
	}
	return lr.SetLoggerLevel(fmt.Sprintf("%s.%s", pkg, name), level)
}

// UpdateConfig replaces the pattern configuration and re-levels every registered logger. Loggers
// not matched by any pattern (nor by an explicit SetLoggerLevel) go back to INFO. Invalid
// patterns are reported on `errorLogger` and skipped.
func (lr *Registry) UpdateConfig(logConfig []LoggerPatternConfig, errorLogger Logger) error {
	valid := make([]LoggerPatternConfig, 0, len(logConfig))
	for _, lpc := range logConfig {
		if !ValidPattern(lpc.Pattern) {
			errorLogger.Warnw("failed to validate a pattern", "pattern", lpc.Pattern)
			continue
		}
		if _, err := LevelFromString(lpc.Level); err != nil {
			return err
		}
		valid = append(valid, lpc)
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.logConfig = valid
	for name, logger := range lr.loggers {
		logger.SetLevel(INFO)
		lr.applyLevelLocked(name, logger)
	}
	return nil
}

// RegisteredNames returns the names of all registered loggers in ascending order.
func (lr *Registry) RegisteredNames() []string {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	registeredNames := make([]string, 0, len(lr.loggers))
	for name := range lr.loggers {
		registeredNames = append(registeredNames, name)
	}
	sort.Strings(registeredNames)
	return registeredNames
}

// CurrentConfig returns the active pattern configuration.
func (lr *Registry) CurrentConfig() []LoggerPatternConfig {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	return lr.logConfig
}

// getOrRegister will either:
//   - return an existing logger for the input logger `name` or
//   - register the input `logger` for the given logger `name` and configure it based on the
//     existing patterns.
//
// Such that if concurrent callers try registering the same logger, the "winner"s logger will be
// registered and all losers will return the winning logger.
func (lr *Registry) getOrRegister(name string, logger Logger) Logger {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if existingLogger, ok := lr.loggers[name]; ok {
		return existingLogger
	}

	lr.loggers[name] = logger
	lr.applyLevelLocked(name, logger)
	return logger
}

// applyLevelLocked applies matching patterns in order, then any explicit override. Patterns were
// validated on the way in, so match and level errors cannot occur here.
func (lr *Registry) applyLevelLocked(name string, logger Logger) {
	for _, lpc := range lr.logConfig {
		if !patternMatches(lpc.Pattern, name) {
			continue
		}
		if level, err := LevelFromString(lpc.Level); err == nil {
			logger.SetLevel(level)
		}
	}
	if level, ok := lr.levels[name]; ok {
		logger.SetLevel(level)
	}
}
