package logging

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestFileAppender(t *testing.T) {
	name := filepath.Join(t.TempDir(), "logs", "leatherman.log")
	appender := NewFileAppender(name)

	registry := NewRegistry()
	logger := registry.NewLoggerWithAppenders("leatherman.file", appender)
	logger.Infow("wrote mesh", "vertices", 6)
	logger.Debug("hidden")
	test.That(t, appender.Close(), test.ShouldBeNil)

	contents, err := os.ReadFile(name)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(contents), test.ShouldContainSubstring, "INFO\tleatherman.file")
	test.That(t, string(contents), test.ShouldContainSubstring, `{"vertices":6}`)
	test.That(t, string(contents), test.ShouldNotContainSubstring, "hidden")
}
