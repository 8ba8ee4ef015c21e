package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"go.viam.com/leatherman/config"
	"go.viam.com/leatherman/logging"
	"go.viam.com/leatherman/rospkg"
)

// commandEnv is what every action needs: loggers leveled by the config and the --debug flag,
// and the package locator.
type commandEnv struct {
	registry *logging.Registry
	logger   logging.Logger
	conf     *config.Config
	locator  rospkg.Locator
	errOut   io.Writer
	logFile  *logging.FileAppender
}

const commandEnvKey = "leatherman.env"

// beforeCommand builds the command env once from the global flags for every command.
func beforeCommand(c *cli.Context) error {
	env, err := newCommandEnv(c)
	if err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[commandEnvKey] = env
	return nil
}

// afterCommand closes the env built by beforeCommand.
func afterCommand(c *cli.Context) error {
	if env, ok := c.App.Metadata[commandEnvKey].(*commandEnv); ok {
		env.close()
		delete(c.App.Metadata, commandEnvKey)
	}
	return nil
}

// envFor returns the env built for this run.
func envFor(c *cli.Context) (*commandEnv, error) {
	if env, ok := c.App.Metadata[commandEnvKey].(*commandEnv); ok {
		return env, nil
	}
	return nil, errors.New("command env was not initialized")
}

func newCommandEnv(c *cli.Context) (*commandEnv, error) {
	env := &commandEnv{registry: logging.NewRegistry(), errOut: c.App.ErrWriter}
	env.logger = env.newLogger("leatherman.cli")

	env.conf = &config.Config{}
	if path := c.String(configFlag); path != "" {
		conf, err := config.Read(path)
		if err != nil {
			return nil, errors.Wrap(err, "cannot read config")
		}
		env.conf = conf
	}
	if env.conf.LogFile != "" {
		env.logFile = logging.NewFileAppender(env.conf.LogFile)
		env.logger.AddAppender(env.logFile)
	}
	if c.Bool(debugFlag) {
		env.conf.Log = append(env.conf.Log, logging.LoggerPatternConfig{Pattern: "*", Level: "debug"})
	}
	if err := env.conf.ApplyLogging(env.registry, env.logger); err != nil {
		return nil, err
	}

	env.locator = env.conf.Locator(env.newLogger("leatherman.rospkg.locator"))
	return env, nil
}

// newLogger registers a logger that writes to the app's error writer and the configured log file.
func (env *commandEnv) newLogger(name string) logging.Logger {
	appenders := []logging.Appender{logging.NewWriterAppender(env.errOut)}
	if env.logFile != nil {
		appenders = append(appenders, env.logFile)
	}
	return env.registry.NewLoggerWithAppenders(name, appenders...)
}

func (env *commandEnv) close() {
	if env.logFile != nil {
		goutils.UncheckedError(env.logFile.Close())
	}
}

// printf prints a message with no decoration.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// checkArgs fails unless exactly n positional arguments were given.
func checkArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return errors.Errorf("expected %d arguments, got %d; usage: %s %s", n, c.NArg(), c.Command.Name, c.Command.ArgsUsage)
	}
	return nil
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad number in %q", s)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// parseScale accepts one factor for all axes or x,y,z.
func parseScale(s string) (r3.Vector, error) {
	vals, err := parseFloats(s)
	if err != nil {
		return r3.Vector{}, err
	}
	switch len(vals) {
	case 1:
		return r3.Vector{X: vals[0], Y: vals[0], Z: vals[0]}, nil
	case 3:
		return r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]}, nil
	default:
		return r3.Vector{}, errors.Errorf("scale %q needs 1 or 3 values", s)
	}
}
