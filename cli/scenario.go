package cli

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"go.viam.com/pursuit/components/base/wheeled"
	"go.viam.com/pursuit/config"
	"go.viam.com/pursuit/control"
	"go.viam.com/pursuit/logging"
	"go.viam.com/pursuit/services/pathfollow"
	"go.viam.com/pursuit/spline"
)

// scenario json paths set by the dedicated flags.
var (
	stringFlagPaths = map[string]string{
		scenarioFlagCoefficients: "coefficients",
		scenarioFlagSampling:     "sampling",
	}
	numberFlagPaths = map[string]string{
		scenarioFlagSpacing:     "spacing",
		scenarioFlagLookahead:   "controller.lookahead_distance",
		scenarioFlagMaxVelocity: "controller.max_velocity",
		scenarioFlagTrackWidth:  "controller.track_width",
		scenarioFlagTimeStep:    "time_step",
		scenarioFlagTolerance:   "follow.tolerance",
	}
)

// loggers are the registered loggers of one invocation.
type loggers struct {
	registry *logging.Registry
	root     logging.Logger
	spline   logging.Logger
	control  logging.Logger
	base     logging.Logger
	follow   logging.Logger
	closers  []func() error
}

func newLoggers(c *cli.Context) (*loggers, error) {
	cores := []zapcore.Core{logging.NewWriterAppender(c.App.ErrWriter)}
	var closers []func() error
	if filename := c.String(generalFlagLogFile); filename != "" {
		core, closer := logging.NewFileAppender(filename)
		cores = append(cores, core)
		closers = append(closers, closer.Close)
	}
	level := logging.INFO
	if c.Bool(generalFlagDebug) {
		level = logging.DEBUG
	}

	registry := logging.NewRegistry()
	root := registry.Register("pursuit", logging.FromZapCore("pursuit", zapcore.NewTee(cores...), level))
	l := &loggers{
		registry: registry,
		root:     root,
		spline:   registry.Sublogger("pursuit", root, "spline"),
		control:  registry.Sublogger("pursuit", root, "control"),
		base:     registry.Sublogger("pursuit", root, "base"),
		follow:   registry.Sublogger("pursuit", root, "follow"),
		closers:  closers,
	}

	var patterns []logging.LoggerPatternConfig
	for _, raw := range c.StringSlice(generalFlagLogLevel) {
		lpc, err := logging.ParsePatternConfig(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid --%s", generalFlagLogLevel)
		}
		patterns = append(patterns, lpc)
	}
	if len(patterns) > 0 {
		if err := registry.UpdateConfig(patterns, level, root); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *loggers) close() error {
	// syncing a terminal fails on some platforms
	_ = l.root.Sync()
	var err error
	for _, closer := range l.closers {
		err = multierr.Append(err, closer())
	}
	return err
}

// scenarioOverrides collects --set and the dedicated scenario flags, the latter taking precedence.
func scenarioOverrides(c *cli.Context) (map[string]string, error) {
	overrides := map[string]string{}
	for _, raw := range c.StringSlice(scenarioFlagSet) {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return nil, errors.Errorf("--%s expects path=value, got %q", scenarioFlagSet, raw)
		}
		overrides[key] = value
	}
	isSet := func(flag, _ string) bool { return c.IsSet(flag) }
	for flag, path := range lo.PickBy(stringFlagPaths, isSet) {
		overrides[path] = c.String(flag)
	}
	numbers := lo.MapEntries(lo.PickBy(numberFlagPaths, isSet), func(flag, path string) (string, string) {
		return path, strconv.FormatFloat(c.Float64(flag), 'g', -1, 64)
	})
	for path, value := range numbers {
		overrides[path] = value
	}
	if c.IsSet(scenarioFlagMaxCycles) {
		overrides["follow.max_cycles"] = strconv.Itoa(c.Int(scenarioFlagMaxCycles))
	}
	return overrides, nil
}

// loadScenario reads --config, or starts from the default scenario, then applies the flags.
func loadScenario(c *cli.Context) (*config.Scenario, error) {
	scenario := config.DefaultScenario()
	if path := c.String(generalFlagConfig); path != "" {
		var err error
		if scenario, err = config.Read(path); err != nil {
			return nil, err
		}
	}
	overrides, err := scenarioOverrides(c)
	if err != nil {
		return nil, err
	}
	if err := scenario.ApplyOverrides(overrides); err != nil {
		return nil, err
	}
	scenario.ApplyDefaults()
	if err := scenario.Validate("scenario"); err != nil {
		return nil, err
	}
	return scenario, nil
}

// simulation is everything built from a scenario for one run.
type simulation struct {
	spline   *spline.QuinticSpline
	path     []spline.PathPoint
	ctrl     *control.PurePursuit
	base     *wheeled.Integrator
	follower *pathfollow.Follower
}

func generatePath(scenario *config.Scenario, logger logging.Logger) (*spline.QuinticSpline, []spline.PathPoint, error) {
	sp, err := scenario.Spline()
	if err != nil {
		return nil, nil, err
	}
	if err := sp.Degeneracy(); err != nil {
		logger.Warnw("spline fell back to a stationary coordinate", "error", err)
	}
	path, err := scenario.Path(sp)
	if err != nil {
		return nil, nil, err
	}
	logger.Debugw("generated path", "points", len(path), "length", path[len(path)-1].ArcLength)
	return sp, path, nil
}

func newSimulation(scenario *config.Scenario, l *loggers) (*simulation, error) {
	sp, path, err := generatePath(scenario, l.spline)
	if err != nil {
		return nil, err
	}
	ctrl, err := control.NewPurePursuit(path, scenario.Controller, l.control)
	if err != nil {
		return nil, err
	}
	base, err := wheeled.NewIntegrator(scenario.StartPose(), scenario.TimeStep, scenario.Controller.TrackWidth, l.base)
	if err != nil {
		return nil, err
	}
	follower, err := pathfollow.NewFollower(ctrl, base, ctrl.Goal(), scenario.Follow, l.follow)
	if err != nil {
		return nil, err
	}
	return &simulation{spline: sp, path: path, ctrl: ctrl, base: base, follower: follower}, nil
}
