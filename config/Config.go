// Package config loads the configuration of a training or evaluation
// run from a configuration file and environment variables
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular"
	"github.com/samuelfneumann/tabular/utils/logging"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables which override
// configuration values, e.g. TABULAR_AGENT_LEARNING_RATE
const EnvPrefix = "TABULAR"

// Config holds the configuration of a run
type Config struct {
	Agent       AgentConfig       `mapstructure:"agent"`
	Environment EnvironmentConfig `mapstructure:"environment"`
	Experiment  ExperimentConfig  `mapstructure:"experiment"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// AgentConfig contains the type and hyperparameters of the agent
type AgentConfig struct {
	Type           string `mapstructure:"type"`
	tabular.Config `mapstructure:",squash"`
}

// EnvironmentConfig contains the settings of the Cartpole environment
type EnvironmentConfig struct {
	EpisodeSteps int     `mapstructure:"episode_steps"`
	FailAngle    float64 `mapstructure:"fail_angle"` // degrees
	FailPosition float64 `mapstructure:"fail_position"`
	Seed         uint64  `mapstructure:"seed"`
}

// ExperimentConfig contains the settings of the experiment driver
type ExperimentConfig struct {
	Episodes           int    `mapstructure:"episodes"`
	Seed               uint64 `mapstructure:"seed"`
	OutputDir          string `mapstructure:"output_dir"`
	CheckpointInterval int    `mapstructure:"checkpoint_interval"`
	TrackInterval      int    `mapstructure:"track_interval"`
	LogInterval        int    `mapstructure:"log_interval"`
	Database           string `mapstructure:"database"` // empty disables
	ProgressBar        bool   `mapstructure:"progress_bar"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads the configuration from the file at configPath, if not
// empty, overridden by environment variables. Values set by neither
// take their defaults.
func Load(configPath string) (Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("load: failed to read config file: %w",
				err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("load: failed to unmarshal config: %w",
			err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: config validation failed: %w", err)
	}
	return c, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Agent
	v.SetDefault("agent.type", string(agent.QLearning))
	v.SetDefault("agent.actions", 11)
	v.SetDefault("agent.action_range.min", -20.0)
	v.SetDefault("agent.action_range.max", 20.0)
	v.SetDefault("agent.bins", []int{5, 5, 5, 5})
	v.SetDefault("agent.learning_rate", 0.1)
	v.SetDefault("agent.initial_epsilon", 1.0)
	v.SetDefault("agent.epsilon_decay", 0.9995)
	v.SetDefault("agent.final_epsilon", 0.01)
	v.SetDefault("agent.discount", 0.5)
	v.SetDefault("agent.include_terminal", false)

	// Environment
	v.SetDefault("environment.episode_steps", 500)
	v.SetDefault("environment.fail_angle", 24.0)
	v.SetDefault("environment.fail_position", 3.0)
	v.SetDefault("environment.seed", 0)

	// Experiment
	v.SetDefault("experiment.episodes", 10000)
	v.SetDefault("experiment.seed", 0)
	v.SetDefault("experiment.output_dir", "output")
	v.SetDefault("experiment.checkpoint_interval", 100)
	v.SetDefault("experiment.track_interval", 10)
	v.SetDefault("experiment.log_interval", 100)
	v.SetDefault("experiment.database", "")
	v.SetDefault("experiment.progress_bar", true)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", logging.Console)
}

// Validate returns an error describing why the Config is invalid, or
// nil if it is valid
func (c Config) Validate() error {
	var errs []error

	if !registered(agent.Type(c.Agent.Type)) {
		errs = append(errs, fmt.Errorf("agent type %q is not one of %v",
			c.Agent.Type, agent.Types()))
	}
	if err := c.Agent.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Environment.EpisodeSteps < 1 {
		errs = append(errs, fmt.Errorf("episode steps %v must be positive",
			c.Environment.EpisodeSteps))
	}
	if !(c.Environment.FailAngle > 0 && c.Environment.FailAngle <= 180) {
		errs = append(errs, fmt.Errorf("fail angle %v not in (0, 180]",
			c.Environment.FailAngle))
	}
	if !(c.Environment.FailPosition > 0) {
		errs = append(errs, fmt.Errorf("fail position %v must be positive",
			c.Environment.FailPosition))
	}

	if c.Experiment.Episodes < 0 {
		errs = append(errs, fmt.Errorf("episodes %v must be non-negative",
			c.Experiment.Episodes))
	}
	if c.Experiment.OutputDir == "" {
		errs = append(errs, errors.New("output directory must be set"))
	}
	if c.Experiment.CheckpointInterval < 1 {
		errs = append(errs, fmt.Errorf("checkpoint interval %v must be "+
			"positive", c.Experiment.CheckpointInterval))
	}
	if c.Experiment.TrackInterval < 1 {
		errs = append(errs, fmt.Errorf("track interval %v must be positive",
			c.Experiment.TrackInterval))
	}
	if c.Experiment.LogInterval < 0 {
		errs = append(errs, fmt.Errorf("log interval %v must be "+
			"non-negative", c.Experiment.LogInterval))
	}

	if c.Logging.Format != logging.Console && c.Logging.Format != logging.JSON {
		errs = append(errs, fmt.Errorf("log format %q is not one of %q, %q",
			c.Logging.Format, logging.Console, logging.JSON))
	}

	return errors.Join(errs...)
}

func registered(t agent.Type) bool {
	for _, registered := range agent.Types() {
		if t == registered {
			return true
		}
	}
	return false
}

// FailAngleRadians returns the fail angle of the environment in
// radians
func (e EnvironmentConfig) FailAngleRadians() float64 {
	return e.FailAngle * math.Pi / 180
}

// TypedConfig returns the agent configuration typed with its agent
// Type
func (a AgentConfig) TypedConfig() agent.TypedConfig {
	return agent.NewTypedConfig(agent.Type(a.Type), a.Config)
}
