package config

import (
	"ctchen222/tictactoe-term/internal/bot"
	"ctchen222/tictactoe-term/internal/validator"
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Name      string        `yaml:"name" env:"TTT_NAME" env-default:"Tic Tac Toe" validate:"required"`
	Opponent  string        `yaml:"opponent" env:"TTT_OPPONENT" env-default:"human" validate:"required,opponent"`
	Seed      uint64        `yaml:"seed" env:"TTT_SEED" env-default:"0"`
	TickRate  time.Duration `yaml:"tick-rate" env:"TTT_TICK_RATE" env-default:"250ms" validate:"gt=0"`
	Log       Log           `yaml:"log"`
	Telemetry Telemetry     `yaml:"telemetry"`
	Spectator Spectator     `yaml:"spectator"`
}

type Log struct {
	Level string `yaml:"level" env:"TTT_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	File  string `yaml:"file" env:"TTT_LOG_FILE" env-default:"tictactoe.log" validate:"required"`
}

type Telemetry struct {
	Endpoint    string `yaml:"endpoint" env:"TTT_OTEL_ENDPOINT" validate:"omitempty,hostname_port"`
	ServiceName string `yaml:"service-name" env:"TTT_OTEL_SERVICE_NAME" env-default:"tic-tac-toe" validate:"required"`
	TraceToLog  bool   `yaml:"trace-to-log" env:"TTT_OTEL_TRACE_TO_LOG" env-default:"false"`
}

type Spectator struct {
	Enabled bool   `yaml:"enabled" env:"TTT_SPECTATOR_ENABLED" env-default:"false"`
	Addr    string `yaml:"addr" env:"TTT_SPECTATOR_ADDR" env-default:":8080" validate:"required_if=Enabled true"`
}

// Load reads the configuration from the YAML file at path, or from the
// environment alone when path is empty, and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read config from environment: %w", err)
	}

	if err := validator.GetValidator().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// OpponentKind returns the configured opponent. Load has already validated it.
func (c *Config) OpponentKind() bot.Opponent {
	opponent, _ := bot.ParseOpponent(c.Opponent)
	return opponent
}

// SlogLevel maps the configured level name onto slog.
func (l Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
