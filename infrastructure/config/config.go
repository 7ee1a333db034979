package config

import (
	"fmt"
	"time"

	"auto_swiper/domain/entities"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults applied when neither the config file nor the environment sets a value.
const (
	DefaultWaitTimeSecs         = 3
	DefaultMaxLikes             = 200
	DefaultConfidence           = 0.5
	DefaultScale                = 1.0
	DefaultMaxPollRetries       = 3
	DefaultMaxConsecutiveMisses = 3
)

// DefaultPuns seeds the message pool when no custom message file is usable.
var DefaultPuns = []string{
	"Are you a magician? Because whenever I look at you, everyone else disappears.",
	"Do you like raisins? How do you feel about a date?",
	"I was going to say something smooth, but your smile made me forget it.",
	"Are you a parking ticket? Because you've got fine written all over you.",
	"If you were a vegetable, you'd be a cute-cumber.",
}

// Config is the startup configuration for one automation session.
// Loaded once; never mutated while the loop runs.
type Config struct {
	DefaultWaitTime      time.Duration `mapstructure:"-"`
	MaxLikes             int           `mapstructure:"max_likes"`
	Confidence           float64       `mapstructure:"confidence"`
	Scale                float64       `mapstructure:"scale"`
	CommentEnabled       bool          `mapstructure:"comment_enabled"`
	MaxPollRetries       int           `mapstructure:"max_poll_retries"`
	MaxConsecutiveMisses int           `mapstructure:"max_consecutive_misses"`
	Display              int           `mapstructure:"display"`
	ImagesDir            string        `mapstructure:"images_dir"`
	MessagesFile         string        `mapstructure:"messages_file"`
	LogFile              string        `mapstructure:"log_file"`
	PunArray             []string      `mapstructure:"pun_array"`
}

// Load reads configuration from an optional .env file, the given config file
// (or auto-swiper.yaml in the working directory when path is empty), and
// AUTO_SWIPER_* environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	// .env is optional, matching the rest of our tools.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("default_wait_time_secs", DefaultWaitTimeSecs)
	v.SetDefault("max_likes", DefaultMaxLikes)
	v.SetDefault("confidence", DefaultConfidence)
	v.SetDefault("scale", DefaultScale)
	v.SetDefault("comment_enabled", true)
	v.SetDefault("max_poll_retries", DefaultMaxPollRetries)
	v.SetDefault("max_consecutive_misses", DefaultMaxConsecutiveMisses)
	v.SetDefault("display", 0)
	v.SetDefault("images_dir", "images")
	v.SetDefault("messages_file", "jokes.txt")
	v.SetDefault("log_file", "log.txt")
	v.SetDefault("pun_array", DefaultPuns)

	v.SetEnvPrefix("AUTO_SWIPER")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &entities.ConfigurationError{Resource: path, Cause: err}
		}
	} else {
		v.SetConfigName("auto-swiper")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// The config file itself is optional; a malformed one is not.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, &entities.ConfigurationError{Resource: v.ConfigFileUsed(), Cause: err}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &entities.ConfigurationError{Resource: "config values", Cause: err}
	}
	cfg.DefaultWaitTime = time.Duration(v.GetFloat64("default_wait_time_secs") * float64(time.Second))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MaxLikes < 0 {
		return &entities.ConfigurationError{Resource: fmt.Sprintf("max_likes %d must not be negative", c.MaxLikes)}
	}
	if c.Confidence <= 0 || c.Confidence > 1 {
		return &entities.ConfigurationError{Resource: fmt.Sprintf("confidence %.2f must be in (0, 1]", c.Confidence)}
	}
	if c.Scale <= 0 {
		return &entities.ConfigurationError{Resource: fmt.Sprintf("scale %.2f must be positive", c.Scale)}
	}
	if c.DefaultWaitTime < 0 {
		return &entities.ConfigurationError{Resource: "default_wait_time_secs must not be negative"}
	}
	if c.MaxPollRetries < 0 {
		return &entities.ConfigurationError{Resource: "max_poll_retries must not be negative"}
	}
	if c.MaxConsecutiveMisses < 1 {
		return &entities.ConfigurationError{Resource: "max_consecutive_misses must be at least 1"}
	}
	if c.Display < 0 {
		return &entities.ConfigurationError{Resource: fmt.Sprintf("display %d must not be negative", c.Display)}
	}
	return nil
}
