package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Store    StoreConfig    `mapstructure:"store"`
	Engine   EngineConfig   `mapstructure:"engine"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gte=1,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// StoreConfig selects the backing store of the engine.
// The memory store optionally starts from a YAML fixture.
type StoreConfig struct {
	Driver      string `mapstructure:"driver" validate:"oneof=mysql memory"`
	FixtureFile string `mapstructure:"fixture_file" validate:"omitempty,file"`
}

type EngineConfig struct {
	Scheduler   SchedulerConfig `mapstructure:"scheduler"`
	Grading     GradingConfig   `mapstructure:"grading"`
	Practice    PracticeConfig  `mapstructure:"practice"`
	Adaptive    AdaptiveConfig  `mapstructure:"adaptive"`
	Concurrency int             `mapstructure:"concurrency" validate:"gte=1"`
}

type SchedulerConfig struct {
	JitterMin float64 `mapstructure:"jitter_min" validate:"gt=0"`
	JitterMax float64 `mapstructure:"jitter_max" validate:"gtefield=JitterMin"`
}

// GradingConfig maps answer correctness to the recall quality fed to the scheduler.
type GradingConfig struct {
	CorrectQuality   int `mapstructure:"correct_quality" validate:"recall"`
	IncorrectQuality int `mapstructure:"incorrect_quality" validate:"lapse"`
}

type PracticeConfig struct {
	DefaultQuestionCount int `mapstructure:"default_question_count" validate:"gte=1"`
	MasteryThreshold     int `mapstructure:"mastery_threshold" validate:"gte=1"`
}

type AdaptiveConfig struct {
	DueDays             int `mapstructure:"due_days" validate:"gte=1"`
	MaxSimilarQuestions int `mapstructure:"max_similar_questions" validate:"gte=0"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/adaptlearn")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "adaptlearn")
	v.SetDefault("database.username", "user")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.fixture_file", "")
	v.SetDefault("engine.scheduler.jitter_min", 0.95)
	v.SetDefault("engine.scheduler.jitter_max", 1.05)
	v.SetDefault("engine.grading.correct_quality", 4)
	v.SetDefault("engine.grading.incorrect_quality", 1)
	v.SetDefault("engine.practice.default_question_count", 10)
	v.SetDefault("engine.practice.mastery_threshold", 3)
	v.SetDefault("engine.adaptive.due_days", 7)
	v.SetDefault("engine.adaptive.max_similar_questions", 5)
	v.SetDefault("engine.concurrency", 4)

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("store.driver", "ADAPTLEARN_STORE_DRIVER"); err != nil {
		return nil, fmt.Errorf("failed to bind ADAPTLEARN_STORE_DRIVER environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
