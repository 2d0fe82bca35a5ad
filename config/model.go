package config

import (
	"time"

	"github.com/autoqa/autoqa/pkg/lumber"
)

type (
	// ConfigWrapper is a wrapper for the config
	ConfigWrapper struct {
		Config `json:"data"`
	}

	// Config the application's configuration
	Config struct {
		DB              DBConfig
		FrontendURL     string `json:"frontendURL"`
		Port            string
		LogFile         string
		LogConfig       lumber.LoggingConfig
		Env             string
		Verbose         bool
		GenAI           GenAIConfig
		Tracing         TracingConfig
		GracefulTimeout time.Duration
		ShutDownDelay   time.Duration
	}

	// TracingConfig provides opentelemetry configurations
	TracingConfig struct {
		// OtelEndpoint for storing host name for otel collector
		OtelEndpoint string
	}

	// DBConfig providers the mysql db configuration.
	DBConfig struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		User     string `json:"user"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	// GenAIConfig configures the generative completion provider.
	GenAIConfig struct {
		// APIKey the Gemini API key
		APIKey string
		// Model the Gemini model identifier
		Model string
	}
)
