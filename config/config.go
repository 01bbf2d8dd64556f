package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the process settings. Every field can be set through the environment.
type Config struct {
	Address     string `env:"ADDRESS" default:":8080" help:"Address the UI server listens on"`
	CORSOrigins string `env:"CORS_ALLOW_ORIGINS" default:"*" help:"Comma separated list of allowed CORS origins"`

	OpenAIAPIKey  string        `env:"OPENAI_API_KEY" help:"Credential for the transcription API" group:"transcription"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL" default:"https://api.openai.com/v1" help:"Base URL of an OpenAI compatible transcription API" group:"transcription"`
	Model         string        `env:"TRANSCRIBE_MODEL" default:"whisper-1" help:"Default transcription model" group:"transcription"`
	Timeout       time.Duration `env:"TRANSCRIBE_TIMEOUT" default:"120s" help:"Timeout for a single transcription call" group:"transcription"`

	MaxUploadBytes   int64         `env:"MAX_UPLOAD_BYTES" default:"26214400" help:"Largest accepted upload in bytes" group:"media"`
	MaxMediaDuration time.Duration `env:"MAX_MEDIA_DURATION" default:"0s" help:"Longest accepted media duration, 0 disables the check" group:"media"`
	TempDir          string        `env:"TEMP_DIR" help:"Directory for transient upload files, defaults to the system temp dir" group:"media"`

	SessionTTL time.Duration `env:"SESSION_TTL" default:"30m" help:"Idle time after which a UI session ends" group:"session"`

	LogLevel  string `env:"LOG_LEVEL" default:"info" enum:"trace,debug,info,warn,error" help:"Log level" group:"logging"`
	LogFormat string `env:"LOG_FORMAT" default:"json" enum:"json,text" help:"Log format" group:"logging"`
}

// LoadEnvFiles loads the first existing .env style files into the process environment.
// Variables already set in the environment take precedence.
func LoadEnvFiles(log *logrus.Logger, files ...string) {
	if len(files) == 0 {
		files = []string{".env", "johnascriber.env"}
		if home, err := os.UserHomeDir(); err == nil {
			files = append(files, filepath.Join(home, ".config", "johnascriber.env"))
		}
	}

	for _, envFile := range files {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			log.WithError(err).WithField("env_file", envFile).Error("Failed to load environment file")
			continue
		}
		log.WithField("env_file", envFile).Debug("Loaded environment file")
	}
}

// Parse builds a Config from command line args and the environment.
func Parse(args []string, options ...kong.Option) (*Config, error) {
	cfg := &Config{}
	options = append([]kong.Option{
		kong.Name("johnascriber"),
		kong.Description("Upload audio or video, transcribe it with a hosted speech-to-text API and export the transcript."),
		kong.UsageOnError(),
	}, options...)

	parser, err := kong.New(cfg, options...)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogFields returns the non secret settings for startup logging.
func (c *Config) LogFields() logrus.Fields {
	return logrus.Fields{
		"address":            c.Address,
		"openai_base_url":    c.OpenAIBaseURL,
		"model":              c.Model,
		"timeout":            c.Timeout.String(),
		"max_upload_bytes":   c.MaxUploadBytes,
		"max_media_duration": c.MaxMediaDuration.String(),
		"session_ttl":        c.SessionTTL.String(),
		"api_key_set":        c.OpenAIAPIKey != "",
	}
}
