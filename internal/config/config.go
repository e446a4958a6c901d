package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type TelemetryConfig struct {
	LogLevel       string `yaml:"log_level"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
	OTLPInsecure   bool   `yaml:"otlp_insecure"`
	PrometheusBind string `yaml:"prometheus_bind"`
}

type HTTPConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type Config struct {
	RuntimeName string           `yaml:"runtime_name"`
	Environment string           `yaml:"environment"`
	HTTP        HTTPConfig       `yaml:"http"`
	Telemetry   TelemetryConfig  `yaml:"telemetry"`
	Bus         BusConfig        `yaml:"bus"`
	EventStore  EventStoreConfig `yaml:"event_store"`
	Dialog      DialogConfig     `yaml:"dialog"`
	Speech      SpeechConfig     `yaml:"speech"`
	Vision      VisionConfig     `yaml:"vision"`
	Banking     BankingConfig    `yaml:"banking"`
}

type BusConfig struct {
	Embedded       bool     `yaml:"embedded"`
	Port           int      `yaml:"port"`
	Servers        []string `yaml:"servers"`
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	Token          string   `yaml:"token"`
	TLSInsecure    bool     `yaml:"tls_insecure"`
	ConnectTimeout int      `yaml:"connect_timeout_ms"`
}

type EventStoreConfig struct {
	Path          string `yaml:"path"`
	RetentionMode string `yaml:"retention_mode"`
	RetentionDays int    `yaml:"retention_days"`
	MaxSessions   int    `yaml:"max_sessions"`
	VacuumOnStart bool   `yaml:"vacuum_on_start"`
}

// DialogConfig tunes the phase controller and the prompt/listen cycle.
type DialogConfig struct {
	MaxRetries      int     `yaml:"max_retries"`
	ListenTimeoutMS int     `yaml:"listen_timeout_ms"`
	StepDelayMS     int     `yaml:"step_delay_ms"`
	SuccessDelayMS  int     `yaml:"success_delay_ms"`
	SpeakRate       float64 `yaml:"speak_rate"`
	DefaultLanguage string  `yaml:"default_language"`
}

type SpeechConfig struct {
	SynthMode    string `yaml:"synth_mode"` // mock, exec, none
	SynthCommand string `yaml:"synth_command"`
	RecogMode    string `yaml:"recog_mode"` // mock, exec, none
	RecogCommand string `yaml:"recog_command"`
}

type VisionConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Endpoint   string `yaml:"endpoint"`
	CameraMode string `yaml:"camera_mode"` // mock, none
	TimeoutMS  int    `yaml:"timeout_ms"`
}

type BankingConfig struct {
	Endpoint       string  `yaml:"endpoint"`
	SenderID       string  `yaml:"sender_id"`
	InitialBalance float64 `yaml:"initial_balance"`
	TimeoutMS      int     `yaml:"timeout_ms"`
}

func Default() Config {
	return Config{
		RuntimeName: "voxguide-runtime",
		Environment: "development",
		HTTP: HTTPConfig{
			Bind: "0.0.0.0",
			Port: 8090,
		},
		Telemetry: TelemetryConfig{
			LogLevel:       "info",
			OTLPEndpoint:   "",
			OTLPInsecure:   true,
			PrometheusBind: ":9092",
		},
		Bus: BusConfig{
			Embedded:       true,
			Port:           4222,
			Servers:        []string{"nats://localhost:4222"},
			ConnectTimeout: 2000,
		},
		EventStore: EventStoreConfig{
			Path:          "./data/voxguide-events.db",
			RetentionMode: "session",
			RetentionDays: 30,
			MaxSessions:   10000,
		},
		Dialog: DialogConfig{
			MaxRetries:      2,
			ListenTimeoutMS: 6000,
			StepDelayMS:     2000,
			SuccessDelayMS:  4000,
			SpeakRate:       0.95,
			DefaultLanguage: "fr",
		},
		Speech: SpeechConfig{
			SynthMode: "mock",
			RecogMode: "mock",
		},
		Vision: VisionConfig{
			Enabled:    true,
			Endpoint:   "http://localhost:8000/api/vision/quality/",
			CameraMode: "mock",
			TimeoutMS:  10000,
		},
		Banking: BankingConfig{
			Endpoint:       "http://localhost:8000/api/banking/transaction/",
			SenderID:       "****5678",
			InitialBalance: 5240.50,
			TimeoutMS:      5000,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.RuntimeName, "VOX_RUNTIME_NAME")
	overrideString(&cfg.Environment, "VOX_RUNTIME_ENVIRONMENT")
	overrideString(&cfg.HTTP.Bind, "VOX_HTTP_BIND")
	overrideInt(&cfg.HTTP.Port, "VOX_HTTP_PORT")
	overrideString(&cfg.Telemetry.LogLevel, "VOX_TELEMETRY_LOG_LEVEL")
	overrideString(&cfg.Telemetry.OTLPEndpoint, "VOX_TELEMETRY_OTLP_ENDPOINT")
	overrideBool(&cfg.Telemetry.OTLPInsecure, "VOX_TELEMETRY_OTLP_INSECURE")
	overrideString(&cfg.Telemetry.PrometheusBind, "VOX_TELEMETRY_PROMETHEUS_BIND")
	overrideBool(&cfg.Bus.Embedded, "VOX_BUS_EMBEDDED")
	overrideInt(&cfg.Bus.Port, "VOX_BUS_PORT")
	overrideStringSlice(&cfg.Bus.Servers, "VOX_BUS_SERVERS")
	overrideString(&cfg.Bus.Username, "VOX_BUS_USERNAME")
	overrideString(&cfg.Bus.Password, "VOX_BUS_PASSWORD")
	overrideString(&cfg.Bus.Token, "VOX_BUS_TOKEN")
	overrideBool(&cfg.Bus.TLSInsecure, "VOX_BUS_TLS_INSECURE")
	overrideInt(&cfg.Bus.ConnectTimeout, "VOX_BUS_CONNECT_TIMEOUT_MS")
	overrideString(&cfg.EventStore.Path, "VOX_EVENT_STORE_PATH")
	overrideString(&cfg.EventStore.RetentionMode, "VOX_EVENT_STORE_RETENTION_MODE")
	overrideInt(&cfg.EventStore.RetentionDays, "VOX_EVENT_STORE_RETENTION_DAYS")
	overrideInt(&cfg.EventStore.MaxSessions, "VOX_EVENT_STORE_MAX_SESSIONS")
	overrideBool(&cfg.EventStore.VacuumOnStart, "VOX_EVENT_STORE_VACUUM_ON_START")
	overrideInt(&cfg.Dialog.MaxRetries, "VOX_DIALOG_MAX_RETRIES")
	overrideInt(&cfg.Dialog.ListenTimeoutMS, "VOX_DIALOG_LISTEN_TIMEOUT_MS")
	overrideInt(&cfg.Dialog.StepDelayMS, "VOX_DIALOG_STEP_DELAY_MS")
	overrideInt(&cfg.Dialog.SuccessDelayMS, "VOX_DIALOG_SUCCESS_DELAY_MS")
	overrideFloat(&cfg.Dialog.SpeakRate, "VOX_DIALOG_SPEAK_RATE")
	overrideString(&cfg.Dialog.DefaultLanguage, "VOX_DIALOG_DEFAULT_LANGUAGE")
	overrideString(&cfg.Speech.SynthMode, "VOX_SPEECH_SYNTH_MODE")
	overrideString(&cfg.Speech.SynthCommand, "VOX_SPEECH_SYNTH_COMMAND")
	overrideString(&cfg.Speech.RecogMode, "VOX_SPEECH_RECOG_MODE")
	overrideString(&cfg.Speech.RecogCommand, "VOX_SPEECH_RECOG_COMMAND")
	overrideBool(&cfg.Vision.Enabled, "VOX_VISION_ENABLED")
	overrideString(&cfg.Vision.Endpoint, "VOX_VISION_ENDPOINT")
	overrideString(&cfg.Vision.CameraMode, "VOX_VISION_CAMERA_MODE")
	overrideInt(&cfg.Vision.TimeoutMS, "VOX_VISION_TIMEOUT_MS")
	overrideString(&cfg.Banking.Endpoint, "VOX_BANKING_ENDPOINT")
	overrideString(&cfg.Banking.SenderID, "VOX_BANKING_SENDER_ID")
	overrideFloat(&cfg.Banking.InitialBalance, "VOX_BANKING_INITIAL_BALANCE")
	overrideInt(&cfg.Banking.TimeoutMS, "VOX_BANKING_TIMEOUT_MS")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideStringSlice(target *[]string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		parts := strings.Split(value, ",")
		var trimmed []string
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			*target = trimmed
		}
	}
}

func overrideFloat(target *float64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	if cfg.RuntimeName == "" {
		return errors.New("runtime_name must not be empty")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return errors.New("http.port must be between 1 and 65535")
	}
	if cfg.Bus.Embedded {
		if cfg.Bus.Port <= 0 || cfg.Bus.Port > 65535 {
			return errors.New("bus.port must be between 1 and 65535 when embedded mode is enabled")
		}
	} else {
		if len(cfg.Bus.Servers) == 0 {
			return errors.New("bus.servers must not be empty when embedded mode is disabled")
		}
	}
	if cfg.EventStore.Path == "" {
		return errors.New("event_store.path must not be empty")
	}
	switch cfg.EventStore.RetentionMode {
	case "ephemeral", "session", "persistent":
		// ok
	default:
		return errors.New("event_store.retention_mode must be one of ephemeral|session|persistent")
	}
	if cfg.EventStore.RetentionDays < 0 {
		return errors.New("event_store.retention_days must be >= 0")
	}
	if cfg.Telemetry.PrometheusBind == "" {
		return errors.New("telemetry.prometheus_bind must not be empty")
	}
	if cfg.Dialog.MaxRetries < 0 {
		return errors.New("dialog.max_retries must be >= 0")
	}
	if cfg.Dialog.ListenTimeoutMS <= 0 {
		return errors.New("dialog.listen_timeout_ms must be positive")
	}
	if cfg.Dialog.SpeakRate <= 0 {
		return errors.New("dialog.speak_rate must be positive")
	}
	switch cfg.Dialog.DefaultLanguage {
	case "fr", "en", "ar":
	default:
		return errors.New("dialog.default_language must be one of fr|en|ar")
	}
	switch cfg.Speech.SynthMode {
	case "mock", "exec", "none":
	default:
		return errors.New("speech.synth_mode must be one of mock|exec|none")
	}
	if cfg.Speech.SynthMode == "exec" && cfg.Speech.SynthCommand == "" {
		return errors.New("speech.synth_command must be set when synth_mode=exec")
	}
	switch cfg.Speech.RecogMode {
	case "mock", "exec", "none":
	default:
		return errors.New("speech.recog_mode must be one of mock|exec|none")
	}
	if cfg.Speech.RecogMode == "exec" && cfg.Speech.RecogCommand == "" {
		return errors.New("speech.recog_command must be set when recog_mode=exec")
	}
	if cfg.Vision.Enabled {
		if cfg.Vision.Endpoint == "" {
			return errors.New("vision.endpoint must not be empty when vision is enabled")
		}
		switch cfg.Vision.CameraMode {
		case "mock", "none":
		default:
			return errors.New("vision.camera_mode must be one of mock|none")
		}
	}
	if cfg.Banking.SenderID == "" {
		return errors.New("banking.sender_id must not be empty")
	}
	if cfg.Banking.InitialBalance < 0 {
		return errors.New("banking.initial_balance must be >= 0")
	}
	return nil
}
