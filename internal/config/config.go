package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`
	Bunny struct {
		AccessKey       string `mapstructure:"access_key"`
		AccountKey      string `mapstructure:"account_key"`
		StorageZone     string `mapstructure:"storage_zone"`
		StorageEndpoint string `mapstructure:"storage_endpoint"`
		PullZoneHost    string `mapstructure:"pull_zone_host"`
		LibraryID       int64  `mapstructure:"library_id"`
		LibraryKey      string `mapstructure:"library_key"`
	} `mapstructure:"bunny"`
	HTTP struct {
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"http"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

var envBindings = map[string]string{
	"app.env":                "APP_ENV",
	"bunny.access_key":       "BUNNY_ACCESS_KEY",
	"bunny.account_key":      "BUNNY_ACCOUNT_KEY",
	"bunny.storage_zone":     "BUNNY_STORAGE_ZONE",
	"bunny.storage_endpoint": "BUNNY_STORAGE_ENDPOINT",
	"bunny.pull_zone_host":   "BUNNY_PULL_ZONE_HOST",
	"bunny.library_id":       "BUNNY_LIBRARY_ID",
	"bunny.library_key":      "BUNNY_LIBRARY_KEY",
	"http.timeout":           "HTTP_TIMEOUT",
	"kafka.brokers":          "KAFKA_BROKERS",
	"kafka.group_id":         "KAFKA_GROUP_ID",
	"jaeger.otlp_endpoint":   "JAEGER_OTLP_ENDPOINT",
}

func LoadConfig() (cfg Config, err error) {
	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}
	return Load(viper.New(), ".")
}

// Load reads config.yaml from dir into v, overlays environment variables
// and applies defaults.
func Load(v *viper.Viper, dir string) (cfg Config, err error) {
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err = v.BindEnv(key, env); err != nil {
			return cfg, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	v.SetDefault("app.env", "development")
	v.SetDefault("bunny.storage_endpoint", "storage.bunnycdn.com")
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("kafka.group_id", "bunny-worker-group")

	err = v.Unmarshal(&cfg)
	return
}

var ErrMissingKey = errors.New("missing required config key")

// Validate reports every empty key among required.
func (c Config) Validate(required ...string) error {
	values := map[string]bool{
		"bunny.access_key":     c.Bunny.AccessKey != "",
		"bunny.account_key":    c.Bunny.AccountKey != "",
		"bunny.storage_zone":   c.Bunny.StorageZone != "",
		"bunny.pull_zone_host": c.Bunny.PullZoneHost != "",
		"bunny.library_id":     c.Bunny.LibraryID != 0,
		"bunny.library_key":    c.Bunny.LibraryKey != "",
		"kafka.brokers":        len(c.Kafka.Brokers) > 0,
		"jaeger.otlp_endpoint": c.Jaeger.OTLPEndpoint != "",
	}

	var errs []error
	for _, key := range required {
		set, known := values[key]
		if !known {
			errs = append(errs, fmt.Errorf("unknown config key %q", key))
			continue
		}
		if !set {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingKey, key))
		}
	}
	return errors.Join(errs...)
}
