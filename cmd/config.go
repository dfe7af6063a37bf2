package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string `mapstructure:"http_port"`
	Debug    bool   `mapstructure:"debug"`

	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSslMode  string `mapstructure:"db_sslmode"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	KafkaEnabled                  bool   `mapstructure:"kafka_enabled"`
	KafkaHost                     string `mapstructure:"kafka_host"`
	KafkaSimulationCompletedTopic string `mapstructure:"kafka_simulation_completed_topic"`

	S3ArchiveEnabled bool   `mapstructure:"s3_archive_enabled"`
	S3Region         string `mapstructure:"s3_region"`
	S3Bucket         string `mapstructure:"s3_bucket"`
	S3Prefix         string `mapstructure:"s3_prefix"`

	SimulationSchedule         string        `mapstructure:"simulation_schedule"`
	SimulationScheduleDrivers  int           `mapstructure:"simulation_schedule_drivers"`
	SimulationScheduleStart    string        `mapstructure:"simulation_schedule_start"`
	SimulationScheduleMaxHours float64       `mapstructure:"simulation_schedule_max_hours"`
	SimulationTimeout          time.Duration `mapstructure:"simulation_timeout"`

	TracingEnabled     bool    `mapstructure:"tracing_enabled"`
	TracingSampleRatio float64 `mapstructure:"tracing_sample_ratio"`
}

var configDefaults = map[string]any{
	"http_port":                        "8080",
	"debug":                            false,
	"db_host":                          "localhost",
	"db_port":                          "5432",
	"db_user":                          "postgres",
	"db_password":                      "",
	"db_name":                          "dispatchsim",
	"db_sslmode":                       "disable",
	"log_level":                        "info",
	"log_format":                       "text",
	"kafka_enabled":                    false,
	"kafka_host":                       "localhost:9092",
	"kafka_simulation_completed_topic": "simulation.completed",
	"s3_archive_enabled":               false,
	"s3_region":                        "us-east-1",
	"s3_bucket":                        "",
	"s3_prefix":                        "simulation-runs",
	"simulation_schedule":              "",
	"simulation_schedule_drivers":      3,
	"simulation_schedule_start":        "09:00",
	"simulation_schedule_max_hours":    8.0,
	"simulation_timeout":               "30s",
	"tracing_enabled":                  false,
	"tracing_sample_ratio":             1.0,
}

// LoadConfig reads .env (when present), an optional YAML/JSON config file and
// the environment, in increasing order of precedence. Keys are the upper-case
// env names, e.g. DB_HOST, KAFKA_ENABLED.
func LoadConfig(v *viper.Viper, cfgFile string) (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings that would otherwise fail late, after the
// server has started.
func (c Config) Validate() error {
	var problems []error
	if c.HTTPPort == "" {
		problems = append(problems, errors.New("HTTP_PORT is required"))
	}
	if c.KafkaEnabled && (c.KafkaHost == "" || c.KafkaSimulationCompletedTopic == "") {
		problems = append(problems, errors.New("KAFKA_HOST and KAFKA_SIMULATION_COMPLETED_TOPIC are required when Kafka is enabled"))
	}
	if c.S3ArchiveEnabled && (c.S3Bucket == "" || c.S3Region == "") {
		problems = append(problems, errors.New("S3_BUCKET and S3_REGION are required when S3 archiving is enabled"))
	}
	return errors.Join(problems...)
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
