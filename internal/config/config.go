package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type RewardConfig struct {
	Env           string `yaml:"env"`
	RewardDB      `yaml:"reward_db"`
	LogConfig     `yaml:"log_config"`
	MetricsServer `yaml:"metrics_server"`
	KafkaService  `yaml:"kafka-service"`
	Worker        `yaml:"worker"`
}

type RewardDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Worker struct {
	PollInterval  time.Duration `yaml:"poll_interval" env-default:"2s"`
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"30s"`
	LeaseDuration time.Duration `yaml:"lease_duration" env-default:"5m"`
	MaxAttempts   int           `yaml:"max_attempts" env-default:"3"`
}

func MustLoad() *RewardConfig {

	// Processing env config variable and file
	configPath := os.Getenv("REWARD_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("REWARD_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg RewardConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
