package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	// DefaultMaxObjectSize caps how much a single upload may buffer.
	DefaultMaxObjectSize = 1 * 1024 * 1024 * 1024 // 1GB

	// DefaultMemoryPressureRatio is the heap-usage fraction above which
	// in-progress uploads are aborted.
	DefaultMemoryPressureRatio = 0.85
)

// Backend type selectors.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Config holds object store service configuration.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	App     AppConfig     `json:"app" yaml:"app"`
	Backend BackendConfig `json:"backend" yaml:"backend"`
	Logger  logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type AppConfig struct {
	ChunkSize           int     `json:"chunk_size" yaml:"chunk_size"`
	MaxObjectSize       int64   `json:"max_object_size" yaml:"max_object_size"`
	ParallelChunks      int     `json:"parallel_chunks" yaml:"parallel_chunks"`
	MemoryPressureRatio float64 `json:"memory_pressure_ratio" yaml:"memory_pressure_ratio"`
}

type BackendConfig struct {
	Type   string       `json:"type" yaml:"type"` // "redis", "memory", "badger"
	Redis  RedisConfig  `json:"redis" yaml:"redis"`
	Badger BadgerConfig `json:"badger" yaml:"badger"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

type BadgerConfig struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8090",
		},
		App: AppConfig{
			ChunkSize:           4 * 1024 * 1024, // 4MB
			MaxObjectSize:       DefaultMaxObjectSize,
			ParallelChunks:      4,
			MemoryPressureRatio: DefaultMemoryPressureRatio,
		},
		Backend: BackendConfig{
			Type: BackendRedis,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
			Badger: BadgerConfig{
				DataDir: "data/badger",
			},
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file, falling back to defaults when no
// explicit path was given.
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
