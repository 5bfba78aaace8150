package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	HTTPAddress string `mapstructure:"http_address"`
	// RPCAddress disables the admin RPC listener when empty.
	RPCAddress        string        `mapstructure:"rpc_address"`
	ReadLimit         int64         `mapstructure:"read_limit"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	SendBuffer        int           `mapstructure:"send_buffer"`
	EventRate         float64       `mapstructure:"event_rate"`
	EventBurst        int           `mapstructure:"event_burst"`
}

type GameConfig struct {
	TotalRounds  int `mapstructure:"total_rounds"`
	DrawerPoints int `mapstructure:"drawer_points"`
}

type DatabaseConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Driver   string         `mapstructure:"driver"` // gorm | pq
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type LogConfig struct {
	Development bool `mapstructure:"development"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_address", ":3000")
	v.SetDefault("server.rpc_address", "")
	v.SetDefault("server.read_limit", 4<<20) // canvas frames are large
	v.SetDefault("server.heartbeat_interval", 30*time.Second)
	v.SetDefault("server.send_buffer", 256)
	v.SetDefault("server.event_rate", 30)
	v.SetDefault("server.event_burst", 60)

	v.SetDefault("game.total_rounds", 3)
	v.SetDefault("game.drawer_points", 1000)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "gorm")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)

	v.SetDefault("log.development", false)
	v.SetDefault("metrics.namespace", "drawguess")
}

// LoadConfig reads config.yaml from path. A missing file leaves the defaults
// in place; DRAWGUESS_* environment variables override both.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("drawguess")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
