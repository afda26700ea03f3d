// Package config reads the server settings shared by the route and
// footprint commands. Values come from flags, then the environment (plain
// names such as PORT and LOG_LEVEL), then an optional config file.
package config

import (
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ColinToft/GeometricRoute/internal/util/errors"
)

type Config struct {
	Address string
	Port    string

	// One of debug, info, warn, error
	LogLevel string

	// Bytes of encoded routes to keep; 0 disables the cache
	CacheMaxCost int64

	// Panic on contract violations instead of logging them
	Strict bool
}

// RegisterFlags adds the server flags to fs.
func RegisterFlags(fs *pflag.FlagSet, defaultPort string) {
	fs.String("address", "127.0.0.1", "Address to listen on.")
	fs.String("port", defaultPort, "Port to listen on.")
	fs.String("log_level", "info", "Log level, one of [debug, info, warn, error].")
	fs.Int64("cache_max_cost", 64<<20, "Bytes of generated routes to keep in memory. 0 disables the cache.")
	fs.Bool("strict", false, "Panic on contract violations. For development.")
	fs.String("config", "", "Configuration file. Overridden by environment variables and flags.")
}

// NewViper returns a viper bound to fs that also reads the environment.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	v.AutomaticEnv()
	return v, nil
}

// LoadDotEnv loads environment variables from path. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// Load reads the settings out of v.
func Load(v *viper.Viper) (Config, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.InvalidArgument("reading config %s: %v", file, err)
		}
	}

	c := Config{
		Address:      v.GetString("address"),
		Port:         v.GetString("port"),
		LogLevel:     strings.ToLower(v.GetString("log_level")),
		CacheMaxCost: v.GetInt64("cache_max_cost"),
		Strict:       v.GetBool("strict"),
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return errors.InvalidArgument("port %q is not a TCP port", c.Port)
	}
	if _, ok := levels[c.LogLevel]; !ok {
		return errors.InvalidArgument("unknown log level %q", c.LogLevel)
	}
	if c.CacheMaxCost < 0 {
		return errors.InvalidArgument("cache_max_cost %d is negative", c.CacheMaxCost)
	}
	return nil
}

// HTTPAddr is the listen address.
func (c Config) HTTPAddr() string {
	return net.JoinHostPort(c.Address, c.Port)
}

var levels = map[string]level.Option{
	"debug": level.AllowDebug(),
	"info":  level.AllowInfo(),
	"warn":  level.AllowWarn(),
	"error": level.AllowError(),
}

// Logger returns a logfmt logger writing to w, filtered to the level.
func (c Config) Logger(w io.Writer) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if opt, ok := levels[c.LogLevel]; ok {
		logger = level.NewFilter(logger, opt)
	}
	return logger
}
