package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-dbentity/cache"
	"github.com/goliatone/go-dbentity/database"
)

const (
	envPrefix = "ENTITYCTL"

	cfgKeyDriver       = "database.driver"
	cfgKeyDSN          = "database.dsn"
	cfgKeyDatabaseName = "database.name"
	cfgKeyCache        = "cache.enabled"
	cfgKeyCacheBackend = "cache.backend"
	cfgKeyCacheTTL     = "cache.ttl"
	cfgKeyCacheSize    = "cache.capacity"
	cfgKeyRedisAddr    = "cache.redis.addr"
	cfgKeyRedisPrefix  = "cache.redis.prefix"
	cfgKeyLogLevel     = "log.level"
)

// settings is the resolved CLI configuration.
type settings struct {
	Driver       string
	DSN          string
	DatabaseName string
	CacheEnabled bool
	Cache        cache.Config
	LogLevel     string
}

// loadConfig reads the optional config file, ENTITYCTL_* variables and bound flags.
// A missing config file is not an error.
func loadConfig(v *viper.Viper, configFile string) (settings, error) {
	v.SetDefault(cfgKeyDriver, database.DriverSQLite)
	v.SetDefault(cfgKeyDSN, "file:entityctl.db")
	v.SetDefault(cfgKeyDatabaseName, "main")
	v.SetDefault(cfgKeyCache, false)
	v.SetDefault(cfgKeyCacheBackend, cache.BackendMemory)
	v.SetDefault(cfgKeyCacheTTL, cache.DefaultTTL)
	v.SetDefault(cfgKeyCacheSize, 10000)
	v.SetDefault(cfgKeyRedisPrefix, "entityctl:")
	v.SetDefault(cfgKeyLogLevel, "warn")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("entityctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return settings{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.Backend = v.GetString(cfgKeyCacheBackend)
	cacheCfg.TTL = v.GetDuration(cfgKeyCacheTTL)
	cacheCfg.Capacity = v.GetInt(cfgKeyCacheSize)
	if addr := v.GetString(cfgKeyRedisAddr); addr != "" {
		cacheCfg.Redis = &cache.RedisConfig{
			Addr:      addr,
			KeyPrefix: v.GetString(cfgKeyRedisPrefix),
		}
	}

	s := settings{
		Driver:       v.GetString(cfgKeyDriver),
		DSN:          v.GetString(cfgKeyDSN),
		DatabaseName: v.GetString(cfgKeyDatabaseName),
		CacheEnabled: v.GetBool(cfgKeyCache),
		Cache:        cacheCfg,
		LogLevel:     v.GetString(cfgKeyLogLevel),
	}
	if err := s.Cache.Validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}
