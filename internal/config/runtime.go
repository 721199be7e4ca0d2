package config

import (
	"github.com/spf13/viper"
)

type Runtime struct {
	HTTPAddr      string
	CacheMaxItems int
	ObsBuffer     int
	MaxSamples    int
	LogProduction bool
	LogLevel      string
}

// Load reads the runtime configuration from the environment.
func Load() Runtime {
	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper applies defaults to v and reads the runtime configuration.
// Integer settings below their minimum fall back to the default.
func FromViper(v *viper.Viper) Runtime {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("PROPERTY_CACHE_MAX_ITEMS", 1024)
	v.SetDefault("PROPERTY_OBS_BUFFER", 4096)
	v.SetDefault("TRACE_MAX_SAMPLES", 100_000)
	v.SetDefault("LOG_PRODUCTION", true)
	v.SetDefault("LOG_LEVEL", "info")

	addr := v.GetString("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Runtime{
		HTTPAddr:      addr,
		CacheMaxItems: intAtLeast(v, "PROPERTY_CACHE_MAX_ITEMS", 1024, 1),
		ObsBuffer:     intAtLeast(v, "PROPERTY_OBS_BUFFER", 4096, 1),
		MaxSamples:    intAtLeast(v, "TRACE_MAX_SAMPLES", 100_000, 1),
		LogProduction: v.GetBool("LOG_PRODUCTION"),
		LogLevel:      v.GetString("LOG_LEVEL"),
	}
}

func intAtLeast(v *viper.Viper, key string, fallback, min int) int {
	n := v.GetInt(key)
	if n < min {
		return fallback
	}
	return n
}
