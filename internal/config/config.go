// Package config loads process-wide settings via viper, generalizing the
// env-var pattern the pack's UPH-ROAD-TO-MAGISTER config.go uses
// (getenvInt with a default) into a typed, file-and-env-backed loader.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Settings holds every tunable the server needs at startup, per spec §5
// and §4.10's timer constants.
type Settings struct {
	HTTPAddr string

	DefaultBudget   int
	DefaultFiles    int
	DefaultRanks    int

	DraftTimeoutSeconds     int
	CountdownSeconds        int
	RevealSeconds           int
	DisconnectGraceSeconds  int
	RoomReapIntervalSeconds int

	RoomCollisionRetries int
}

// Load reads settings from environment variables prefixed FAIRYCHESS_ (and
// an optional config file named fairychess.yaml on the current path),
// falling back to sensible defaults for an unconfigured process.
func Load() Settings {
	v := viper.New()
	v.SetEnvPrefix("FAIRYCHESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("fairychess")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("default_budget", 500)
	v.SetDefault("default_files", 8)
	v.SetDefault("default_ranks", 8)
	v.SetDefault("draft_timeout_seconds", 60)
	v.SetDefault("countdown_seconds", 3)
	v.SetDefault("reveal_seconds", 3)
	v.SetDefault("disconnect_grace_seconds", 60)
	v.SetDefault("room_reap_interval_seconds", 300)
	v.SetDefault("room_collision_retries", 100)

	return Settings{
		HTTPAddr:                v.GetString("http_addr"),
		DefaultBudget:           v.GetInt("default_budget"),
		DefaultFiles:            v.GetInt("default_files"),
		DefaultRanks:            v.GetInt("default_ranks"),
		DraftTimeoutSeconds:     v.GetInt("draft_timeout_seconds"),
		CountdownSeconds:        v.GetInt("countdown_seconds"),
		RevealSeconds:           v.GetInt("reveal_seconds"),
		DisconnectGraceSeconds:  v.GetInt("disconnect_grace_seconds"),
		RoomReapIntervalSeconds: v.GetInt("room_reap_interval_seconds"),
		RoomCollisionRetries:    v.GetInt("room_collision_retries"),
	}
}
