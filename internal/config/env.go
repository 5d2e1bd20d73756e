package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv applies TASKBOARD_* overrides on top of base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKBOARD_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TASKBOARD_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString("TASKBOARD_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvBool("TASKBOARD_DEBUG"); ok {
		cfg.Debug = v
	}
	if v, ok := getEnvBool("TASKBOARD_ALERTS"); ok {
		cfg.Alerts = v
	}
	if v, ok := getEnvInt("TASKBOARD_ALERT_BUFFER"); ok && v > 0 {
		cfg.AlertBuffer = v
	}
	if v, ok := getEnvString("TASKBOARD_GLAMOUR_STYLE"); ok {
		cfg.GlamourStyle = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
