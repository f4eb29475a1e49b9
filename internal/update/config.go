package update

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	APIBaseURL           string `yaml:"api_base_url"`
	UserID               string `yaml:"user_id"`
	RequestTimeoutSec    int    `yaml:"request_timeout_sec"`
	ReminderHours        []int  `yaml:"reminder_hours"`
	ReminderIntervalSec  int    `yaml:"reminder_interval_sec"`
	DesktopNotifications bool   `yaml:"desktop_notifications"`
	CachePath            string `yaml:"cache_path"`
	LogFile              string `yaml:"log_file"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		APIBaseURL:           "http://localhost:8080/api",
		UserID:               "",
		RequestTimeoutSec:    15,
		ReminderHours:        []int{10, 14, 20},
		ReminderIntervalSec:  60,
		DesktopNotifications: false,
		CachePath:            "grind.db",
		LogFile:              "grind.log",
	}
}

// LoadConfigFile overlays a YAML file onto base. A missing file is not an
// error; env vars still apply on top.
func LoadConfigFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	cfg := base
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("GRIND_API_BASE_URL"); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := getEnvString("GRIND_USER"); ok {
		cfg.UserID = v
	}
	if v, ok := getEnvInt("GRIND_REQUEST_TIMEOUT_SECONDS"); ok && v > 0 {
		cfg.RequestTimeoutSec = v
	}
	if v, ok := getEnvString("GRIND_REMINDER_HOURS"); ok {
		if hours, err := parseHours(v); err == nil {
			cfg.ReminderHours = hours
		}
	}
	if v, ok := getEnvInt("GRIND_REMINDER_INTERVAL_SECONDS"); ok && v > 0 {
		cfg.ReminderIntervalSec = v
	}
	if v, ok := getEnvBool("GRIND_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvString("GRIND_CACHE_PATH"); ok {
		cfg.CachePath = v
	}
	if v, ok := getEnvString("GRIND_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	return cfg
}

func parseHours(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	hours := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		h, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid reminder hour %q: %w", part, err)
		}
		if h < 0 || h > 23 {
			return nil, fmt.Errorf("reminder hour out of range: %d", h)
		}
		hours = append(hours, h)
	}
	if len(hours) == 0 {
		return nil, fmt.Errorf("no reminder hours in %q", raw)
	}
	return hours, nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
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
