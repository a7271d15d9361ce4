package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnv reads environment variables that are not represented by
// dedicated CLI flags.
func (c *Config) ApplyEnv() error {
	if c == nil {
		return nil
	}

	var err error
	if err = applyDurationEnv("DOCMODEL_DB_CONNECT_TIMEOUT", &c.DBConnectTimeout); err != nil {
		return err
	}
	if err = applyIntEnv("DOCMODEL_DRAIN_TIMEOUT_SECONDS", &c.DrainTimeout); err != nil {
		return err
	}
	if raw := strings.TrimSpace(os.Getenv("DOCMODEL_MAX_BODY_SIZE")); raw != "" {
		size, parseErr := parseMemorySize(raw)
		if parseErr != nil {
			return fmt.Errorf("invalid DOCMODEL_MAX_BODY_SIZE: %w", parseErr)
		}
		c.MaxBodySize = size
	}
	applyStringEnv("DOCMODEL_SEED_TENANT_ID", &c.SeedTenantID)
	return nil
}

func applyStringEnv(key string, dest *string) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	*dest = raw
}

func applyIntEnv(key string, dest *int) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dest = v
	return nil
}

func applyDurationEnv(key string, dest *time.Duration) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if v <= 0 {
		return fmt.Errorf("invalid %s: duration must be positive", key)
	}
	*dest = v
	return nil
}

func parseMemorySize(raw string) (int64, error) {
	v := strings.TrimSpace(strings.ToUpper(raw))
	if v == "" {
		return 0, fmt.Errorf("empty size")
	}
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(v, "KB"), strings.HasSuffix(v, "K"):
		multiplier = 1024
		v = strings.TrimSuffix(strings.TrimSuffix(v, "KB"), "K")
	case strings.HasSuffix(v, "MB"), strings.HasSuffix(v, "M"):
		multiplier = 1024 * 1024
		v = strings.TrimSuffix(strings.TrimSuffix(v, "MB"), "M")
	case strings.HasSuffix(v, "B"):
		v = strings.TrimSuffix(v, "B")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid size %q", raw)
	}
	return n * multiplier, nil
}
