package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=retail_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultHTTPAddr = ":8080"
const defaultScanInterval = time.Hour
const defaultAdminUsername = "admin"

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	DatabaseDSN          string
	HTTPAddr             string
	MigrationsDir        string
	Store                string
	MaturityScanInterval time.Duration
	BcryptCost           int
	AdminUsername        string
	AdminPIN             string
}

func Load() (Config, error) {
	conn := envOr("DATABASE_DSN", defaultConnectionString)

	store := strings.ToLower(envOr("STORE", StorePostgres))
	if store != StorePostgres && store != StoreMemory {
		return Config{}, fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreMemory, store)
	}

	interval := defaultScanInterval
	if raw := strings.TrimSpace(os.Getenv("MATURITY_SCAN_INTERVAL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed < 0 {
			return Config{}, fmt.Errorf("MATURITY_SCAN_INTERVAL must be a non-negative duration, got %q", raw)
		}
		interval = parsed
	}

	cost := bcrypt.DefaultCost
	if raw := strings.TrimSpace(os.Getenv("BCRYPT_COST")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < bcrypt.MinCost || parsed > bcrypt.MaxCost {
			return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %q", bcrypt.MinCost, bcrypt.MaxCost, raw)
		}
		cost = parsed
	}

	return Config{
		DatabaseDSN:          normalizeConnectionString(conn),
		HTTPAddr:             envOr("HTTP_ADDR", defaultHTTPAddr),
		MigrationsDir:        envOr("MIGRATIONS_DIR", filepath.Join("src", "migrations")),
		Store:                store,
		MaturityScanInterval: interval,
		BcryptCost:           cost,
		AdminUsername:        envOr("ADMIN_USERNAME", defaultAdminUsername),
		AdminPIN:             strings.TrimSpace(os.Getenv("ADMIN_PIN")),
	}, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
