package config

import (
	"errors"
	"fmt"
	"time"

	"timed-set/internal/logs"
)

// ServerPolicy controls the HTTP listener.
type ServerPolicy struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration // grace period for in-flight requests
}

// SetPolicy controls the timed set served by the process.
type SetPolicy struct {
	TTL time.Duration // lifetime of every inserted value
}

// LogPolicy controls the in-memory logger.
type LogPolicy struct {
	Size  int // entries kept in the ring buffer
	Level string
}

type Config struct {
	Server ServerPolicy
	Set    SetPolicy
	Log    LogPolicy
}

func Default() Config {
	return Config{
		Server: ServerPolicy{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Set: SetPolicy{
			TTL: 10 * time.Second,
		},
		Log: LogPolicy{
			Size:  1000,
			Level: string(logs.INFO),
		},
	}
}

var ErrInvalid = errors.New("invalid config")

// Validate reports every problem found, wrapped with ErrInvalid.
func (c Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server address is empty"))
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		errs = append(errs, fmt.Errorf("read header timeout must be positive, got %s", c.Server.ReadHeaderTimeout))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be positive, got %s", c.Server.ShutdownTimeout))
	}
	if c.Set.TTL <= 0 {
		errs = append(errs, fmt.Errorf("ttl must be positive, got %s", c.Set.TTL))
	}
	if c.Log.Size <= 0 {
		errs = append(errs, fmt.Errorf("log size must be positive, got %d", c.Log.Size))
	}
	if _, err := logs.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
