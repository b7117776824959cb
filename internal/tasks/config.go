package tasks

import "time"

// Config tunes the rebuild queue. Zero fields fall back to DefaultConfig.
type Config struct {
	Workers         int           // concurrent workers; rebuilds serialize anyway
	ReleaseAfter    time.Duration // a claimed task is handed out again after this long
	CleanupInterval time.Duration // how often finished tasks are purged
}

func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Workers < 1 {
		c.Workers = def.Workers
	}
	if c.ReleaseAfter <= 0 {
		c.ReleaseAfter = def.ReleaseAfter
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = def.CleanupInterval
	}
	return c
}
