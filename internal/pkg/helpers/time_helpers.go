package helpers

import (
	"time"

	"github.com/yigit/sims/internal/pkg/logger"
)

// ParseDuration parses durationStr, returning fallback (and logging) when it is malformed.
func ParseDuration(durationStr string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		logger.Warn().Err(err).
			Str("durationStr", durationStr).
			Dur("fallback", fallback).
			Msg("Failed to parse duration string, using fallback")
		return fallback
	}
	return d
}
