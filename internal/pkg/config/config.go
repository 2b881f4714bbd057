package config

import (
	"io"
	"time"
)

// Config is the read-only view of application configuration. Missing keys
// yield zero values; callers apply their own defaults.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint16(key string) uint16
	GetFloat64(key string) float64

	// GetSecond, GetMinute, GetHour and GetDay read an integer and scale it.
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
	GetDay(key string) time.Duration

	// GetBinary decodes a base64 value.
	GetBinary(key string) []byte

	// GetArray reads a YAML list or a comma separated string, trimmed,
	// with empty elements dropped.
	GetArray(key string) []string

	// GetMap reads "k1:v1,k2:v2".
	GetMap(key string) map[string]string
}
