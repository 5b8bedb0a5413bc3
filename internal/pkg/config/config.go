package config

import "time"

// Config reads typed configuration values by dotted key.
//
// Implementations are expected to resolve values from a file plus
// environment overrides. Callers treat missing keys as zero values.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetFloat64(key string) float64
	GetBool(key string) bool
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
	GetDay(key string) time.Duration
	GetArray(key string) []string
	GetMap(key string) map[string]string
	GetBinary(key string) []byte
}
