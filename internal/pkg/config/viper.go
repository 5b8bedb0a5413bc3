package config

import (
	"encoding/base64"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Viper implements Config on top of spf13/viper with live file reload and
// environment overrides (dotted keys map to underscored env names).
type Viper struct {
	v *viper.Viper
}

// NewViper loads the configuration file at path and starts watching it for
// changes. Environment variables take precedence over file values.
func NewViper(path string) (*Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("configuration reloaded", "file", e.Name, "op", e.Op.String())
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

func (c *Viper) GetString(key string) string   { return c.v.GetString(key) }
func (c *Viper) GetInt(key string) int         { return c.v.GetInt(key) }
func (c *Viper) GetInt32(key string) int32     { return c.v.GetInt32(key) }
func (c *Viper) GetInt64(key string) int64     { return c.v.GetInt64(key) }
func (c *Viper) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }
func (c *Viper) GetBool(key string) bool       { return c.v.GetBool(key) }

func (c *Viper) GetSecond(key string) time.Duration {
	return time.Duration(c.v.GetInt(key)) * time.Second
}

func (c *Viper) GetMinute(key string) time.Duration {
	return time.Duration(c.v.GetInt(key)) * time.Minute
}

func (c *Viper) GetHour(key string) time.Duration {
	return time.Duration(c.v.GetInt(key)) * time.Hour
}

func (c *Viper) GetDay(key string) time.Duration {
	return time.Duration(c.v.GetInt(key)) * 24 * time.Hour
}

func (c *Viper) GetArray(key string) []string {
	return c.v.GetStringSlice(key)
}

func (c *Viper) GetMap(key string) map[string]string {
	return c.v.GetStringMapString(key)
}

// GetBinary decodes a base64 value, falling back to the raw bytes when the
// value is not valid base64.
func (c *Viper) GetBinary(key string) []byte {
	raw := c.v.GetString(key)
	if raw == "" {
		return nil
	}

	if b, err := base64.StdEncoding.DecodeString(raw); err == nil {
		return b
	}

	return []byte(raw)
}
