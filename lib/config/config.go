// Copyright 2026 PingCAP, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"net"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/msgstore/lib/util/errors"
	"go.uber.org/zap/zapcore"
)

var (
	ErrInvalidConfigValue = errors.New("invalid config value")
)

type Config struct {
	API     API    `yaml:"api,omitempty" toml:"api,omitempty" json:"api,omitempty"`
	Workdir string `yaml:"workdir,omitempty" toml:"workdir,omitempty" json:"workdir,omitempty"`
	Log     Log    `yaml:"log,omitempty" toml:"log,omitempty" json:"log,omitempty"`
}

// API is the listener shared by the gRPC service and the HTTP API.
type API struct {
	Addr string `yaml:"addr,omitempty" toml:"addr,omitempty" json:"addr,omitempty"`
	// GracefulWaitBeforeShutdown is the seconds to keep serving after the health check turns unhealthy.
	GracefulWaitBeforeShutdown int `yaml:"graceful-wait-before-shutdown,omitempty" toml:"graceful-wait-before-shutdown,omitempty" json:"graceful-wait-before-shutdown,omitempty" reloadable:"true"`
}

type LogOnline struct {
	Level   string  `yaml:"level,omitempty" toml:"level,omitempty" json:"level,omitempty" reloadable:"true"`
	LogFile LogFile `yaml:"log-file,omitempty" toml:"log-file,omitempty" json:"log-file,omitempty" reloadable:"true"`
}

type Log struct {
	Encoder   string `yaml:"encoder,omitempty" toml:"encoder,omitempty" json:"encoder,omitempty"`
	LogOnline `yaml:",inline" toml:",inline" json:",inline"`
}

type LogFile struct {
	Filename   string `yaml:"filename,omitempty" toml:"filename,omitempty" json:"filename,omitempty"`
	MaxSize    int    `yaml:"max-size,omitempty" toml:"max-size,omitempty" json:"max-size,omitempty"`
	MaxDays    int    `yaml:"max-days,omitempty" toml:"max-days,omitempty" json:"max-days,omitempty"`
	MaxBackups int    `yaml:"max-backups,omitempty" toml:"max-backups,omitempty" json:"max-backups,omitempty"`
}

// HealthInfo is the body of the health check API.
type HealthInfo struct {
	ConfigChecksum uint32 `json:"config_checksum"`
	Identities     int    `json:"identities"`
}

func NewConfig() *Config {
	var cfg Config

	cfg.API.Addr = "127.0.0.1:50051"

	cfg.Log.Level = "info"
	cfg.Log.Encoder = "console"
	cfg.Log.LogFile.MaxSize = 300
	cfg.Log.LogFile.MaxDays = 3
	cfg.Log.LogFile.MaxBackups = 3

	return &cfg
}

func (cfg *Config) Clone() *Config {
	newCfg := *cfg
	return &newCfg
}

func (cfg *Config) Check() error {
	if cfg.Workdir == "" {
		d, err := os.Getwd()
		if err != nil {
			return errors.WithStack(err)
		}
		cfg.Workdir = filepath.Clean(filepath.Join(d, "work"))
	}

	if _, _, err := net.SplitHostPort(cfg.API.Addr); err != nil {
		return errors.Wrapf(ErrInvalidConfigValue, "api.addr %q: %v", cfg.API.Addr, err)
	}
	if cfg.API.GracefulWaitBeforeShutdown < 0 {
		return errors.Wrapf(ErrInvalidConfigValue, "graceful-wait-before-shutdown must not be negative")
	}

	switch cfg.Log.Encoder {
	case "json", "console":
	default:
		return errors.Wrapf(ErrInvalidConfigValue, "unsupported log encoder %q", cfg.Log.Encoder)
	}
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return errors.Wrap(ErrInvalidConfigValue, err)
	}

	return nil
}

func (cfg *Config) ToBytes() ([]byte, error) {
	b := new(bytes.Buffer)
	err := toml.NewEncoder(b).Encode(cfg)
	return b.Bytes(), errors.WithStack(err)
}
