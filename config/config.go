// Package config loads and saves the emulator's TOML settings file: which
// log modules are enabled by default and a couple of NTSC timing knobs the
// core itself doesn't need at compile time but the headless driver and
// tests find convenient to pin down.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/u6170252806-cmd/nes-emulator/log"
)

// Config is the root of the TOML document.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Timing  TimingConfig  `toml:"timing"`
}

// LoggingConfig lists which subsystem modules start out enabled.
type LoggingConfig struct {
	Modules []string `toml:"modules"`
}

// TimingConfig pins down NTSC-specific constants a host may want to tweak
// for non-standard ROM hacks without touching the core.
type TimingConfig struct {
	CPUHz       float64 `toml:"cpu_hz"`
	FrameRateHz float64 `toml:"frame_rate_hz"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Timing: TimingConfig{
			CPUHz:       1789773,
			FrameRateHz: 60.0988,
		},
	}
}

const fileName = "nescore.toml"

// Dir returns the directory config files are read from and written to.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "nescore")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// LoadOrDefault loads the config file from Dir, falling back to Default
// when it is absent or malformed.
func LoadOrDefault() Config {
	dir, err := Dir()
	if err != nil {
		log.ModNES.WarnZ("config dir unavailable, using defaults").Err("err", err).End()
		return Default()
	}

	var cfg Config
	if _, err := toml.DecodeFile(filepath.Join(dir, fileName), &cfg); err != nil {
		return Default()
	}
	return cfg
}

// Save writes cfg to the config file in Dir.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ApplyLogging enables the modules named in cfg.Logging.Modules.
func ApplyLogging(cfg Config) {
	for _, name := range cfg.Logging.Modules {
		if m, ok := log.ModuleByName(name); ok {
			log.EnableModules(m)
		}
	}
}
