// Package log provides module-scoped structured logging for the emulator
// core. Each subsystem owns a Module constant; callers gate expensive trace
// construction behind Module.Enabled so hot loops (the PPU dot clock, the
// APU timer clock) don't pay formatting cost when a module is silenced.
package log

import (
	"strings"
	"sync"

	logrus "gopkg.in/Sirupsen/logrus.v0"
)

// Module identifies the emulator subsystem an Entry originates from.
type Module uint32

const (
	ModNES Module = 1 << iota
	ModCPU
	ModPPU
	ModAPU
	ModBus
	ModMapper
	ModCartridge
	ModIO
)

var moduleNames = map[Module]string{
	ModNES:       "nes",
	ModCPU:       "cpu",
	ModPPU:       "ppu",
	ModAPU:       "apu",
	ModBus:       "bus",
	ModMapper:    "mapper",
	ModCartridge: "cartridge",
	ModIO:        "io",
}

func (m Module) String() string {
	if name, ok := moduleNames[m]; ok {
		return name
	}
	return "unknown"
}

// ModuleByName resolves a module by its lowercase name, for config files and
// command-line flags. It reports whether the name was recognized.
func ModuleByName(name string) (Module, bool) {
	name = strings.ToLower(name)
	for m, n := range moduleNames {
		if n == name {
			return m, true
		}
	}
	return 0, false
}

var (
	mu      sync.RWMutex
	enabled = ModNES | ModCartridge // sane defaults: lifecycle + load errors
	level   = logrus.InfoLevel
)

// EnableModules turns on tracing for the given modules, leaving the rest of
// the mask untouched.
func EnableModules(mods ...Module) {
	mu.Lock()
	defer mu.Unlock()
	for _, m := range mods {
		enabled |= m
	}
}

// DisableModules turns off tracing for the given modules.
func DisableModules(mods ...Module) {
	mu.Lock()
	defer mu.Unlock()
	for _, m := range mods {
		enabled &^= m
	}
}

// SetLevel sets the minimum severity that reaches the backend, independent
// of which modules are enabled.
func SetLevel(lvl logrus.Level) {
	mu.Lock()
	defer mu.Unlock()
	level = lvl
}

// Enabled reports whether m is currently allowed to emit at the given
// severity.
func (m Module) Enabled(lvl logrus.Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled&m != 0 && lvl <= level
}

// DebugZ starts a chained debug-level entry for this module, or a no-op
// entry if the module/level is disabled.
func (m Module) DebugZ(msg string) *Entry { return newEntry(m, logrus.DebugLevel, msg) }

// InfoZ starts a chained info-level entry.
func (m Module) InfoZ(msg string) *Entry { return newEntry(m, logrus.InfoLevel, msg) }

// WarnZ starts a chained warning-level entry.
func (m Module) WarnZ(msg string) *Entry { return newEntry(m, logrus.WarnLevel, msg) }

// ErrorZ starts a chained error-level entry.
func (m Module) ErrorZ(msg string) *Entry { return newEntry(m, logrus.ErrorLevel, msg) }

// FatalZ starts a chained entry that calls os.Exit(1) once ended.
func (m Module) FatalZ(msg string) *Entry { return newEntry(m, logrus.FatalLevel, msg) }
