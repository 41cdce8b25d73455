// Package nes assembles the CPU, PPU, APU and cartridge into one runnable
// system and exposes the host-facing controls: load a ROM, reset, step a
// clock, or run until a fresh frame is ready.
package nes

import (
	"github.com/u6170252806-cmd/nes-emulator/apu"
	"github.com/u6170252806-cmd/nes-emulator/bus"
	"github.com/u6170252806-cmd/nes-emulator/cartridge"
	"github.com/u6170252806-cmd/nes-emulator/cpu"
	"github.com/u6170252806-cmd/nes-emulator/log"
	"github.com/u6170252806-cmd/nes-emulator/ppu"
)

// System owns one complete machine: a loaded cartridge and the CPU/PPU/APU
// trio wired to it through a Bus.
type System struct {
	Bus *bus.Bus
	CPU *cpu.CPU
	PPU *ppu.PPU
	APU *apu.APU
	Cart *cartridge.Cartridge
}

// LoadROM decodes buf as an iNES/NES2.0 image and wires up a fresh System
// around it. A non-nil System is returned even when err reports a
// recoverable condition (truncated CHR, unsupported mapper).
func LoadROM(buf []byte) (*System, error) {
	cart, err := cartridge.Load(buf)
	if cart == nil {
		return nil, err
	}

	s := &System{
		CPU:  &cpu.CPU{},
		APU:  apu.New(),
		Cart: cart,
	}
	s.PPU = ppu.New(cart)
	s.Bus = bus.New(s.CPU, s.PPU, s.APU, cart)

	log.ModNES.InfoZ("ROM loaded").Uint16("mapper", cart.MapperID()).End()
	return s, err
}

// Reset returns every subsystem to its power-on state.
func (s *System) Reset() {
	s.APU.Reset()
	s.Bus.Reset()
}

// SetController latches the given 8-button state for controller port
// index (0 or 1).
func (s *System) SetController(index int, state uint8) {
	s.Bus.SetController(index, state)
}

// Clock advances the whole system by one PPU dot (a third of a CPU cycle).
func (s *System) Clock() {
	s.Bus.Clock()
}

// StepFrame clocks the system until a full frame has been rendered into
// s.PPU.Screen, then returns. It always clocks at least once, so a caller
// that just consumed a frame won't spin in place without progress.
func (s *System) StepFrame() {
	s.Bus.Clock()
	for !s.PPU.FrameReady {
		s.Bus.Clock()
	}
}

// Sample returns the current mixed audio sample. The host is expected to
// call it once per CPU cycle (every third Clock call) to build an audio
// stream at the APU's native rate.
func (s *System) Sample() float64 {
	return s.APU.Sample()
}
