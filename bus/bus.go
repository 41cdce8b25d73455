// Package bus wires the CPU, PPU, APU and cartridge into one address
// space and drives their relative clock rates: the PPU runs 3 dots per
// CPU cycle, and the CPU/APU both advance on every third Clock call.
package bus

import (
	"github.com/u6170252806-cmd/nes-emulator/apu"
	"github.com/u6170252806-cmd/nes-emulator/cpu"
	"github.com/u6170252806-cmd/nes-emulator/ines"
	"github.com/u6170252806-cmd/nes-emulator/log"
	"github.com/u6170252806-cmd/nes-emulator/ppu"
)

// Cartridge is the narrow view the bus needs from a loaded cartridge:
// CPU-side PRG access plus everything ppu.Cartridge needs, so one
// concrete *cartridge.Cartridge satisfies both.
type Cartridge interface {
	CPURead(addr uint16) (data uint8, consumed bool)
	CPUWrite(addr uint16, data uint8) (consumed bool)
	PPURead(addr uint16) (data uint8, ok bool)
	PPUWrite(addr uint16, v uint8) bool
	Mirror() ines.Mirror
	ScanlineHint()
	IRQLine() bool
	IRQAck()
	Reset()
}

// Bus owns the CPU's 2KB work RAM, the controller shift registers, OAM DMA
// sequencing, and dispatches every CPU/PPU-visible address to the right
// subsystem.
type Bus struct {
	CPU *cpu.CPU
	PPU *ppu.PPU
	APU *apu.APU
	Cart Cartridge

	ram [2048]uint8

	controllerState  [2]uint8
	controllerShift  [2]uint8

	dmaPage      uint8
	dmaAddr      uint8
	dmaData      uint8
	dmaTransfer  bool
	dmaDummyDone bool

	systemClockCounter uint64
}

// New constructs a Bus wiring the given CPU, PPU, APU and cartridge
// together, and resets the CPU off the cartridge's reset vector.
func New(c *cpu.CPU, p *ppu.PPU, a *apu.APU, cart Cartridge) *Bus {
	b := &Bus{CPU: c, PPU: p, APU: a, Cart: cart}
	b.Reset()
	return b
}

// Reset clears work RAM, DMA state and the clock counter, then resets the
// CPU, PPU and cartridge.
func (b *Bus) Reset() {
	for i := range b.ram {
		b.ram[i] = 0
	}
	b.dmaPage, b.dmaAddr, b.dmaData = 0, 0, 0
	b.dmaTransfer, b.dmaDummyDone = false, false
	b.systemClockCounter = 0

	b.Cart.Reset()
	b.PPU.Reset()
	b.CPU.Reset(b)
}

// SetController latches the current button state for controller port
// index (0 or 1); a strobe write to $4016 copies this into the shift
// register that subsequent reads shift out one bit at a time.
func (b *Bus) SetController(index int, state uint8) {
	b.controllerState[index] = state
}

// Read services the CPU's view of the address space: mirrored work RAM,
// PPU registers (mirrored every 8 bytes), the controller ports, and
// whatever the cartridge's mapper claims for the rest.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.ram[addr&0x07FF]
	case addr <= 0x3FFF:
		return b.PPU.CPURead(addr & 0x0007)
	case addr == 0x4015:
		return b.APU.CPURead(addr)
	case addr == 0x4016:
		v := (b.controllerShift[0] & 0x80) >> 7
		b.controllerShift[0] <<= 1
		return v
	case addr == 0x4017:
		v := (b.controllerShift[1] & 0x80) >> 7
		b.controllerShift[1] <<= 1
		return v
	default:
		if data, ok := b.Cart.CPURead(addr); ok {
			return data
		}
		return 0
	}
}

// Write services the CPU's view of the address space, including the
// $4014 OAM DMA trigger and the $4016 controller strobe.
func (b *Bus) Write(addr uint16, v uint8) {
	switch {
	case addr <= 0x1FFF:
		b.ram[addr&0x07FF] = v
	case addr <= 0x3FFF:
		b.PPU.CPUWrite(addr&0x0007, v)
	case addr == 0x4014:
		b.dmaPage = v
		b.dmaAddr = 0
		b.dmaTransfer = true
	case addr == 0x4016:
		if v&0x01 != 0 {
			b.controllerShift[0] = b.controllerState[0]
			b.controllerShift[1] = b.controllerState[1]
		}
	case addr >= 0x4000 && addr <= 0x4013, addr == 0x4015, addr == 0x4017:
		b.APU.CPUWrite(addr, v)
	default:
		b.Cart.CPUWrite(addr, v)
	}
}

// Clock advances the whole system by one PPU dot: the PPU always ticks;
// every third call either services an in-flight OAM DMA transfer or
// clocks the CPU, and the APU is clocked on that same cadence. NMI and
// IRQ lines are sampled and forwarded once their respective flags are
// set.
func (b *Bus) Clock() {
	b.PPU.Clock()

	if b.systemClockCounter%3 == 0 {
		if b.dmaTransfer {
			b.clockDMA()
		} else {
			b.CPU.Clock(b)
		}
		b.APU.Clock(b)
	}

	if b.PPU.NMI {
		b.CPU.NMI(b)
	}

	if b.Cart.IRQLine() {
		b.CPU.IRQ(b)
		b.Cart.IRQAck()
	}
	if b.APU.IRQ() {
		b.CPU.IRQ(b)
	}

	b.systemClockCounter++
}

func (b *Bus) clockDMA() {
	if !b.dmaDummyDone {
		if b.systemClockCounter%2 == 1 {
			b.dmaDummyDone = true
		}
		return
	}

	if b.systemClockCounter%2 == 0 {
		b.dmaData = b.Read(uint16(b.dmaPage)<<8 | uint16(b.dmaAddr))
		return
	}

	b.PPU.CPUWrite(0x0004, b.dmaData)
	b.dmaAddr++
	if b.dmaAddr == 0 {
		b.dmaTransfer = false
		b.dmaDummyDone = false
		log.ModBus.DebugZ("OAM DMA complete").Uint8("page", b.dmaPage).End()
	}
}
