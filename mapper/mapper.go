// Package mapper implements the cartridge memory-mapper variants: the
// bank-switching and IRQ logic that sits between the CPU/PPU address buses
// and a cartridge's PRG/CHR storage.
package mapper

import (
	"fmt"

	"github.com/u6170252806-cmd/nes-emulator/ines"
	"github.com/u6170252806-cmd/nes-emulator/log"
)

// Mapper is the uniform contract every variant implements. Returning
// consumed=true suppresses further bus fallback for that access.
type Mapper interface {
	CPURead(addr uint16) (data uint8, consumed bool)
	CPUWrite(addr uint16, data uint8) (consumed bool)
	PPURead(addr uint16) (data uint8, consumed bool)
	PPUWrite(addr uint16, data uint8) (consumed bool)
	Reset()
	Mirror() ines.Mirror
	IRQLine() bool
	IRQAck()
	ScanlineHint()
}

// New constructs the mapper named by rom's header mapper ID. If the ID is
// not one of the supported variants, it falls back to mapper 0 (NROM) and
// returns ErrUnsupportedMapper so the caller can warn the user.
func New(rom *ines.ROM) (Mapper, error) {
	id := rom.MapperID
	ctor, ok := registry[id]
	if !ok {
		log.ModMapper.WarnZ("unsupported mapper, falling back to NROM").Uint16("id", id).End()
		return newNROM(rom), fmt.Errorf("%w: %d", ines.ErrUnsupportedMapper, id)
	}
	return ctor(rom), nil
}

var registry = map[uint16]func(*ines.ROM) Mapper{
	0:   func(r *ines.ROM) Mapper { return newNROM(r) },
	1:   func(r *ines.ROM) Mapper { return newMMC1(r) },
	2:   func(r *ines.ROM) Mapper { return newUxROM(r) },
	3:   func(r *ines.ROM) Mapper { return newCNROM(r) },
	4:   func(r *ines.ROM) Mapper { return newMMC3(r) },
	7:   func(r *ines.ROM) Mapper { return newAxROM(r) },
	9:   func(r *ines.ROM) Mapper { return newMMC2(r) },
	10:  func(r *ines.ROM) Mapper { return newMMC4(r) },
	11:  func(r *ines.ROM) Mapper { return newColorDreams(r) },
	66:  func(r *ines.ROM) Mapper { return newGxROM(r) },
	71:  func(r *ines.ROM) Mapper { return newCamerica(r) },
	206: func(r *ines.ROM) Mapper { return newNamco108(r) },
}
