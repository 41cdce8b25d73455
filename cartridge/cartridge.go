// Package cartridge owns a loaded ROM image's storage and delegates address
// decoding to its mapper variant.
package cartridge

import (
	"github.com/u6170252806-cmd/nes-emulator/ines"
	"github.com/u6170252806-cmd/nes-emulator/log"
	"github.com/u6170252806-cmd/nes-emulator/mapper"
)

// Cartridge wraps a decoded ROM and the mapper instance that owns its
// bank-switching state. The bus holds a shared reference; the cartridge is
// the unique owner of PRG/CHR/PRG-RAM storage for its lifetime.
type Cartridge struct {
	rom    *ines.ROM
	mapper mapper.Mapper
}

// Load decodes buf as an iNES/NES2.0 image and constructs the matching
// mapper. TruncatedCHR and UnsupportedMapper are recoverable: a usable
// Cartridge is still returned alongside the error.
func Load(buf []byte) (*Cartridge, error) {
	rom, err := ines.Load(buf)
	if err != nil && rom == nil {
		return nil, err
	}
	if err != nil {
		log.ModCartridge.WarnZ("loaded ROM with recoverable error").Err("err", err).End()
	}

	m, mapErr := mapper.New(rom)
	if mapErr != nil {
		log.ModCartridge.WarnZ("mapper fallback").Err("err", mapErr).End()
		if err == nil {
			err = mapErr
		}
	}

	c := &Cartridge{rom: rom, mapper: m}
	return c, err
}

func (c *Cartridge) CPURead(addr uint16) (uint8, bool)  { return c.mapper.CPURead(addr) }
func (c *Cartridge) CPUWrite(addr uint16, v uint8) bool { return c.mapper.CPUWrite(addr, v) }
func (c *Cartridge) PPURead(addr uint16) (uint8, bool)  { return c.mapper.PPURead(addr) }
func (c *Cartridge) PPUWrite(addr uint16, v uint8) bool { return c.mapper.PPUWrite(addr, v) }

func (c *Cartridge) Reset()          { c.mapper.Reset() }
func (c *Cartridge) Mirror() ines.Mirror { return c.mapper.Mirror() }
func (c *Cartridge) IRQLine() bool   { return c.mapper.IRQLine() }
func (c *Cartridge) IRQAck()         { c.mapper.IRQAck() }
func (c *Cartridge) ScanlineHint()   { c.mapper.ScanlineHint() }

// MapperID returns the header-declared mapper number, for diagnostics.
func (c *Cartridge) MapperID() uint16 { return c.rom.MapperID }
