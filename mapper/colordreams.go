package mapper

import "github.com/u6170252806-cmd/nes-emulator/ines"

// colorDreams is mapper 11: any write to $8000-$FFFF selects both the 32
// KiB PRG bank (low 2 bits) and the 8 KiB CHR bank (bits 4-7), grounded on
// original_source/src/mappers/mapper011.cpp.
type colorDreams struct {
	base
	prgBank uint8
	chrBank uint8
}

func newColorDreams(rom *ines.ROM) *colorDreams {
	return &colorDreams{base: newBase(rom)}
}

func (m *colorDreams) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	banks := m.prgBanks / 2 // PRG count is in 16KiB units; this mapper banks 32KiB
	if banks == 0 {
		banks = 1
	}
	off := int(m.prgBank%uint8(banks))*0x8000 + int(addr-0x8000)
	return m.prg[off%len(m.prg)], true
}

func (m *colorDreams) CPUWrite(addr uint16, v uint8) bool {
	if addr < 0x8000 {
		return false
	}
	m.prgBank = v & 0x03
	m.chrBank = (v >> 4) & 0x0F
	return true
}

func (m *colorDreams) PPURead(addr uint16) (uint8, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	banks := m.chrBanks
	if banks == 0 {
		banks = 1
	}
	off := int(m.chrBank%uint8(banks))*0x2000 + int(addr)
	return m.chrRead(off), true
}

func (m *colorDreams) PPUWrite(addr uint16, v uint8) bool {
	if addr > 0x1FFF {
		return false
	}
	banks := m.chrBanks
	if banks == 0 {
		banks = 1
	}
	off := int(m.chrBank%uint8(banks))*0x2000 + int(addr)
	return m.chrWrite(off, v)
}

func (m *colorDreams) Reset() {
	m.prgBank = 0
	m.chrBank = 0
}
