package mapper

import "github.com/u6170252806-cmd/nes-emulator/ines"

// namco108 is mapper 206: MMC3's PRG/CHR bank-select mechanism without the
// inversion bit, the bank-mode toggle, or the scanline IRQ counter.
// Grounded on original_source/src/mappers/mapper206.cpp.
type namco108 struct {
	base

	targetReg uint8
	regs      [8]uint8
}

func newNamco108(rom *ines.ROM) *namco108 {
	return &namco108{base: newBase(rom)}
}

func (m *namco108) Reset() {
	m.targetReg = 0
	m.regs = [8]uint8{}
}

func (m *namco108) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	last := m.prgBanks*2 - 1
	secondLast := last - 1
	var bank int
	switch {
	case addr <= 0x9FFF:
		bank = int(m.regs[6]) % (m.prgBanks * 2)
	case addr <= 0xBFFF:
		bank = int(m.regs[7]) % (m.prgBanks * 2)
	case addr <= 0xDFFF:
		bank = secondLast
	default:
		bank = last
	}
	off := bank*0x2000 + int(addr)%0x2000
	return m.prg[off%len(m.prg)], true
}

func (m *namco108) CPUWrite(addr uint16, v uint8) bool {
	if addr < 0x8000 {
		return false
	}
	if addr%2 == 0 {
		m.targetReg = v & 0x07
	} else {
		m.regs[m.targetReg] = v
	}
	return true
}

func (m *namco108) chrBank1K(region int) int {
	r := [8]uint8{m.regs[0] & 0x3E, m.regs[0] | 0x01, m.regs[1] & 0x3E, m.regs[1] | 0x01,
		m.regs[2] & 0x3F, m.regs[3] & 0x3F, m.regs[4] & 0x3F, m.regs[5] & 0x3F}
	banks := m.chrBanks * 8
	if banks == 0 {
		banks = 1
	}
	return int(r[region]) % banks
}

func (m *namco108) PPURead(addr uint16) (uint8, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	region := int(addr / 0x400)
	bank := m.chrBank1K(region)
	off := bank*0x400 + int(addr)%0x400
	return m.chrRead(off), true
}

func (m *namco108) PPUWrite(addr uint16, v uint8) bool {
	if addr > 0x1FFF || !m.chrIsRAM {
		return false
	}
	region := int(addr / 0x400)
	bank := m.chrBank1K(region)
	off := bank*0x400 + int(addr)%0x400
	return m.chrWrite(off, v)
}
