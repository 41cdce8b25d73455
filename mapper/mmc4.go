package mapper

import "github.com/u6170252806-cmd/nes-emulator/ines"

// mmc4 is mapper 10 (FxROM): a 16 KiB switchable PRG bank at $8000-$BFFF
// with $C000-$FFFF fixed to the last bank. CHR uses the same two-latch
// mechanism as MMC2. Grounded on original_source/src/mappers/mapper010.cpp.
type mmc4 struct {
	base

	prgBank uint8

	chr0FD, chr0FE uint8
	chr1FD, chr1FE uint8
	latch0, latch1 bool

	ntMirror ines.Mirror
}

func newMMC4(rom *ines.ROM) *mmc4 {
	return &mmc4{base: newBase(rom), ntMirror: rom.Mirror}
}

func (m *mmc4) Reset() {
	m.prgBank = 0
	m.latch0, m.latch1 = false, false
}

func (m *mmc4) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	if addr <= 0xBFFF {
		off := int(m.prgBank%uint8(m.prgBanks))*0x4000 + int(addr-0x8000)
		return m.prg[off%len(m.prg)], true
	}
	off := (m.prgBanks-1)*0x4000 + int(addr-0xC000)
	return m.prg[off%len(m.prg)], true
}

func (m *mmc4) CPUWrite(addr uint16, v uint8) bool {
	switch {
	case addr >= 0xA000 && addr <= 0xAFFF:
		m.prgBank = v & 0x0F
	case addr >= 0xB000 && addr <= 0xBFFF:
		m.chr0FD = v & 0x1F
	case addr >= 0xC000 && addr <= 0xCFFF:
		m.chr0FE = v & 0x1F
	case addr >= 0xD000 && addr <= 0xDFFF:
		m.chr1FD = v & 0x1F
	case addr >= 0xE000 && addr <= 0xEFFF:
		m.chr1FE = v & 0x1F
	case addr >= 0xF000:
		if v&0x01 != 0 {
			m.ntMirror = ines.MirrorHorizontal
		} else {
			m.ntMirror = ines.MirrorVertical
		}
	default:
		return false
	}
	return true
}

func (m *mmc4) PPURead(addr uint16) (uint8, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	v := m.readCHR(addr)
	m.updateLatch(addr)
	return v, true
}

func (m *mmc4) readCHR(addr uint16) uint8 {
	if addr <= 0x0FFF {
		bank := m.chr0FE
		if !m.latch0 {
			bank = m.chr0FD
		}
		return m.chrRead(int(bank)*0x1000 + int(addr))
	}
	bank := m.chr1FE
	if !m.latch1 {
		bank = m.chr1FD
	}
	return m.chrRead(int(bank)*0x1000 + int(addr-0x1000))
}

func (m *mmc4) updateLatch(addr uint16) {
	switch {
	case addr == 0x0FD8:
		m.latch0 = false
	case addr == 0x0FE8:
		m.latch0 = true
	case addr >= 0x1FD8 && addr <= 0x1FDF:
		m.latch1 = false
	case addr >= 0x1FE8 && addr <= 0x1FEF:
		m.latch1 = true
	}
}

func (m *mmc4) PPUWrite(addr uint16, v uint8) bool {
	if addr > 0x1FFF || !m.chrIsRAM {
		return false
	}
	if addr <= 0x0FFF {
		bank := m.chr0FE
		if !m.latch0 {
			bank = m.chr0FD
		}
		return m.chrWrite(int(bank)*0x1000+int(addr), v)
	}
	bank := m.chr1FE
	if !m.latch1 {
		bank = m.chr1FD
	}
	return m.chrWrite(int(bank)*0x1000+int(addr-0x1000), v)
}

func (m *mmc4) Mirror() ines.Mirror { return m.ntMirror }
