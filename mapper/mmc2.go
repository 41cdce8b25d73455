package mapper

import "github.com/u6170252806-cmd/nes-emulator/ines"

// mmc2 is mapper 9 (PxROM, used by Punch-Out!!): an 8 KiB switchable PRG
// bank at $8000, with the remaining three 8 KiB PRG banks fixed to the
// cartridge's last three. CHR is two 4 KiB windows, each latched between an
// "FD" and "FE" bank index by which tile the PPU last fetched: a read of
// tile $FD or $FE at $0FD8/$0FE8 flips the bank-0 latch; $1FD8-$1FDF or
// $1FE8-$1FEF flips the bank-1 latch. Grounded on the CHR-latch mechanism in
// original_source/src/mappers/mapper010.cpp (MMC4), applied to MMC2's PRG
// layout per original_source/include/mappers/mapper009.hpp.
type mmc2 struct {
	base

	prgBank uint8

	chr0FD, chr0FE uint8
	chr1FD, chr1FE uint8
	latch0, latch1 bool // false selects FD, true selects FE

	ntMirror ines.Mirror
}

func newMMC2(rom *ines.ROM) *mmc2 {
	return &mmc2{base: newBase(rom), ntMirror: rom.Mirror}
}

func (m *mmc2) Reset() {
	m.prgBank = 0
	m.latch0, m.latch1 = false, false
}

func (m *mmc2) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	total := m.prgBanks * 2 // 8KiB bank count
	var bank int
	switch {
	case addr <= 0x9FFF:
		bank = int(m.prgBank) % total
	case addr <= 0xBFFF:
		bank = total - 3
	case addr <= 0xDFFF:
		bank = total - 2
	default:
		bank = total - 1
	}
	off := bank*0x2000 + int(addr)%0x2000
	return m.prg[off%len(m.prg)], true
}

func (m *mmc2) CPUWrite(addr uint16, v uint8) bool {
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

func (m *mmc2) PPURead(addr uint16) (uint8, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	v := m.readCHR(addr)
	m.updateLatch(addr)
	return v, true
}

func (m *mmc2) readCHR(addr uint16) uint8 {
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

func (m *mmc2) updateLatch(addr uint16) {
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

func (m *mmc2) PPUWrite(addr uint16, v uint8) bool {
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

func (m *mmc2) Mirror() ines.Mirror { return m.ntMirror }
