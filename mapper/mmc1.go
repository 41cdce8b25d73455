package mapper

import "github.com/u6170252806-cmd/nes-emulator/ines"

// mmc1 is mapper 1. Configuration is loaded through a 5-bit serial shift
// register at $8000-$FFFF: each write shifts its low bit into the register;
// on the 5th write the accumulated value commits to one of four internal
// registers selected by addr>>13. Writing with bit 7 set resets the
// shifter and forces PRG mode 3, matching the power-on reset behaviour real
// carts rely on so the reset vector stays reachable.
type mmc1 struct {
	base

	shift    uint8
	shiftCnt uint8

	control uint8 // mirroring:2, prgMode:2, chrMode:1
	chr0    uint8
	chr1    uint8
	prgReg  uint8 // bit 4: PRG-RAM disable

	disableWRAM bool
}

func newMMC1(rom *ines.ROM) *mmc1 {
	m := &mmc1{base: newBase(rom)}
	m.Reset()
	return m
}

func (m *mmc1) Reset() {
	m.shift = 0
	m.shiftCnt = 0
	m.control = 0x0C // PRG mode 3 (switch first, fix last), CHR mode 0
	m.chr0, m.chr1, m.prgReg = 0, 0, 0
	m.disableWRAM = false
}

func (m *mmc1) CPURead(addr uint16) (uint8, bool) {
	if addr >= 0x6000 && addr <= 0x7FFF {
		if len(m.prgRAM) == 0 {
			return 0, true
		}
		return m.prgRAM[int(addr-0x6000)%len(m.prgRAM)], true
	}
	if addr < 0x8000 {
		return 0, false
	}

	prgMode := (m.control >> 2) & 0x03
	var off int
	switch prgMode {
	case 0, 1: // 32 KiB mode
		bank := int(m.prgReg>>1) & 0x0F
		off = bank*0x8000 + int(addr-0x8000)
	case 2: // fix first 16KiB at $8000, switch $C000
		if addr <= 0xBFFF {
			off = int(addr - 0x8000)
		} else {
			off = int(m.prgReg&0x0F)*0x4000 + int(addr-0xC000)
		}
	default: // 3: switch first 16KiB, fix last at $C000
		if addr <= 0xBFFF {
			off = int(m.prgReg&0x0F)*0x4000 + int(addr-0x8000)
		} else {
			off = (m.prgBanks-1)*0x4000 + int(addr-0xC000)
		}
	}
	return m.prg[off%len(m.prg)], true
}

func (m *mmc1) CPUWrite(addr uint16, v uint8) bool {
	if addr >= 0x6000 && addr <= 0x7FFF {
		if m.disableWRAM || len(m.prgRAM) == 0 {
			return true
		}
		m.prgRAM[int(addr-0x6000)%len(m.prgRAM)] = v
		return true
	}
	if addr < 0x8000 {
		return false
	}

	if v&0x80 != 0 {
		m.shift = 0
		m.shiftCnt = 0
		m.control |= 0x0C
		return true
	}

	m.shift >>= 1
	m.shift |= (v & 0x01) << 4
	m.shiftCnt++

	if m.shiftCnt != 5 {
		return true
	}

	target := (addr >> 13) & 0x03
	switch target {
	case 0: // $8000-$9FFF: control
		m.control = m.shift & 0x1F
	case 1: // $A000-$BFFF: CHR bank 0
		m.chr0 = m.shift & 0x1F
	case 2: // $C000-$DFFF: CHR bank 1
		m.chr1 = m.shift & 0x1F
	case 3: // $E000-$FFFF: PRG bank
		m.prgReg = m.shift & 0x1F
		m.disableWRAM = m.shift&0x10 != 0
	}

	m.shift = 0
	m.shiftCnt = 0
	return true
}

func (m *mmc1) PPURead(addr uint16) (uint8, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	chrMode := (m.control >> 4) & 0x01
	var off int
	if chrMode == 0 {
		bank := int(m.chr0>>1) & 0x1F
		off = bank*0x2000 + int(addr)
	} else if addr <= 0x0FFF {
		off = int(m.chr0)*0x1000 + int(addr)
	} else {
		off = int(m.chr1)*0x1000 + int(addr-0x1000)
	}
	return m.chrRead(off), true
}

func (m *mmc1) PPUWrite(addr uint16, v uint8) bool {
	if addr > 0x1FFF || !m.chrIsRAM {
		return false
	}
	chrMode := (m.control >> 4) & 0x01
	var off int
	if chrMode == 0 {
		bank := int(m.chr0>>1) & 0x1F
		off = bank*0x2000 + int(addr)
	} else if addr <= 0x0FFF {
		off = int(m.chr0)*0x1000 + int(addr)
	} else {
		off = int(m.chr1)*0x1000 + int(addr-0x1000)
	}
	return m.chrWrite(off, v)
}

func (m *mmc1) Mirror() ines.Mirror {
	switch m.control & 0x03 {
	case 0:
		return ines.MirrorSingleLow
	case 1:
		return ines.MirrorSingleHigh
	case 2:
		return ines.MirrorVertical
	default:
		return ines.MirrorHorizontal
	}
}
