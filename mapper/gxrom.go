package mapper

import "github.com/u6170252806-cmd/nes-emulator/ines"

// gxrom is mapper 66: a single write to $8000-$FFFF selects both the 32 KiB
// PRG bank (bits 4-5) and the 8 KiB CHR bank (bits 0-1).
type gxrom struct {
	base
	prgBank uint8
	chrBank uint8
}

func newGxROM(rom *ines.ROM) *gxrom {
	return &gxrom{base: newBase(rom)}
}

func (m *gxrom) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	off := int(m.prgBank)*0x8000 + int(addr-0x8000)
	return m.prg[off%len(m.prg)], true
}

func (m *gxrom) CPUWrite(addr uint16, v uint8) bool {
	if addr < 0x8000 {
		return false
	}
	// 7  bit  0
	// ---- ----
	// ..PP ..CC (observed boards vary; bits 4-5 PRG, bits 0-1 CHR)
	m.prgBank = (v >> 4) & 0x03
	m.chrBank = v & 0x03
	return true
}

func (m *gxrom) PPURead(addr uint16) (uint8, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return m.chrRead(int(m.chrBank)*0x2000 + int(addr)), true
}

func (m *gxrom) PPUWrite(addr uint16, v uint8) bool {
	if addr > 0x1FFF {
		return false
	}
	return m.chrWrite(int(m.chrBank)*0x2000+int(addr), v)
}

func (m *gxrom) Reset() {
	m.prgBank = 0
	m.chrBank = 0
}
