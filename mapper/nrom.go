package mapper

import "github.com/u6170252806-cmd/nes-emulator/ines"

// nrom is mapper 0: no bank switching. 16 KiB PRG is mirrored across the
// $8000-$FFFF window; 32 KiB PRG is mapped directly. CHR is a fixed 8 KiB
// window, ROM or RAM.
type nrom struct {
	base
}

func newNROM(rom *ines.ROM) *nrom {
	return &nrom{base: newBase(rom)}
}

func (m *nrom) CPURead(addr uint16) (uint8, bool) {
	if v, ok := m.prgRAMRead(addr); ok {
		return v, true
	}
	if addr < 0x8000 {
		return 0, false
	}
	off := int(addr - 0x8000)
	if m.prgBanks <= 1 {
		off %= 0x4000
	} else {
		off %= 0x8000
	}
	return m.prg[off], true
}

func (m *nrom) CPUWrite(addr uint16, v uint8) bool {
	return m.prgRAMWrite(addr, v)
}

func (m *nrom) PPURead(addr uint16) (uint8, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return m.chrRead(int(addr)), true
}

func (m *nrom) PPUWrite(addr uint16, v uint8) bool {
	if addr > 0x1FFF {
		return false
	}
	return m.chrWrite(int(addr), v)
}

func (m *nrom) Reset() {}
