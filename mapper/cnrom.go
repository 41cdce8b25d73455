package mapper

import "github.com/u6170252806-cmd/nes-emulator/ines"

// cnrom is mapper 3: fixed PRG, with an 8 KiB CHR ROM bank selected by any
// write to $8000-$FFFF (masked to the cartridge's actual bank count).
type cnrom struct {
	base
	chrBank uint8
}

func newCNROM(rom *ines.ROM) *cnrom {
	return &cnrom{base: newBase(rom)}
}

func (m *cnrom) CPURead(addr uint16) (uint8, bool) {
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

func (m *cnrom) CPUWrite(addr uint16, v uint8) bool {
	if m.prgRAMWrite(addr, v) {
		return true
	}
	if addr < 0x8000 {
		return false
	}
	romByte, _ := m.CPURead(addr)
	// 7  bit  0
	// ---- ----
	// cccc ccCC
	// ++++-++++- Select 8 KB CHR ROM bank for PPU $0000-$1FFF
	banks := m.chrBanks
	if banks == 0 {
		banks = 1
	}
	m.chrBank = busConflict(v, romByte) % uint8(banks)
	return true
}

func (m *cnrom) PPURead(addr uint16) (uint8, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return m.chrRead(int(m.chrBank)*0x2000 + int(addr)), true
}

func (m *cnrom) PPUWrite(addr uint16, v uint8) bool {
	if addr > 0x1FFF {
		return false
	}
	return m.chrWrite(int(m.chrBank)*0x2000+int(addr), v)
}

func (m *cnrom) Reset() { m.chrBank = 0 }
