package mapper

import "github.com/u6170252806-cmd/nes-emulator/ines"

// base holds the storage and bookkeeping common to every variant: the raw
// PRG/CHR arrays, an optional PRG-RAM, and the nominal mirroring mode. Each
// variant embeds base and adds its own bank-select state.
type base struct {
	prg      []byte
	chr      []byte
	chrIsRAM bool
	prgRAM   []byte
	prgBanks int // 16 KiB units
	chrBanks int // 8 KiB units
	mirror   ines.Mirror
}

func newBase(rom *ines.ROM) base {
	ramLen := 8192
	if rom.PRGRAMLen > 0 {
		ramLen = rom.PRGRAMLen
	}
	return base{
		prg:      rom.PRG,
		chr:      rom.CHR,
		chrIsRAM: rom.HasCHRRAM(),
		prgRAM:   make([]byte, ramLen),
		prgBanks: rom.PRGBanks,
		chrBanks: rom.CHRBanks,
		mirror:   rom.Mirror,
	}
}

func (b *base) Mirror() ines.Mirror { return b.mirror }
func (b *base) IRQLine() bool       { return false }
func (b *base) IRQAck()             {}
func (b *base) ScanlineHint()       {}

// prgRAMRead/prgRAMWrite implement the $6000-$7FFF window shared by most
// mapper variants.
func (b *base) prgRAMRead(addr uint16) (uint8, bool) {
	if addr < 0x6000 || addr > 0x7FFF || len(b.prgRAM) == 0 {
		return 0, false
	}
	return b.prgRAM[int(addr-0x6000)%len(b.prgRAM)], true
}

func (b *base) prgRAMWrite(addr uint16, v uint8) bool {
	if addr < 0x6000 || addr > 0x7FFF || len(b.prgRAM) == 0 {
		return false
	}
	b.prgRAM[int(addr-0x6000)%len(b.prgRAM)] = v
	return true
}

// chrRead/chrWrite index an offset within the CHR array, wrapping to
// CHR-RAM semantics (writable) when the cartridge declared no CHR ROM.
func (b *base) chrRead(off int) uint8 {
	if len(b.chr) == 0 {
		return 0
	}
	return b.chr[off%len(b.chr)]
}

func (b *base) chrWrite(off int, v uint8) bool {
	if !b.chrIsRAM || len(b.chr) == 0 {
		return false
	}
	b.chr[off%len(b.chr)] = v
	return true
}

// busConflict ANDs a bank-select write with the ROM byte currently driving
// the same address, reproducing the address-bus conflict real UxROM/CNROM/
// AxROM boards exhibit when the cartridge and the CPU drive $8000-$FFFF at
// the same time.
func busConflict(v, romByte uint8) uint8 { return v & romByte }
