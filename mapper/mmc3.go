package mapper

import "github.com/u6170252806-cmd/nes-emulator/ines"

// mmc3 is mapper 4. Eight internal bank registers are written through a
// bank-select ($8000, even) / bank-data ($8000, odd) pair; two mode bits
// (PRG bank mode, CHR inversion) flip which physical slot each register
// lands in. A scanline counter clocked by scanline hints drives an IRQ line.
type mmc3 struct {
	base

	targetReg   uint8
	regs        [8]uint8
	prgBankMode bool // false: R6@$8000,R7@$A000; true: swapped with fixed $8000
	chrInvert   bool

	ntMirror ines.Mirror

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnable  bool
	irqActive  bool
}

func newMMC3(rom *ines.ROM) *mmc3 {
	m := &mmc3{base: newBase(rom), ntMirror: rom.Mirror}
	m.Reset()
	return m
}

func (m *mmc3) Reset() {
	m.targetReg = 0
	m.regs = [8]uint8{}
	m.prgBankMode = false
	m.chrInvert = false
	m.irqLatch = 0
	m.irqCounter = 0
	m.irqReload = false
	m.irqEnable = false
	m.irqActive = false
}

func (m *mmc3) prgBank8K(slot int) int {
	// slot: 0=$8000 1=$A000 2=$C000 3=$E000, each 8KiB
	last := (m.prgBanks*2 - 1)
	secondLast := last - 1
	r6 := int(m.regs[6]) % (m.prgBanks * 2)
	r7 := int(m.regs[7]) % (m.prgBanks * 2)
	if !m.prgBankMode {
		switch slot {
		case 0:
			return r6
		case 1:
			return r7
		case 2:
			return secondLast
		default:
			return last
		}
	}
	switch slot {
	case 0:
		return secondLast
	case 1:
		return r7
	case 2:
		return r6
	default:
		return last
	}
}

func (m *mmc3) CPURead(addr uint16) (uint8, bool) {
	if v, ok := m.prgRAMRead(addr); ok {
		return v, true
	}
	if addr < 0x8000 {
		return 0, false
	}
	slot := int((addr - 0x8000) / 0x2000)
	bank := m.prgBank8K(slot)
	off := bank*0x2000 + int(addr)%0x2000
	return m.prg[off%len(m.prg)], true
}

func (m *mmc3) CPUWrite(addr uint16, v uint8) bool {
	if m.prgRAMWrite(addr, v) {
		return true
	}
	if addr < 0x8000 {
		return false
	}

	even := addr%2 == 0
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		if even {
			m.targetReg = v & 0x07
			m.prgBankMode = v&0x40 != 0
			m.chrInvert = v&0x80 != 0
		} else {
			m.regs[m.targetReg] = v
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		if even {
			if v&0x01 != 0 {
				m.ntMirror = ines.MirrorHorizontal
			} else {
				m.ntMirror = ines.MirrorVertical
			}
		}
		// odd: PRG-RAM protect, not modeled (spec.md leaves it unmodeled)
	case addr >= 0xC000 && addr <= 0xDFFF:
		if even {
			m.irqLatch = v
		} else {
			m.irqCounter = 0
			m.irqReload = true
		}
	case addr >= 0xE000:
		if even {
			m.irqEnable = false
			m.irqActive = false
		} else {
			m.irqEnable = true
		}
	}
	return true
}

func (m *mmc3) chrBank1K(region int) int {
	// region 0..7 selects one of the eight 1KiB windows $0000-$1FFF
	r := [8]uint8{}
	if !m.chrInvert {
		r = [8]uint8{m.regs[0] & 0xFE, m.regs[0] | 0x01, m.regs[1] & 0xFE, m.regs[1] | 0x01,
			m.regs[2], m.regs[3], m.regs[4], m.regs[5]}
	} else {
		r = [8]uint8{m.regs[2], m.regs[3], m.regs[4], m.regs[5],
			m.regs[0] & 0xFE, m.regs[0] | 0x01, m.regs[1] & 0xFE, m.regs[1] | 0x01}
	}
	banks := m.chrBanks * 8
	if banks == 0 {
		banks = 1
	}
	return int(r[region]) % banks
}

func (m *mmc3) PPURead(addr uint16) (uint8, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	region := int(addr / 0x400)
	bank := m.chrBank1K(region)
	off := bank*0x400 + int(addr)%0x400
	return m.chrRead(off), true
}

func (m *mmc3) PPUWrite(addr uint16, v uint8) bool {
	if addr > 0x1FFF || !m.chrIsRAM {
		return false
	}
	region := int(addr / 0x400)
	bank := m.chrBank1K(region)
	off := bank*0x400 + int(addr)%0x400
	return m.chrWrite(off, v)
}

func (m *mmc3) Mirror() ines.Mirror { return m.ntMirror }

func (m *mmc3) IRQLine() bool { return m.irqActive }
func (m *mmc3) IRQAck()       { m.irqActive = false }

// ScanlineHint implements the A12-rising-edge counter abstraction: the PPU
// calls this once per visible scanline when rendering is enabled.
func (m *mmc3) ScanlineHint() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnable {
		m.irqActive = true
	}
}
