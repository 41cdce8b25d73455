package mapper

import (
	"testing"

	"github.com/u6170252806-cmd/nes-emulator/ines"
)

func romWithPRG(banks int, fill func(prg []byte)) *ines.ROM {
	prg := make([]byte, banks*0x4000)
	if fill != nil {
		fill(prg)
	}
	return &ines.ROM{
		PRG:      prg,
		CHR:      make([]byte, 0x2000),
		PRGBanks: banks,
		CHRBanks: 1,
		Mirror:   ines.MirrorHorizontal,
	}
}

func TestUxROMBankSwitch(t *testing.T) {
	rom := romWithPRG(4, func(prg []byte) {
		// $8000 itself stays all-ones so the bus-conflict AND never
		// masks the value being written; the bank id lives one byte
		// over so it survives untouched.
		for bank := 0; bank < 4; bank++ {
			prg[bank*0x4000] = 0xFF
			prg[bank*0x4000+1] = uint8(bank)
		}
	})
	m := newUxROM(rom)

	m.CPUWrite(0x8000, 0x02)
	got, ok := m.CPURead(0x8001)
	if !ok || got != 2 {
		t.Errorf("CPURead($8001) = %d, ok=%v; want 2, true after selecting bank 2", got, ok)
	}

	last, _ := m.CPURead(0xC001)
	if last != 3 {
		t.Errorf("$C000 should stay fixed to the last bank, got %d", last)
	}
}

func TestUxROMBusConflictMasksWrite(t *testing.T) {
	rom := romWithPRG(2, func(prg []byte) {
		prg[0] = 0x02 // bank 0, address $8000 reads back 0x02 before any switch
	})
	m := newUxROM(rom)

	// Writing 0x03 while the ROM byte at $8000 is 0x02 should conflict to
	// 0x03 & 0x02 = 0x02, not 0x03.
	m.CPUWrite(0x8000, 0x03)
	if m.bank != 0x02 {
		t.Errorf("bank = %d, want 2 after bus-conflict masking", m.bank)
	}
}

func TestCNROMCHRBankSelect(t *testing.T) {
	rom := romWithPRG(1, func(prg []byte) { prg[0] = 0xFF })
	rom.CHR = make([]byte, 0x4000) // 2 banks of CHR
	rom.CHRBanks = 2
	rom.CHR[0x2005] = 0x77 // byte 5 of bank 1

	m := newCNROM(rom)
	m.CPUWrite(0x8000, 0x01)

	got, ok := m.PPURead(0x0005)
	if !ok || got != 0x77 {
		t.Errorf("PPURead($0005) = %d, ok=%v; want 0x77 from CHR bank 1", got, ok)
	}
}

func TestAxROMOneScreenMirroring(t *testing.T) {
	rom := romWithPRG(2, func(prg []byte) { prg[0] = 0xFF })
	m := newAxROM(rom)

	m.CPUWrite(0x8000, 0x10) // set the one-screen-high bit
	if m.Mirror() != ines.MirrorSingleHigh {
		t.Errorf("Mirror() = %v, want MirrorSingleHigh", m.Mirror())
	}

	m.CPUWrite(0x8000, 0x00)
	if m.Mirror() != ines.MirrorSingleLow {
		t.Errorf("Mirror() = %v, want MirrorSingleLow", m.Mirror())
	}
}

func TestNROMMirrorsSingleBankAcrossWindow(t *testing.T) {
	rom := romWithPRG(1, func(prg []byte) {
		prg[0] = 0xAA
	})
	m := newNROM(rom)

	lo, _ := m.CPURead(0x8000)
	hi, _ := m.CPURead(0xC000)
	if lo != hi {
		t.Errorf("single 16KiB bank should mirror: $8000=%02X $C000=%02X", lo, hi)
	}
}

func TestNewFallsBackToNROMForUnknownMapper(t *testing.T) {
	rom := romWithPRG(1, nil)
	rom.MapperID = 0xFFFF

	m, err := New(rom)
	if err == nil {
		t.Error("expected an error for an unsupported mapper ID")
	}
	if _, ok := m.(*nrom); !ok {
		t.Errorf("fallback mapper = %T, want *nrom", m)
	}
}
