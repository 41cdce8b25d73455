package bus

import (
	"testing"

	"github.com/u6170252806-cmd/nes-emulator/apu"
	"github.com/u6170252806-cmd/nes-emulator/cpu"
	"github.com/u6170252806-cmd/nes-emulator/ines"
	"github.com/u6170252806-cmd/nes-emulator/ppu"
)

// fakeCart is a minimal Cartridge with flat PRG/CHR, enough to exercise
// bus dispatch and DMA without pulling in a real mapper.
type fakeCart struct {
	prg     [0x8000]uint8
	chr     [0x2000]uint8
	irqLine bool
}

func (f *fakeCart) CPURead(addr uint16) (uint8, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	return f.prg[addr-0x8000], true
}
func (f *fakeCart) CPUWrite(addr uint16, v uint8) bool { return false }
func (f *fakeCart) PPURead(addr uint16) (uint8, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return f.chr[addr], true
}
func (f *fakeCart) PPUWrite(addr uint16, v uint8) bool {
	if addr > 0x1FFF {
		return false
	}
	f.chr[addr] = v
	return true
}
func (f *fakeCart) Mirror() ines.Mirror { return ines.MirrorHorizontal }
func (f *fakeCart) ScanlineHint()       {}
func (f *fakeCart) IRQLine() bool       { return f.irqLine }
func (f *fakeCart) IRQAck()             { f.irqLine = false }
func (f *fakeCart) Reset()              {}

func newTestSystem() (*Bus, *fakeCart) {
	cart := &fakeCart{}
	cart.prg[0x7FFC] = 0x00 // reset vector low ($FFFC)
	cart.prg[0x7FFD] = 0x80 // reset vector high -> PC = $8000

	c := &cpu.CPU{}
	p := ppu.New(cart)
	a := apu.New()
	b := New(c, p, a, cart)
	return b, cart
}

func TestRAMIsMirroredEvery2KB(t *testing.T) {
	b, _ := newTestSystem()
	b.Write(0x0000, 0x42)

	if got := b.Read(0x0800); got != 0x42 {
		t.Errorf("Read($0800) = %02X, want 42 (mirrors $0000)", got)
	}
	if got := b.Read(0x1800); got != 0x42 {
		t.Errorf("Read($1800) = %02X, want 42 (mirrors $0000)", got)
	}
}

func TestPPURegistersMirroredEvery8Bytes(t *testing.T) {
	b, _ := newTestSystem()
	b.Write(0x200B, 0x05) // mirrors $2003 OAMADDR
	b.Write(0x200C, 0x99) // mirrors $2004 OAMDATA

	b.PPU.CPUWrite(3, 0x05) // OAMADDR direct
	if got := b.PPU.CPURead(4); got != 0x99 {
		t.Errorf("oam[5] = %02X, want 99 written through the mirrored address", got)
	}
}

func TestControllerStrobeAndShift(t *testing.T) {
	b, _ := newTestSystem()
	b.SetController(0, 0b10100001)

	b.Write(0x4016, 1) // strobe: latch
	b.Write(0x4016, 0)

	var bits [8]uint8
	for i := range bits {
		bits[i] = b.Read(0x4016) & 0x01
	}
	want := [8]uint8{1, 0, 1, 0, 0, 0, 0, 1}
	if bits != want {
		t.Errorf("shifted bits = %v, want %v", bits, want)
	}
}

func TestOAMDMATransfersFullPage(t *testing.T) {
	b, _ := newTestSystem()
	for i := 0; i < 256; i++ {
		b.Write(uint16(i), uint8(i)) // fill zero page, DMA source page $00
	}
	b.Write(0x4014, 0x00)

	// 513-514 cycles worth of PPU dots: 1 CPU cycle = 3 dots, allow a
	// generous margin.
	for i := 0; i < 3*520; i++ {
		b.Clock()
	}

	for i := 0; i < 256; i++ {
		b.PPU.CPUWrite(3, uint8(i)) // OAMADDR
		if got := b.PPU.CPURead(4); got != uint8(i) {
			t.Fatalf("oam[%d] = %d, want %d", i, got, i)
		}
	}
}

func TestReset(t *testing.T) {
	b, _ := newTestSystem()
	b.Reset()

	if b.CPU.PC != 0x8000 {
		t.Errorf("PC = %04X, want 8000 after reset off cartridge vector", b.CPU.PC)
	}
}
