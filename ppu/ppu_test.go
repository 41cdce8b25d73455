package ppu

import (
	"testing"

	"github.com/u6170252806-cmd/nes-emulator/ines"
)

// fakeCart is a minimal Cartridge backed by flat CHR RAM and a fixed
// mirroring mode, enough to drive the PPU's register and pipeline logic
// without a real mapper.
type fakeCart struct {
	chr    [0x2000]uint8
	mirror ines.Mirror
	hints  int
}

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
func (f *fakeCart) Mirror() ines.Mirror { return f.mirror }
func (f *fakeCart) ScanlineHint()       { f.hints++ }

func TestPPUCTRLSetsTemporaryNametableBits(t *testing.T) {
	p := New(&fakeCart{mirror: ines.MirrorHorizontal})
	p.CPUWrite(0, 0x03) // nametable X and Y both set

	if !p.tramAddr.nametableX() || !p.tramAddr.nametableY() {
		t.Error("PPUCTRL write should set both nametable bits in t")
	}
}

func TestPPUSCROLLTwoWriteLatch(t *testing.T) {
	p := New(&fakeCart{mirror: ines.MirrorHorizontal})
	p.CPUWrite(5, 0x7D) // first write: coarse X = 15, fine X = 5
	if p.addressLatch != true {
		t.Fatal("address latch should flip to true after first PPUSCROLL write")
	}
	if p.fineX != 5 {
		t.Errorf("fineX = %d, want 5", p.fineX)
	}
	if p.tramAddr.coarseX() != 15 {
		t.Errorf("coarseX = %d, want 15", p.tramAddr.coarseX())
	}

	p.CPUWrite(5, 0x42) // second write: fine Y and coarse Y
	if p.addressLatch != false {
		t.Error("address latch should flip back to false after second write")
	}
}

func TestPPUADDRLoadsVRAMAddrOnSecondWrite(t *testing.T) {
	p := New(&fakeCart{mirror: ines.MirrorHorizontal})
	p.CPUWrite(6, 0x23)
	p.CPUWrite(6, 0x45)

	if p.vramAddr.reg() != 0x2345 {
		t.Errorf("vramAddr = %04X, want 2345", p.vramAddr.reg())
	}
}

func TestPPUDATAReadIsBuffered(t *testing.T) {
	cart := &fakeCart{mirror: ines.MirrorHorizontal}
	p := New(cart)
	cart.chr[0x0010] = 0xAB

	p.CPUWrite(6, 0x00)
	p.CPUWrite(6, 0x10)

	first := p.CPURead(7)
	if first == 0xAB {
		t.Error("first PPUDATA read should return the stale buffer, not the fresh byte")
	}
	second := p.CPURead(7)
	if second != 0xAB {
		t.Errorf("second PPUDATA read = %02X, want AB once the buffer catches up", second)
	}
}

func TestPaletteReadIsImmediateNotBuffered(t *testing.T) {
	p := New(&fakeCart{mirror: ines.MirrorHorizontal})
	p.CPUWrite(6, 0x3F)
	p.CPUWrite(6, 0x05)
	p.CPUWrite(7, 0x17)

	p.CPUWrite(6, 0x3F)
	p.CPUWrite(6, 0x05)
	got := p.CPURead(7)
	if got&0x3F != 0x17 {
		t.Errorf("palette read = %02X, want 17 immediately (no buffering)", got&0x3F)
	}
}

func TestPaletteMirroring(t *testing.T) {
	p := New(&fakeCart{mirror: ines.MirrorHorizontal})
	p.paletteWrite(0x3F00, 0x10)
	if p.paletteRead(0x3F10) != 0x10 {
		t.Error("$3F10 should mirror $3F00")
	}
}

func TestStatusReadClearsVBlankAndLatch(t *testing.T) {
	p := New(&fakeCart{mirror: ines.MirrorHorizontal})
	p.status |= statusVBlank
	p.addressLatch = true

	v := p.CPURead(2)
	if v&statusVBlank == 0 {
		t.Error("status read should report vblank was set")
	}
	if p.status&statusVBlank != 0 {
		t.Error("reading PPUSTATUS should clear vblank")
	}
	if p.addressLatch {
		t.Error("reading PPUSTATUS should reset the address latch")
	}
}

func TestNametableMirroringHorizontal(t *testing.T) {
	p := New(&fakeCart{mirror: ines.MirrorHorizontal})
	if got := p.mapNametable(0x0000); got != 0x0000 {
		t.Errorf("top-left maps to %04X, want 0000", got)
	}
	if got := p.mapNametable(0x0400); got != 0x0000 {
		t.Errorf("second nametable maps to %04X, want 0000 (shares with first)", got)
	}
	if got := p.mapNametable(0x0800); got != 0x0400 {
		t.Errorf("third nametable maps to %04X, want 0400", got)
	}
}

func TestOAMDMAWritesFullPage(t *testing.T) {
	p := New(&fakeCart{mirror: ines.MirrorHorizontal})
	var page [256]uint8
	for i := range page {
		page[i] = uint8(i)
	}
	p.WriteOAMDMA(page)

	for i := 0; i < 256; i++ {
		if p.oam[i] != uint8(i) {
			t.Fatalf("oam[%d] = %d, want %d", i, p.oam[i], i)
		}
	}
}

func TestFrameTimingWraps(t *testing.T) {
	p := New(&fakeCart{mirror: ines.MirrorHorizontal})
	startFrame := p.frame
	for i := 0; i < cyclesPerScanline*262; i++ {
		p.Clock()
	}
	if p.frame != startFrame+1 {
		t.Errorf("frame counter = %d, want %d after one full sweep", p.frame, startFrame+1)
	}
}
