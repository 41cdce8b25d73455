// Package ppu implements the Ricoh 2C02 Picture Processing Unit: the
// background/sprite fetch pipeline, scroll bookkeeping, and pixel
// composition that turn nametable/pattern/palette memory into a 256x240
// frame, dot by dot.
package ppu

import (
	"github.com/u6170252806-cmd/nes-emulator/ines"
	"github.com/u6170252806-cmd/nes-emulator/log"
)

const (
	ScreenWidth  = 256
	ScreenHeight = 240

	cyclesPerScanline = 341
	scanlinesPerFrame = 262
)

// control ($2000) bits.
const (
	ctrlNametableX = 1 << iota
	ctrlNametableY
	ctrlIncrement
	ctrlSpriteTable
	ctrlBackgroundTable
	ctrlSpriteSize
	ctrlMasterSlave
	ctrlNMIEnable
)

// mask ($2001) bits.
const (
	maskGrayscale = 1 << iota
	maskShowBgLeft
	maskShowSpritesLeft
	maskShowBg
	maskShowSprites
	maskEmphasizeRed
	maskEmphasizeGreen
	maskEmphasizeBlue
)

// status ($2002) bits.
const (
	statusSpriteOverflow = 1 << 5
	statusSprite0Hit     = 1 << 6
	statusVBlank         = 1 << 7
)

// Cartridge is the narrow view of the loaded cartridge the PPU needs:
// pattern-table access and nametable mirroring, plus the mapper scanline
// hook MMC3-style mappers use to derive their IRQ counter.
type Cartridge interface {
	PPURead(addr uint16) (data uint8, ok bool)
	PPUWrite(addr uint16, v uint8) bool
	Mirror() ines.Mirror
	ScanlineHint()
}

type objectAttr struct {
	y, id, attribute, x uint8
}

// PPU holds all 2C02 register and rendering state. Clock is called once
// per PPU dot; the host is expected to call it 3 times per CPU cycle.
type PPU struct {
	cart Cartridge

	control, mask, status uint8
	oamAddr                uint8
	dataBuffer             uint8

	vramAddr, tramAddr loopy
	fineX              uint8
	addressLatch       bool

	scanline int
	cycle    int
	frame    uint64

	// FrameReady is set for exactly one Clock() call per frame, at the
	// wrap from scanline 260 back to the pre-render line -1; the host should consume it and
	// the Screen buffer, then it self-clears on the next Clock call.
	FrameReady bool
	// NMI is set for one Clock() call when vblank begins with NMI
	// generation enabled; the host forwards it to cpu.NMI exactly once.
	NMI bool

	bgNextTileID     uint8
	bgNextTileAttrib uint8
	bgNextTileLSB    uint8
	bgNextTileMSB    uint8

	bgShifterPatternLo uint16
	bgShifterPatternHi uint16
	bgShifterAttribLo  uint16
	bgShifterAttribHi  uint16

	oam [256]uint8 // 64 sprites x 4 bytes, indexed by oamAddr

	spriteScanline   [8]objectAttr
	spriteCount      int
	spriteShifterLo  [8]uint8
	spriteShifterHi  [8]uint8

	sprite0HitPossible   bool
	sprite0BeingRendered bool

	nametable [2048]uint8
	palette   [32]uint8

	Screen [ScreenWidth * ScreenHeight]RGB
}

// New constructs a PPU wired to the given cartridge for pattern-table and
// nametable-mirroring access.
func New(cart Cartridge) *PPU {
	p := &PPU{cart: cart}
	p.Reset()
	return p
}

// AttachCartridge rebinds the cartridge, used when the host loads a new
// ROM into an existing system.
func (p *PPU) AttachCartridge(cart Cartridge) { p.cart = cart }

// Reset returns the PPU to its power-on state.
func (p *PPU) Reset() {
	p.control, p.mask, p.status = 0, 0, 0
	p.oamAddr, p.dataBuffer = 0, 0
	p.vramAddr, p.tramAddr = 0, 0
	p.fineX = 0
	p.addressLatch = false

	p.scanline, p.cycle = 0, 0
	p.frame = 0
	p.FrameReady = false
	p.NMI = false

	p.bgNextTileID, p.bgNextTileAttrib, p.bgNextTileLSB, p.bgNextTileMSB = 0, 0, 0, 0
	p.bgShifterPatternLo, p.bgShifterPatternHi = 0, 0
	p.bgShifterAttribLo, p.bgShifterAttribHi = 0, 0

	p.spriteCount = 0
	p.sprite0HitPossible, p.sprite0BeingRendered = false, false
	for i := range p.oam {
		p.oam[i] = 0xFF
	}
}

func getBit(v uint8, mask uint8) bool { return v&mask != 0 }

// CPURead services the memory-mapped registers at $2000-$2007 (mirrored
// through $3FFF).
func (p *PPU) CPURead(addr uint16) uint8 {
	switch addr & 0x0007 {
	case 2: // PPUSTATUS
		data := (p.status & 0xE0) | (p.dataBuffer & 0x1F)
		p.status &^= statusVBlank
		p.addressLatch = false
		return data
	case 4: // OAMDATA
		return p.oam[p.oamAddr]
	case 7: // PPUDATA
		data := p.dataBuffer
		p.dataBuffer = p.read(p.vramAddr.reg())
		if p.vramAddr.reg() >= 0x3F00 {
			data = p.dataBuffer
		}
		p.advanceVRAMAddr()
		return data
	default:
		return 0
	}
}

// CPUWrite services the memory-mapped registers at $2000-$2007.
func (p *PPU) CPUWrite(addr uint16, data uint8) {
	switch addr & 0x0007 {
	case 0: // PPUCTRL
		p.control = data
		p.tramAddr.setNametableX(getBit(data, ctrlNametableX))
		p.tramAddr.setNametableY(getBit(data, ctrlNametableY))
	case 1: // PPUMASK
		p.mask = data
	case 3: // OAMADDR
		p.oamAddr = data
	case 4: // OAMDATA
		p.oam[p.oamAddr] = data
		p.oamAddr++
	case 5: // PPUSCROLL
		if !p.addressLatch {
			p.fineX = data & 0x07
			p.tramAddr.setCoarseX(uint16(data >> 3))
		} else {
			p.tramAddr.setFineY(uint16(data & 0x07))
			p.tramAddr.setCoarseY(uint16(data >> 3))
		}
		p.addressLatch = !p.addressLatch
	case 6: // PPUADDR
		if !p.addressLatch {
			p.tramAddr.setReg(uint16(data&0x3F)<<8 | p.tramAddr.reg()&0x00FF)
		} else {
			p.tramAddr.setReg(p.tramAddr.reg()&0xFF00 | uint16(data))
			p.vramAddr = p.tramAddr
		}
		p.addressLatch = !p.addressLatch
	case 7: // PPUDATA
		p.write(p.vramAddr.reg(), data)
		p.advanceVRAMAddr()
	}
}

func (p *PPU) advanceVRAMAddr() {
	if getBit(p.control, ctrlIncrement) {
		p.vramAddr.setReg(p.vramAddr.reg() + 32)
	} else {
		p.vramAddr.setReg(p.vramAddr.reg() + 1)
	}
}

// WriteOAMDMA copies a full 256-byte page into OAM starting at the
// current oamAddr in one call. The bus's $4014 OAM DMA does not use it;
// it writes one byte per cycle through OAMDATA instead.
func (p *PPU) WriteOAMDMA(page [256]uint8) {
	for i := 0; i < 256; i++ {
		p.oam[(int(p.oamAddr)+i)&0xFF] = page[i]
	}
}

// read is the PPU's own 14-bit address space: pattern tables via the
// cartridge, internal nametables with mirroring applied, and palette RAM.
func (p *PPU) read(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr <= 0x1FFF:
		if data, ok := p.cart.PPURead(addr); ok {
			return data
		}
		return 0
	case addr <= 0x3EFF:
		return p.nametable[p.mapNametable(addr&0x0FFF)]
	default:
		return p.paletteRead(addr)
	}
}

func (p *PPU) write(addr uint16, v uint8) {
	addr &= 0x3FFF
	switch {
	case addr <= 0x1FFF:
		p.cart.PPUWrite(addr, v)
	case addr <= 0x3EFF:
		p.nametable[p.mapNametable(addr&0x0FFF)] = v
	default:
		p.paletteWrite(addr, v)
	}
}

func (p *PPU) mapNametable(addr uint16) uint16 {
	switch p.cart.Mirror() {
	case ines.MirrorVertical:
		return addr & 0x07FF
	case ines.MirrorSingleLow:
		return addr & 0x03FF
	case ines.MirrorSingleHigh:
		return 0x0400 + addr&0x03FF
	case ines.MirrorFourScreen:
		return addr & 0x07FF
	default: // horizontal
		if addr < 0x0800 {
			return addr & 0x03FF
		}
		return 0x0400 + addr&0x03FF
	}
}

func palettePaletteIndex(addr uint16) uint16 {
	addr &= 0x001F
	switch addr {
	case 0x0010, 0x0014, 0x0018, 0x001C:
		return addr - 0x0010
	default:
		return addr
	}
}

func (p *PPU) paletteRead(addr uint16) uint8 {
	v := p.palette[palettePaletteIndex(addr)]
	if getBit(p.mask, maskGrayscale) {
		return v & 0x30
	}
	return v & 0x3F
}

func (p *PPU) paletteWrite(addr uint16, v uint8) {
	p.palette[palettePaletteIndex(addr)] = v
}

// Clock advances the PPU by one dot.
func (p *PPU) Clock() {
	p.FrameReady = false
	p.NMI = false

	if p.scanline >= -1 && p.scanline < 240 {
		if p.scanline == -1 && p.cycle == 0 && p.frame&1 != 0 {
			if getBit(p.mask, maskShowBg) || getBit(p.mask, maskShowSprites) {
				p.cycle = 1
			}
		}
		if p.scanline == -1 && p.cycle == 1 {
			p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
			p.sprite0BeingRendered = false
		}

		if (p.cycle >= 2 && p.cycle < 258) || (p.cycle >= 321 && p.cycle < 338) {
			p.updateShifters()
			switch (p.cycle - 1) % 8 {
			case 0:
				p.loadBackgroundShifters()
				p.bgNextTileID = p.read(0x2000 | (p.vramAddr.reg() & 0x0FFF))
			case 2:
				attr := p.read(0x23C0 |
					bit15(p.vramAddr.nametableY(), 11) |
					bit15(p.vramAddr.nametableX(), 10) |
					(p.vramAddr.coarseY()>>2)<<3 |
					p.vramAddr.coarseX()>>2)
				if p.vramAddr.coarseY()&0x02 != 0 {
					attr >>= 4
				}
				if p.vramAddr.coarseX()&0x02 != 0 {
					attr >>= 2
				}
				p.bgNextTileAttrib = attr & 0x03
			case 4:
				base := uint16(0)
				if getBit(p.control, ctrlBackgroundTable) {
					base = 0x1000
				}
				p.bgNextTileLSB = p.read(base + uint16(p.bgNextTileID)<<4 + p.vramAddr.fineY())
			case 6:
				base := uint16(0)
				if getBit(p.control, ctrlBackgroundTable) {
					base = 0x1000
				}
				p.bgNextTileMSB = p.read(base + uint16(p.bgNextTileID)<<4 + p.vramAddr.fineY() + 8)
			case 7:
				p.incrementScrollX()
			}
		}

		if p.cycle == 256 {
			p.incrementScrollY()
		}
		if p.cycle == 257 {
			p.loadBackgroundShifters()
			p.transferAddressX()
		}
		if p.cycle == 257 && p.scanline >= 0 {
			p.evaluateSprites()
		}
		if p.cycle == 340 {
			p.fetchSpritePatterns()
		}
		if p.scanline == -1 && p.cycle >= 280 && p.cycle < 305 {
			p.transferAddressY()
		}
	}

	if p.scanline >= 241 && p.scanline < 261 {
		if p.scanline == 241 && p.cycle == 1 {
			p.status |= statusVBlank
			if getBit(p.control, ctrlNMIEnable) {
				p.NMI = true
				log.ModPPU.DebugZ("vblank NMI").End()
			}
		}
	}

	if p.scanline >= 0 && p.scanline < 240 && p.cycle >= 1 && p.cycle < 257 {
		p.renderPixel()
	}

	if p.cycle == 260 && (getBit(p.mask, maskShowBg) || getBit(p.mask, maskShowSprites)) {
		if p.scanline >= 0 && p.scanline < 240 {
			p.cart.ScanlineHint()
		}
	}

	p.cycle++
	if p.cycle >= cyclesPerScanline {
		p.cycle = 0
		p.scanline++
		if p.scanline >= 261 {
			p.scanline = -1
			p.FrameReady = true
			p.frame++
		}
	}
}

func bit15(v bool, shift uint) uint16 {
	if v {
		return 1 << shift
	}
	return 0
}

func (p *PPU) incrementScrollX() {
	if !getBit(p.mask, maskShowBg) && !getBit(p.mask, maskShowSprites) {
		return
	}
	if p.vramAddr.coarseX() == 31 {
		p.vramAddr.setCoarseX(0)
		p.vramAddr.toggleNametableX()
	} else {
		p.vramAddr.setCoarseX(p.vramAddr.coarseX() + 1)
	}
}

func (p *PPU) incrementScrollY() {
	if !getBit(p.mask, maskShowBg) && !getBit(p.mask, maskShowSprites) {
		return
	}
	if p.vramAddr.fineY() < 7 {
		p.vramAddr.setFineY(p.vramAddr.fineY() + 1)
		return
	}
	p.vramAddr.setFineY(0)
	switch p.vramAddr.coarseY() {
	case 29:
		p.vramAddr.setCoarseY(0)
		p.vramAddr.toggleNametableY()
	case 31:
		p.vramAddr.setCoarseY(0)
	default:
		p.vramAddr.setCoarseY(p.vramAddr.coarseY() + 1)
	}
}

func (p *PPU) transferAddressX() {
	if !getBit(p.mask, maskShowBg) && !getBit(p.mask, maskShowSprites) {
		return
	}
	p.vramAddr.setNametableX(p.tramAddr.nametableX())
	p.vramAddr.setCoarseX(p.tramAddr.coarseX())
}

func (p *PPU) transferAddressY() {
	if !getBit(p.mask, maskShowBg) && !getBit(p.mask, maskShowSprites) {
		return
	}
	p.vramAddr.setFineY(p.tramAddr.fineY())
	p.vramAddr.setNametableY(p.tramAddr.nametableY())
	p.vramAddr.setCoarseY(p.tramAddr.coarseY())
}

func (p *PPU) loadBackgroundShifters() {
	p.bgShifterPatternLo = p.bgShifterPatternLo&0xFF00 | uint16(p.bgNextTileLSB)
	p.bgShifterPatternHi = p.bgShifterPatternHi&0xFF00 | uint16(p.bgNextTileMSB)

	lo, hi := uint16(0), uint16(0)
	if p.bgNextTileAttrib&0b01 != 0 {
		lo = 0xFF
	}
	if p.bgNextTileAttrib&0b10 != 0 {
		hi = 0xFF
	}
	p.bgShifterAttribLo = p.bgShifterAttribLo&0xFF00 | lo
	p.bgShifterAttribHi = p.bgShifterAttribHi&0xFF00 | hi
}

func (p *PPU) updateShifters() {
	if !getBit(p.mask, maskShowBg) {
		return
	}
	p.bgShifterPatternLo <<= 1
	p.bgShifterPatternHi <<= 1
	p.bgShifterAttribLo <<= 1
	p.bgShifterAttribHi <<= 1
}

func (p *PPU) evaluateSprites() {
	p.spriteCount = 0
	p.sprite0HitPossible = false
	for i := range p.spriteShifterLo {
		p.spriteShifterLo[i] = 0
		p.spriteShifterHi[i] = 0
	}
	for i := range p.spriteScanline {
		p.spriteScanline[i] = objectAttr{0xFF, 0xFF, 0xFF, 0xFF}
	}

	spriteHeight := 8
	if getBit(p.control, ctrlSpriteSize) {
		spriteHeight = 16
	}

	found := 0
	for entry := 0; entry < 64; entry++ {
		y := p.oam[entry*4]
		diff := p.scanline - int(y)
		if diff >= 0 && diff < spriteHeight {
			if found < 8 {
				p.spriteScanline[found] = objectAttr{
					y:         y,
					id:        p.oam[entry*4+1],
					attribute: p.oam[entry*4+2],
					x:         p.oam[entry*4+3],
				}
				if entry == 0 {
					p.sprite0HitPossible = true
				}
			}
			found++
			if found > 8 {
				break
			}
		}
	}

	p.status &^= statusSpriteOverflow
	if found > 8 {
		p.status |= statusSpriteOverflow
		p.spriteCount = 8
	} else {
		p.spriteCount = found
	}
}

func flipByte(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}

func (p *PPU) fetchSpritePatterns() {
	for i := 0; i < p.spriteCount; i++ {
		s := p.spriteScanline[i]
		row := uint16(p.scanline - int(s.y))

		var lo uint16
		flipV := s.attribute&0x80 != 0
		if !getBit(p.control, ctrlSpriteSize) {
			base := uint16(0)
			if getBit(p.control, ctrlSpriteTable) {
				base = 0x1000
			}
			r := row & 0x07
			if flipV {
				r = 7 - r
			}
			lo = base | uint16(s.id)<<4 | r
		} else {
			table := uint16(s.id) & 0x01
			tile := uint16(s.id) &^ 0x01
			top := row < 8
			if flipV {
				top = !top
			}
			r := row & 0x07
			if flipV {
				r = 7 - r
			}
			if top {
				lo = table<<12 | tile<<4 | r
			} else {
				lo = table<<12 | (tile+1)<<4 | r
			}
		}
		hi := lo + 8

		patLo := p.read(lo)
		patHi := p.read(hi)
		if s.attribute&0x40 != 0 {
			patLo = flipByte(patLo)
			patHi = flipByte(patHi)
		}
		p.spriteShifterLo[i] = patLo
		p.spriteShifterHi[i] = patHi
	}
}

func (p *PPU) renderPixel() {
	var bgPixel, bgPalette uint8

	if getBit(p.mask, maskShowBg) {
		if getBit(p.mask, maskShowBgLeft) || p.cycle >= 9 {
			mux := uint16(0x8000) >> p.fineX
			p0 := uint8(0)
			if p.bgShifterPatternLo&mux != 0 {
				p0 = 1
			}
			p1 := uint8(0)
			if p.bgShifterPatternHi&mux != 0 {
				p1 = 1
			}
			bgPixel = p1<<1 | p0

			a0 := uint8(0)
			if p.bgShifterAttribLo&mux != 0 {
				a0 = 1
			}
			a1 := uint8(0)
			if p.bgShifterAttribHi&mux != 0 {
				a1 = 1
			}
			bgPalette = a1<<1 | a0
		}
	}

	var fgPixel, fgPalette uint8
	var fgPriority bool

	if getBit(p.mask, maskShowSprites) && (getBit(p.mask, maskShowSpritesLeft) || p.cycle >= 9) {
		p.sprite0BeingRendered = false
		for i := 0; i < p.spriteCount && i < 8; i++ {
			if p.spriteScanline[i].x != 0 {
				continue
			}
			lo := uint8(0)
			if p.spriteShifterLo[i]&0x80 != 0 {
				lo = 1
			}
			hi := uint8(0)
			if p.spriteShifterHi[i]&0x80 != 0 {
				hi = 1
			}
			fgPixel = hi<<1 | lo
			fgPalette = (p.spriteScanline[i].attribute & 0x03) + 4
			fgPriority = p.spriteScanline[i].attribute&0x20 == 0
			if fgPixel != 0 {
				if i == 0 {
					p.sprite0BeingRendered = true
				}
				break
			}
		}
	}

	var pixel, paletteIdx uint8
	switch {
	case bgPixel == 0 && fgPixel == 0:
	case bgPixel == 0 && fgPixel > 0:
		pixel, paletteIdx = fgPixel, fgPalette
	case bgPixel > 0 && fgPixel == 0:
		pixel, paletteIdx = bgPixel, bgPalette
	default:
		if fgPriority {
			pixel, paletteIdx = fgPixel, fgPalette
		} else {
			pixel, paletteIdx = bgPixel, bgPalette
		}
		if p.sprite0HitPossible && p.sprite0BeingRendered &&
			getBit(p.mask, maskShowBg) && getBit(p.mask, maskShowSprites) && p.cycle < 256 {
			leftClip := !(getBit(p.mask, maskShowBgLeft) && getBit(p.mask, maskShowSpritesLeft))
			if (leftClip && p.cycle >= 9) || (!leftClip && p.cycle >= 2) {
				p.status |= statusSprite0Hit
			}
		}
	}

	colorIdx := p.read(0x3F00+uint16(paletteIdx)<<2+uint16(pixel)) & 0x3F
	x, y := p.cycle-1, p.scanline
	if x >= 0 && x < ScreenWidth && y >= 0 && y < ScreenHeight {
		p.Screen[y*ScreenWidth+x] = paletteColors[colorIdx]
	}

	for i := 0; i < p.spriteCount && i < 8; i++ {
		if p.spriteScanline[i].x > 0 {
			p.spriteScanline[i].x--
		} else {
			p.spriteShifterLo[i] <<= 1
			p.spriteShifterHi[i] <<= 1
		}
	}
}
