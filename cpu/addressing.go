package cpu

// addressMode tags which of the 12 addressing-mode functions produced
// addrAbs/addrRel for the instruction currently executing. fetch() uses
// it to know whether to read memory or reuse the accumulator.
type addressMode int

const (
	modeIMP addressMode = iota
	modeIMM
	modeZP0
	modeZPX
	modeZPY
	modeREL
	modeABS
	modeABX
	modeABY
	modeIND
	modeIZX
	modeIZY
)

// amIMP: implied/accumulator. Operand is A itself.
func amIMP(c *CPU, bus Bus) uint8 {
	c.fetched = c.A
	return 0
}

// amIMM: the operand is the byte right after the opcode.
func amIMM(c *CPU, bus Bus) uint8 {
	c.addrAbs = c.PC
	c.PC++
	return 0
}

// amZP0: zero-page.
func amZP0(c *CPU, bus Bus) uint8 {
	c.addrAbs = uint16(bus.Read(c.PC))
	c.PC++
	c.addrAbs &= 0x00FF
	return 0
}

// amZPX: zero-page, X-indexed, wrapping within page zero.
func amZPX(c *CPU, bus Bus) uint8 {
	c.addrAbs = uint16(bus.Read(c.PC) + c.X)
	c.PC++
	c.addrAbs &= 0x00FF
	return 0
}

// amZPY: zero-page, Y-indexed, wrapping within page zero.
func amZPY(c *CPU, bus Bus) uint8 {
	c.addrAbs = uint16(bus.Read(c.PC) + c.Y)
	c.PC++
	c.addrAbs &= 0x00FF
	return 0
}

// amREL: branch target, a signed byte relative to the next instruction.
func amREL(c *CPU, bus Bus) uint8 {
	rel := uint16(bus.Read(c.PC))
	c.PC++
	if rel&0x80 != 0 {
		rel |= 0xFF00
	}
	c.addrRel = rel
	return 0
}

// amABS: absolute 16-bit address.
func amABS(c *CPU, bus Bus) uint8 {
	lo := uint16(bus.Read(c.PC))
	c.PC++
	hi := uint16(bus.Read(c.PC))
	c.PC++
	c.addrAbs = hi<<8 | lo
	return 0
}

// amABX: absolute, X-indexed; an extra cycle is owed if indexing crosses
// a page boundary.
func amABX(c *CPU, bus Bus) uint8 {
	lo := uint16(bus.Read(c.PC))
	c.PC++
	hi := uint16(bus.Read(c.PC))
	c.PC++
	addr := hi<<8 | lo
	c.addrAbs = addr + uint16(c.X)
	if c.addrAbs&0xFF00 != hi<<8 {
		return 1
	}
	return 0
}

// amABY: absolute, Y-indexed; same page-cross rule as amABX.
func amABY(c *CPU, bus Bus) uint8 {
	lo := uint16(bus.Read(c.PC))
	c.PC++
	hi := uint16(bus.Read(c.PC))
	c.PC++
	addr := hi<<8 | lo
	c.addrAbs = addr + uint16(c.Y)
	if c.addrAbs&0xFF00 != hi<<8 {
		return 1
	}
	return 0
}

// amIND: indirect, used only by JMP. Reproduces the original 6502 page-
// wrap bug: if the pointer's low byte is $FF, the high byte of the
// target is read from the start of the same page rather than the next.
func amIND(c *CPU, bus Bus) uint8 {
	ptrLo := uint16(bus.Read(c.PC))
	c.PC++
	ptrHi := uint16(bus.Read(c.PC))
	c.PC++
	ptr := ptrHi<<8 | ptrLo

	var hiAddr uint16
	if ptrLo == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	lo := uint16(bus.Read(ptr))
	hi := uint16(bus.Read(hiAddr))
	c.addrAbs = hi<<8 | lo
	return 0
}

// amIZX: indexed indirect. A zero-page pointer is formed from the
// operand plus X (wrapping in page zero), then dereferenced.
func amIZX(c *CPU, bus Bus) uint8 {
	t := uint16(bus.Read(c.PC))
	c.PC++
	lo := uint16(bus.Read((t + uint16(c.X)) & 0x00FF))
	hi := uint16(bus.Read((t + uint16(c.X) + 1) & 0x00FF))
	c.addrAbs = hi<<8 | lo
	return 0
}

// amIZY: indirect indexed. A zero-page pointer is dereferenced, then Y
// is added to the result; an extra cycle is owed on page cross.
func amIZY(c *CPU, bus Bus) uint8 {
	t := uint16(bus.Read(c.PC))
	c.PC++
	lo := uint16(bus.Read(t & 0x00FF))
	hi := uint16(bus.Read((t + 1) & 0x00FF))
	addr := hi<<8 | lo
	c.addrAbs = addr + uint16(c.Y)
	if c.addrAbs&0xFF00 != hi<<8 {
		return 1
	}
	return 0
}
