// Package cpu implements the 6502 core (Ricoh 2A03) found in the NES:
// an 8-bit accumulator machine driven cycle-by-cycle through a 256-entry
// opcode decode table covering all 151 documented instructions plus the
// 105 illegal opcodes.
package cpu

import "github.com/u6170252806-cmd/nes-emulator/log"

// Bus is the narrow read/write contract the CPU needs from its host. The
// bus handle is passed into each call rather than held as a back-pointer,
// so the CPU owns no reference to the system wiring it.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
}

const (
	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE
)

// CPU holds the 6502 register file and the scratch state of the
// instruction currently in flight.
type CPU struct {
	A, X, Y, SP uint8
	PC          uint16
	P           Flags

	Cycles uint64 // total cycles executed since power-on/reset

	cyclesLeft uint8
	opcode     uint8
	fetched    uint8
	addrAbs    uint16
	addrRel    uint16 // sign-extended relative offset, for branches
}

// Reset reinitializes the CPU to power-on state: PC loads from the reset
// vector, SP becomes $FD, P becomes I|U, and the 8-cycle reset sequence
// begins.
func (c *CPU) Reset(bus Bus) {
	lo := uint16(bus.Read(vectorReset))
	hi := uint16(bus.Read(vectorReset + 1))
	c.PC = hi<<8 | lo

	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = FlagU | FlagI

	c.addrAbs, c.addrRel, c.fetched = 0, 0, 0
	c.cyclesLeft = 8
}

// Clock advances the CPU by one master cycle. When the previous
// instruction has finished, it fetches, decodes and dispatches the next
// one; additional cycles (page-cross, taken branch) extend cyclesLeft
// before this call returns.
func (c *CPU) Clock(bus Bus) {
	if c.cyclesLeft == 0 {
		c.opcode = bus.Read(c.PC)
		c.P.set(FlagU, true)
		c.PC++

		instr := table[c.opcode]
		c.cyclesLeft = instr.cycles

		addrExtra := instr.addrMode(c, bus)
		opExtra := instr.operate(c, bus)
		c.cyclesLeft += addrExtra & opExtra

		c.P.set(FlagU, true)
	}
	c.cyclesLeft--
	c.Cycles++
}

// NMI services a non-maskable interrupt: push PC and P (B clear, U set,
// I set), then load PC from the NMI vector. Costs 7 cycles.
func (c *CPU) NMI(bus Bus) {
	log.ModCPU.DebugZ("NMI").Uint16("pc", c.PC).End()
	c.push16(bus, c.PC)
	c.P.set(FlagB, false)
	c.P.set(FlagU, true)
	c.P.set(FlagI, true)
	c.push(bus, uint8(c.P))

	lo := uint16(bus.Read(vectorNMI))
	hi := uint16(bus.Read(vectorNMI + 1))
	c.PC = hi<<8 | lo
	c.cyclesLeft = 7
}

// IRQ services a maskable interrupt if the I flag is clear. Costs 7
// cycles when serviced.
func (c *CPU) IRQ(bus Bus) {
	if c.P.has(FlagI) {
		return
	}
	c.push16(bus, c.PC)
	c.P.set(FlagB, false)
	c.P.set(FlagU, true)
	c.P.set(FlagI, true)
	c.push(bus, uint8(c.P))

	lo := uint16(bus.Read(vectorIRQ))
	hi := uint16(bus.Read(vectorIRQ + 1))
	c.PC = hi<<8 | lo
	c.cyclesLeft = 7
}

// InstructionComplete reports whether the CPU is between instructions,
// useful for a host driving interrupts only at instruction boundaries.
func (c *CPU) InstructionComplete() bool { return c.cyclesLeft == 0 }

func (c *CPU) push(bus Bus, v uint8) {
	bus.Write(0x0100+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pull(bus Bus) uint8 {
	c.SP++
	return bus.Read(0x0100 + uint16(c.SP))
}

func (c *CPU) push16(bus Bus, v uint16) {
	c.push(bus, uint8(v>>8))
	c.push(bus, uint8(v))
}

func (c *CPU) pull16(bus Bus) uint16 {
	lo := uint16(c.pull(bus))
	hi := uint16(c.pull(bus))
	return hi<<8 | lo
}

// fetch loads the operand for the current instruction into c.fetched,
// unless the addressing mode was implied (which pre-loads A).
func (c *CPU) fetch(bus Bus) uint8 {
	if table[c.opcode].mode == modeIMP {
		return c.fetched
	}
	c.fetched = bus.Read(c.addrAbs)
	return c.fetched
}
