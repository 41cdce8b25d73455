package cpu

import "testing"

// flatBus is a 64KB flat memory used to drive the CPU in isolation,
// without a PPU/APU/mapper attached.
type flatBus struct {
	mem [65536]uint8
}

func (b *flatBus) Read(addr uint16) uint8  { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, v uint8) { b.mem[addr] = v }

func newTestCPU(resetVector uint16) (*CPU, *flatBus) {
	bus := &flatBus{}
	bus.mem[0xFFFC] = uint8(resetVector)
	bus.mem[0xFFFD] = uint8(resetVector >> 8)

	c := &CPU{}
	c.Reset(bus)
	// Reset takes 8 cycles before the CPU fetches its first instruction.
	for i := 0; i < 8; i++ {
		c.Clock(bus)
	}
	return c, bus
}

func runInstruction(c *CPU, bus *flatBus) {
	c.Clock(bus)
	for !c.InstructionComplete() {
		c.Clock(bus)
	}
}

func TestResetState(t *testing.T) {
	c, _ := newTestCPU(0x8000)

	if c.PC != 0x8000 {
		t.Errorf("PC = %04X, want 8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %02X, want FD", c.SP)
	}
	if c.A != 0 || c.X != 0 || c.Y != 0 {
		t.Errorf("registers not zeroed: A=%02X X=%02X Y=%02X", c.A, c.X, c.Y)
	}
	if !c.P.has(FlagI) || !c.P.has(FlagU) {
		t.Errorf("P = %s, want I and U set", c.P)
	}
}

func TestLDAImmediateSetsZeroAndNegative(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xA9 // LDA #$00
	bus.mem[0x8001] = 0x00
	runInstruction(c, bus)

	if c.A != 0 {
		t.Errorf("A = %02X, want 00", c.A)
	}
	if !c.P.has(FlagZ) {
		t.Error("Z flag not set for zero load")
	}

	bus.mem[0x8002] = 0xA9 // LDA #$80
	bus.mem[0x8003] = 0x80
	runInstruction(c, bus)

	if c.A != 0x80 {
		t.Errorf("A = %02X, want 80", c.A)
	}
	if !c.P.has(FlagN) {
		t.Error("N flag not set for negative load")
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xA9 // LDA #$7F
	bus.mem[0x8001] = 0x7F
	bus.mem[0x8002] = 0x69 // ADC #$01
	bus.mem[0x8003] = 0x01
	runInstruction(c, bus)
	runInstruction(c, bus)

	if c.A != 0x80 {
		t.Errorf("A = %02X, want 80", c.A)
	}
	if !c.P.has(FlagV) {
		t.Error("V flag not set for signed overflow")
	}
	if c.P.has(FlagC) {
		t.Error("C flag incorrectly set")
	}
}

func TestStackPushPull(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xA9 // LDA #$42
	bus.mem[0x8001] = 0x42
	bus.mem[0x8002] = 0x48 // PHA
	bus.mem[0x8003] = 0xA9 // LDA #$00
	bus.mem[0x8004] = 0x00
	bus.mem[0x8005] = 0x68 // PLA
	runInstruction(c, bus)
	runInstruction(c, bus)
	runInstruction(c, bus)
	runInstruction(c, bus)

	if c.A != 0x42 {
		t.Errorf("A = %02X, want 42 after PLA", c.A)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %02X, want FD after balanced push/pull", c.SP)
	}
}

func TestBranchTakenAddsCycle(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xA9 // LDA #$00 -> sets Z
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0xF0 // BEQ +2
	bus.mem[0x8003] = 0x02

	runInstruction(c, bus) // LDA
	before := c.Cycles
	runInstruction(c, bus) // BEQ, taken
	if c.PC != 0x8006 {
		t.Errorf("PC = %04X, want 8006 after taken branch", c.PC)
	}
	if c.Cycles-before < 3 {
		t.Errorf("branch-taken cost %d cycles, want at least 3", c.Cycles-before)
	}
}

func TestJSRRTSRoundtrip(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0x20 // JSR $9000
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0x90
	bus.mem[0x9000] = 0x60 // RTS

	runInstruction(c, bus)
	if c.PC != 0x9000 {
		t.Errorf("PC = %04X, want 9000 after JSR", c.PC)
	}
	runInstruction(c, bus)
	if c.PC != 0x8003 {
		t.Errorf("PC = %04X, want 8003 after RTS", c.PC)
	}
}

func TestBRKPushesStatusWithoutLiveIFlag(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0xFFFE] = 0x00
	bus.mem[0xFFFF] = 0x90
	bus.mem[0x8000] = 0x00 // BRK

	runInstruction(c, bus)

	if !c.P.has(FlagI) {
		t.Error("I flag should be set on the live register after BRK")
	}
	pushed := bus.Read(0x0100 + uint16(c.SP) + 1)
	if Flags(pushed).has(FlagI) {
		t.Error("pushed status byte should not have I set (it reflects pre-interrupt state)")
	}
	if !Flags(pushed).has(FlagB) {
		t.Error("pushed status byte should have B set")
	}
}

func TestIRQIgnoredWhenInterruptsDisabled(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0x78 // SEI
	runInstruction(c, bus)

	pc := c.PC
	c.IRQ(bus)
	if c.PC != pc {
		t.Error("IRQ should be ignored while I flag is set")
	}
}

func TestNMICosts7Cycles(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x90

	before := c.Cycles
	c.NMI(bus)
	for !c.InstructionComplete() {
		c.Clock(bus)
	}
	if c.Cycles-before != 7 {
		t.Errorf("NMI cost %d cycles, want 7", c.Cycles-before)
	}
	if c.PC != 0x9000 {
		t.Errorf("PC = %04X, want 9000 after NMI", c.PC)
	}
}
