package nes

import "testing"

// minimalNROM builds the smallest valid iNES image: one 16KB PRG bank
// filled with NOPs and a reset vector pointing at its start, no CHR ROM
// (so the mapper falls back to CHR RAM).
func minimalNROM() []byte {
	header := []byte{'N', 'E', 'S', 0x1A, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, 16384)
	for i := range prg {
		prg[i] = 0xEA // NOP
	}
	prg[0x3FFC] = 0x00 // reset vector low -> $C000 (last bank mirrors to $8000 too)
	prg[0x3FFD] = 0xC0
	return append(header, prg...)
}

func TestLoadROMWiresUpSystem(t *testing.T) {
	sys, err := LoadROM(minimalNROM())
	if sys == nil {
		t.Fatalf("LoadROM returned nil system: %v", err)
	}
	if sys.CPU.PC != 0xC000 {
		t.Errorf("PC = %04X, want C000 off the reset vector", sys.CPU.PC)
	}
}

func TestStepFrameProducesACompleteFrame(t *testing.T) {
	sys, err := LoadROM(minimalNROM())
	if sys == nil {
		t.Fatalf("LoadROM returned nil system: %v", err)
	}
	if err != nil {
		t.Logf("recoverable load warning: %v", err)
	}

	sys.StepFrame()
	if !sys.PPU.FrameReady {
		t.Fatal("FrameReady should be set the moment StepFrame returns")
	}

	sys.Clock()
	if sys.PPU.FrameReady {
		t.Error("FrameReady should self-clear on the very next Clock call")
	}
}

func TestSampleReturnsBoundedValue(t *testing.T) {
	sys, _ := LoadROM(minimalNROM())
	for i := 0; i < 100; i++ {
		sys.Clock()
	}
	v := sys.Sample()
	if v < -1 || v > 1 {
		t.Errorf("Sample() = %v, want within [-1, 1]", v)
	}
}
