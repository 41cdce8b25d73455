package apu

// lengthTable maps a 5-bit length-counter load value to its counter start.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// noisePeriodTable maps the low 4 bits of $400E to an NTSC timer period.
var noisePeriodTable = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068,
}

// dmcRateTable maps the low 4 bits of $4010 to an NTSC DMC timer period.
var dmcRateTable = [16]uint16{
	428, 380, 340, 320, 286, 254, 226, 214, 190, 160, 142, 128, 106, 84, 72, 54,
}

// dutyTable holds the four pulse duty-cycle waveforms, 8 steps each.
var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

// triangleSequence is the 32-step triangle waveform.
var triangleSequence = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

// pulseTable and tndTable are the non-linear mixer lookup tables; both are
// precomputed once at package init rather than recomputed per sample.
var (
	pulseTable [31]float64
	tndTable   [203]float64
)

func init() {
	for i := range pulseTable {
		pulseTable[i] = 95.52 / (8128.0/float64(i) + 100.0)
	}
	for i := range tndTable {
		tndTable[i] = 163.67 / (24329.0/float64(i) + 100.0)
	}
}
