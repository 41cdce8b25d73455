package cpu

// instruction is one row of the 256-entry opcode decode table: a mnemonic
// for diagnostics, the operation and addressing-mode functions to run,
// which addressing mode it uses (for fetch()'s implied-mode check), and
// the base cycle cost before any addressing/operation extra cycle.
type instruction struct {
	name     string
	operate  func(*CPU, Bus) uint8
	addrMode func(*CPU, Bus) uint8
	mode     addressMode
	cycles   uint8
}

// table is the canonical 6502 opcode decode table, including the 105
// illegal opcodes, transcribed in opcode order $00-$FF.
//
// Populated in init() rather than via a direct initializer: some of the
// operate funcs (e.g. opALR) call fetch(), which reads table, which would
// otherwise make this variable's initializer depend on itself.
var table [256]instruction

func init() {
	table = [256]instruction{
		{"BRK", opBRK, amIMM, modeIMM, 7}, {"ORA", opORA, amIZX, modeIZX, 6}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"SLO", opSLO, amIZX, modeIZX, 8},
		{"NOP", opNOP, amZP0, modeZP0, 3}, {"ORA", opORA, amZP0, modeZP0, 3}, {"ASL", opASL, amZP0, modeZP0, 5}, {"SLO", opSLO, amZP0, modeZP0, 5},
		{"PHP", opPHP, amIMP, modeIMP, 3}, {"ORA", opORA, amIMM, modeIMM, 2}, {"ASL", opASLA, amIMP, modeIMP, 2}, {"ANC", opANC, amIMM, modeIMM, 2},
		{"NOP", opNOP, amABS, modeABS, 4}, {"ORA", opORA, amABS, modeABS, 4}, {"ASL", opASL, amABS, modeABS, 6}, {"SLO", opSLO, amABS, modeABS, 6},

		{"BPL", opBPL, amREL, modeREL, 2}, {"ORA", opORA, amIZY, modeIZY, 5}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"SLO", opSLO, amIZY, modeIZY, 8},
		{"NOP", opNOP, amZPX, modeZPX, 4}, {"ORA", opORA, amZPX, modeZPX, 4}, {"ASL", opASL, amZPX, modeZPX, 6}, {"SLO", opSLO, amZPX, modeZPX, 6},
		{"CLC", opCLC, amIMP, modeIMP, 2}, {"ORA", opORA, amABY, modeABY, 4}, {"NOP", opNOP, amIMP, modeIMP, 2}, {"SLO", opSLO, amABY, modeABY, 7},
		{"NOP", opNOP, amABX, modeABX, 4}, {"ORA", opORA, amABX, modeABX, 4}, {"ASL", opASL, amABX, modeABX, 7}, {"SLO", opSLO, amABX, modeABX, 7},

		{"JSR", opJSR, amABS, modeABS, 6}, {"AND", opAND, amIZX, modeIZX, 6}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"RLA", opRLA, amIZX, modeIZX, 8},
		{"BIT", opBIT, amZP0, modeZP0, 3}, {"AND", opAND, amZP0, modeZP0, 3}, {"ROL", opROL, amZP0, modeZP0, 5}, {"RLA", opRLA, amZP0, modeZP0, 5},
		{"PLP", opPLP, amIMP, modeIMP, 4}, {"AND", opAND, amIMM, modeIMM, 2}, {"ROL", opROLA, amIMP, modeIMP, 2}, {"ANC", opANC, amIMM, modeIMM, 2},
		{"BIT", opBIT, amABS, modeABS, 4}, {"AND", opAND, amABS, modeABS, 4}, {"ROL", opROL, amABS, modeABS, 6}, {"RLA", opRLA, amABS, modeABS, 6},

		{"BMI", opBMI, amREL, modeREL, 2}, {"AND", opAND, amIZY, modeIZY, 5}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"RLA", opRLA, amIZY, modeIZY, 8},
		{"NOP", opNOP, amZPX, modeZPX, 4}, {"AND", opAND, amZPX, modeZPX, 4}, {"ROL", opROL, amZPX, modeZPX, 6}, {"RLA", opRLA, amZPX, modeZPX, 6},
		{"SEC", opSEC, amIMP, modeIMP, 2}, {"AND", opAND, amABY, modeABY, 4}, {"NOP", opNOP, amIMP, modeIMP, 2}, {"RLA", opRLA, amABY, modeABY, 7},
		{"NOP", opNOP, amABX, modeABX, 4}, {"AND", opAND, amABX, modeABX, 4}, {"ROL", opROL, amABX, modeABX, 7}, {"RLA", opRLA, amABX, modeABX, 7},

		{"RTI", opRTI, amIMP, modeIMP, 6}, {"EOR", opEOR, amIZX, modeIZX, 6}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"SRE", opSRE, amIZX, modeIZX, 8},
		{"NOP", opNOP, amZP0, modeZP0, 3}, {"EOR", opEOR, amZP0, modeZP0, 3}, {"LSR", opLSR, amZP0, modeZP0, 5}, {"SRE", opSRE, amZP0, modeZP0, 5},
		{"PHA", opPHA, amIMP, modeIMP, 3}, {"EOR", opEOR, amIMM, modeIMM, 2}, {"LSR", opLSRA, amIMP, modeIMP, 2}, {"ALR", opALR, amIMM, modeIMM, 2},
		{"JMP", opJMP, amABS, modeABS, 3}, {"EOR", opEOR, amABS, modeABS, 4}, {"LSR", opLSR, amABS, modeABS, 6}, {"SRE", opSRE, amABS, modeABS, 6},

		{"BVC", opBVC, amREL, modeREL, 2}, {"EOR", opEOR, amIZY, modeIZY, 5}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"SRE", opSRE, amIZY, modeIZY, 8},
		{"NOP", opNOP, amZPX, modeZPX, 4}, {"EOR", opEOR, amZPX, modeZPX, 4}, {"LSR", opLSR, amZPX, modeZPX, 6}, {"SRE", opSRE, amZPX, modeZPX, 6},
		{"CLI", opCLI, amIMP, modeIMP, 2}, {"EOR", opEOR, amABY, modeABY, 4}, {"NOP", opNOP, amIMP, modeIMP, 2}, {"SRE", opSRE, amABY, modeABY, 7},
		{"NOP", opNOP, amABX, modeABX, 4}, {"EOR", opEOR, amABX, modeABX, 4}, {"LSR", opLSR, amABX, modeABX, 7}, {"SRE", opSRE, amABX, modeABX, 7},

		{"RTS", opRTS, amIMP, modeIMP, 6}, {"ADC", opADC, amIZX, modeIZX, 6}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"RRA", opRRA, amIZX, modeIZX, 8},
		{"NOP", opNOP, amZP0, modeZP0, 3}, {"ADC", opADC, amZP0, modeZP0, 3}, {"ROR", opROR, amZP0, modeZP0, 5}, {"RRA", opRRA, amZP0, modeZP0, 5},
		{"PLA", opPLA, amIMP, modeIMP, 4}, {"ADC", opADC, amIMM, modeIMM, 2}, {"ROR", opRORA, amIMP, modeIMP, 2}, {"ARR", opARR, amIMM, modeIMM, 2},
		{"JMP", opJMP, amIND, modeIND, 5}, {"ADC", opADC, amABS, modeABS, 4}, {"ROR", opROR, amABS, modeABS, 6}, {"RRA", opRRA, amABS, modeABS, 6},

		{"BVS", opBVS, amREL, modeREL, 2}, {"ADC", opADC, amIZY, modeIZY, 5}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"RRA", opRRA, amIZY, modeIZY, 8},
		{"NOP", opNOP, amZPX, modeZPX, 4}, {"ADC", opADC, amZPX, modeZPX, 4}, {"ROR", opROR, amZPX, modeZPX, 6}, {"RRA", opRRA, amZPX, modeZPX, 6},
		{"SEI", opSEI, amIMP, modeIMP, 2}, {"ADC", opADC, amABY, modeABY, 4}, {"NOP", opNOP, amIMP, modeIMP, 2}, {"RRA", opRRA, amABY, modeABY, 7},
		{"NOP", opNOP, amABX, modeABX, 4}, {"ADC", opADC, amABX, modeABX, 4}, {"ROR", opROR, amABX, modeABX, 7}, {"RRA", opRRA, amABX, modeABX, 7},

		{"NOP", opNOP, amIMM, modeIMM, 2}, {"STA", opSTA, amIZX, modeIZX, 6}, {"NOP", opNOP, amIMM, modeIMM, 2}, {"SAX", opSAX, amIZX, modeIZX, 6},
		{"STY", opSTY, amZP0, modeZP0, 3}, {"STA", opSTA, amZP0, modeZP0, 3}, {"STX", opSTX, amZP0, modeZP0, 3}, {"SAX", opSAX, amZP0, modeZP0, 3},
		{"DEY", opDEY, amIMP, modeIMP, 2}, {"NOP", opNOP, amIMM, modeIMM, 2}, {"TXA", opTXA, amIMP, modeIMP, 2}, {"XAA", opXAA, amIMM, modeIMM, 2},
		{"STY", opSTY, amABS, modeABS, 4}, {"STA", opSTA, amABS, modeABS, 4}, {"STX", opSTX, amABS, modeABS, 4}, {"SAX", opSAX, amABS, modeABS, 4},

		{"BCC", opBCC, amREL, modeREL, 2}, {"STA", opSTA, amIZY, modeIZY, 6}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"AHX", opAHX, amIZY, modeIZY, 6},
		{"STY", opSTY, amZPX, modeZPX, 4}, {"STA", opSTA, amZPX, modeZPX, 4}, {"STX", opSTX, amZPY, modeZPY, 4}, {"SAX", opSAX, amZPY, modeZPY, 4},
		{"TYA", opTYA, amIMP, modeIMP, 2}, {"STA", opSTA, amABY, modeABY, 5}, {"TXS", opTXS, amIMP, modeIMP, 2}, {"TAS", opTAS, amABY, modeABY, 5},
		{"SHY", opSHY, amABX, modeABX, 5}, {"STA", opSTA, amABX, modeABX, 5}, {"SHX", opSHX, amABY, modeABY, 5}, {"AHX", opAHX, amABY, modeABY, 5},

		{"LDY", opLDY, amIMM, modeIMM, 2}, {"LDA", opLDA, amIZX, modeIZX, 6}, {"LDX", opLDX, amIMM, modeIMM, 2}, {"LAX", opLAX, amIZX, modeIZX, 6},
		{"LDY", opLDY, amZP0, modeZP0, 3}, {"LDA", opLDA, amZP0, modeZP0, 3}, {"LDX", opLDX, amZP0, modeZP0, 3}, {"LAX", opLAX, amZP0, modeZP0, 3},
		{"TAY", opTAY, amIMP, modeIMP, 2}, {"LDA", opLDA, amIMM, modeIMM, 2}, {"TAX", opTAX, amIMP, modeIMP, 2}, {"LAX", opLAX, amIMM, modeIMM, 2},
		{"LDY", opLDY, amABS, modeABS, 4}, {"LDA", opLDA, amABS, modeABS, 4}, {"LDX", opLDX, amABS, modeABS, 4}, {"LAX", opLAX, amABS, modeABS, 4},

		{"BCS", opBCS, amREL, modeREL, 2}, {"LDA", opLDA, amIZY, modeIZY, 5}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"LAX", opLAX, amIZY, modeIZY, 5},
		{"LDY", opLDY, amZPX, modeZPX, 4}, {"LDA", opLDA, amZPX, modeZPX, 4}, {"LDX", opLDX, amZPY, modeZPY, 4}, {"LAX", opLAX, amZPY, modeZPY, 4},
		{"CLV", opCLV, amIMP, modeIMP, 2}, {"LDA", opLDA, amABY, modeABY, 4}, {"TSX", opTSX, amIMP, modeIMP, 2}, {"LAS", opLAS, amABY, modeABY, 4},
		{"LDY", opLDY, amABX, modeABX, 4}, {"LDA", opLDA, amABX, modeABX, 4}, {"LDX", opLDX, amABY, modeABY, 4}, {"LAX", opLAX, amABY, modeABY, 4},

		{"CPY", opCPY, amIMM, modeIMM, 2}, {"CMP", opCMP, amIZX, modeIZX, 6}, {"NOP", opNOP, amIMM, modeIMM, 2}, {"DCP", opDCP, amIZX, modeIZX, 8},
		{"CPY", opCPY, amZP0, modeZP0, 3}, {"CMP", opCMP, amZP0, modeZP0, 3}, {"DEC", opDEC, amZP0, modeZP0, 5}, {"DCP", opDCP, amZP0, modeZP0, 5},
		{"INY", opINY, amIMP, modeIMP, 2}, {"CMP", opCMP, amIMM, modeIMM, 2}, {"DEX", opDEX, amIMP, modeIMP, 2}, {"AXS", opAXS, amIMM, modeIMM, 2},
		{"CPY", opCPY, amABS, modeABS, 4}, {"CMP", opCMP, amABS, modeABS, 4}, {"DEC", opDEC, amABS, modeABS, 6}, {"DCP", opDCP, amABS, modeABS, 6},

		{"BNE", opBNE, amREL, modeREL, 2}, {"CMP", opCMP, amIZY, modeIZY, 5}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"DCP", opDCP, amIZY, modeIZY, 8},
		{"NOP", opNOP, amZPX, modeZPX, 4}, {"CMP", opCMP, amZPX, modeZPX, 4}, {"DEC", opDEC, amZPX, modeZPX, 6}, {"DCP", opDCP, amZPX, modeZPX, 6},
		{"CLD", opCLD, amIMP, modeIMP, 2}, {"CMP", opCMP, amABY, modeABY, 4}, {"NOP", opNOP, amIMP, modeIMP, 2}, {"DCP", opDCP, amABY, modeABY, 7},
		{"NOP", opNOP, amABX, modeABX, 4}, {"CMP", opCMP, amABX, modeABX, 4}, {"DEC", opDEC, amABX, modeABX, 7}, {"DCP", opDCP, amABX, modeABX, 7},

		{"CPX", opCPX, amIMM, modeIMM, 2}, {"SBC", opSBC, amIZX, modeIZX, 6}, {"NOP", opNOP, amIMM, modeIMM, 2}, {"ISC", opISC, amIZX, modeIZX, 8},
		{"CPX", opCPX, amZP0, modeZP0, 3}, {"SBC", opSBC, amZP0, modeZP0, 3}, {"INC", opINC, amZP0, modeZP0, 5}, {"ISC", opISC, amZP0, modeZP0, 5},
		{"INX", opINX, amIMP, modeIMP, 2}, {"SBC", opSBC, amIMM, modeIMM, 2}, {"NOP", opNOP, amIMP, modeIMP, 2}, {"SBC", opSBC, amIMM, modeIMM, 2},
		{"CPX", opCPX, amABS, modeABS, 4}, {"SBC", opSBC, amABS, modeABS, 4}, {"INC", opINC, amABS, modeABS, 6}, {"ISC", opISC, amABS, modeABS, 6},

		{"BEQ", opBEQ, amREL, modeREL, 2}, {"SBC", opSBC, amIZY, modeIZY, 5}, {"JAM", opJAM, amIMP, modeIMP, 2}, {"ISC", opISC, amIZY, modeIZY, 8},
		{"NOP", opNOP, amZPX, modeZPX, 4}, {"SBC", opSBC, amZPX, modeZPX, 4}, {"INC", opINC, amZPX, modeZPX, 6}, {"ISC", opISC, amZPX, modeZPX, 6},
		{"SED", opSED, amIMP, modeIMP, 2}, {"SBC", opSBC, amABY, modeABY, 4}, {"NOP", opNOP, amIMP, modeIMP, 2}, {"ISC", opISC, amABY, modeABY, 7},
		{"NOP", opNOP, amABX, modeABX, 4}, {"SBC", opSBC, amABX, modeABX, 4}, {"INC", opINC, amABX, modeABX, 7}, {"ISC", opISC, amABX, modeABX, 7},
	}
}
