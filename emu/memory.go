package emu

// InstructionMemory is a word-addressed, read-only instruction store.
// Addresses are byte addresses; instructions are four bytes apart starting
// at address 0. An out-of-range read returns 0, treated as an all-zero
// (INVALID) encoding by the decoder — this is a deliberate simplification,
// not a trap.
type InstructionMemory struct {
	words []uint32
}

// NewInstructionMemory creates an instruction memory preloaded with words.
func NewInstructionMemory(words []uint32) *InstructionMemory {
	m := &InstructionMemory{words: make([]uint32, len(words))}
	copy(m.words, words)
	return m
}

// ReadWord returns the 32-bit word at the given byte address.
func (m *InstructionMemory) ReadWord(addr uint32) uint32 {
	idx := addr / 4
	if int(idx) >= len(m.words) {
		return 0
	}
	return m.words[idx]
}

// Len returns the number of instructions loaded.
func (m *InstructionMemory) Len() int {
	return len(m.words)
}

// DataMemory is a byte-addressed load/store memory. Out-of-range reads
// return 0; out-of-range writes are silently ignored. There are no
// exceptions or traps.
type DataMemory struct {
	bytes []byte
}

// NewDataMemory creates a zero-filled data memory of the given size in
// bytes.
func NewDataMemory(size int) *DataMemory {
	return &DataMemory{bytes: make([]byte, size)}
}

// ReadByte reads a single byte.
func (m *DataMemory) ReadByte(addr uint32) uint8 {
	if int(addr) >= len(m.bytes) {
		return 0
	}
	return m.bytes[addr]
}

// WriteByte writes a single byte.
func (m *DataMemory) WriteByte(addr uint32, value uint8) {
	if int(addr) >= len(m.bytes) {
		return
	}
	m.bytes[addr] = value
}

// ReadHalf reads a little-endian 16-bit halfword.
func (m *DataMemory) ReadHalf(addr uint32) uint16 {
	return uint16(m.ReadByte(addr)) | uint16(m.ReadByte(addr+1))<<8
}

// WriteHalf writes a little-endian 16-bit halfword.
func (m *DataMemory) WriteHalf(addr uint32, value uint16) {
	m.WriteByte(addr, uint8(value))
	m.WriteByte(addr+1, uint8(value>>8))
}

// ReadWord reads a little-endian 32-bit word.
func (m *DataMemory) ReadWord(addr uint32) uint32 {
	return uint32(m.ReadHalf(addr)) | uint32(m.ReadHalf(addr+2))<<16
}

// WriteWord writes a little-endian 32-bit word.
func (m *DataMemory) WriteWord(addr uint32, value uint32) {
	m.WriteHalf(addr, uint16(value))
	m.WriteHalf(addr+2, uint16(value>>16))
}
