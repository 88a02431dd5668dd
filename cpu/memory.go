package cpu

const (
	MEMORY_SIZE = 1024 // Number of memory cells.
)

// Memory is the flat, zero-indexed data memory of the cpu.
type Memory struct {
	Data [MEMORY_SIZE]int64
}

// Len returns the number of cells.
func (mem *Memory) Len() int {
	return len(mem.Data)
}

// Read returns the cell at address.
func (mem *Memory) Read(address int64) (value int64, err error) {
	if address < 0 || address >= MEMORY_SIZE {
		err = ErrOutOfBounds(address)
		return
	}

	value = mem.Data[address]
	return
}

// Write sets the cell at address.
func (mem *Memory) Write(address int64, value int64) (err error) {
	if address < 0 || address >= MEMORY_SIZE {
		err = ErrOutOfBounds(address)
		return
	}

	mem.Data[address] = value
	return
}

// Slice returns a copy of the cells in [from, to), clamped to memory.
func (mem *Memory) Slice(from, to int) (cells []int64) {
	from = max(from, 0)
	to = min(to, MEMORY_SIZE)
	if from >= to {
		return
	}

	cells = make([]int64, to-from)
	copy(cells, mem.Data[from:to])
	return
}

// Reset zeros all cells.
func (mem *Memory) Reset() {
	clear(mem.Data[:])
}
