package sim

import (
	"errors"
	"sort"
)

// ErrUnmapped is returned when an address range is not backed by a region.
var ErrUnmapped = errors.New("sim: address range not mapped")

type region struct {
	base uint64
	mem  []byte
}

// Memory is a sparse physical address space.
type Memory struct {
	regions []region
}

// Map backs the range starting at base with mem.
func (m *Memory) Map(base uint64, mem []byte) {
	m.regions = append(m.regions, region{base: base, mem: mem})
	sort.Slice(m.regions, func(i, j int) bool {
		return m.regions[i].base < m.regions[j].base
	})
}

// Alloc maps a zeroed region of size bytes at base and returns it.
func (m *Memory) Alloc(base, size uint64) []byte {
	mem := make([]byte, size)
	m.Map(base, mem)
	return mem
}

// Slice returns the size bytes at addr. The whole range must fall inside one region.
func (m *Memory) Slice(addr, size uint64) ([]byte, error) {
	for _, r := range m.regions {
		end := r.base + uint64(len(r.mem))
		if addr >= r.base && addr+size <= end && addr+size >= addr {
			offset := addr - r.base
			return r.mem[offset : offset+size : offset+size], nil
		}
	}
	return nil, ErrUnmapped
}
