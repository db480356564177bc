package framebuffer

import (
	"fmt"

	"periph.io/x/host/v3/pmem"
)

// PhysicalMemory maps physical address ranges on demand. Mappings are kept until Close.
//
// Mapping physical memory requires privileges (typically root and a kernel that allows /dev/mem).
type PhysicalMemory struct {
	views []physicalView
}

type physicalView struct {
	base uint64
	view *pmem.View
}

// Slice implements [Memory].
func (m *PhysicalMemory) Slice(addr, size uint64) ([]byte, error) {
	for _, v := range m.views {
		if b := v.bytes(); addr >= v.base && addr+size <= v.base+uint64(len(b)) {
			offset := addr - v.base
			return b[offset : offset+size], nil
		}
	}

	view, err := pmem.Map(addr, int(size))
	if err != nil {
		return nil, fmt.Errorf("framebuffer: mapping %d bytes at %#x: %w", size, addr, err)
	}
	m.views = append(m.views, physicalView{base: addr, view: view})
	return []byte(view.Slice)[:size], nil
}

// Close unmaps all views.
func (m *PhysicalMemory) Close() (err error) {
	for _, v := range m.views {
		if cerr := v.view.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	m.views = nil
	return
}

func (v physicalView) bytes() []byte {
	return []byte(v.view.Slice)
}
