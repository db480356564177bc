// Package sim provides an in-memory firmware environment.
//
// It implements [efi.BootServices] with a protocol database, a pool allocator and task priority
// tracking, plus a physical [Memory] map and a scriptable vendor [ScreenInfo] protocol. It is
// meant for tests and for running the shim hosted on a regular operating system.
package sim

import (
	"fmt"

	"github.com/BeatGlow/gopshim/efi"
)

// BootServices is a simulated boot services table.
type BootServices struct {
	// PoolLimit caps the total number of pool bytes handed out, 0 means unlimited.
	PoolLimit uint64

	// InstallStatus, when not Success, is returned by every InstallProtocolInterface call.
	InstallStatus efi.Status

	// Counters for tests.
	Locates  int
	Installs int
	Raises   int
	Restores int

	handles     []efi.Handle
	protocols   map[efi.Handle]map[efi.GUID]any
	lastHandle  efi.Handle
	allocations []uint64
	allocated   uint64
	tpl         efi.TPL
}

// New returns an empty environment running at TPL_APPLICATION.
func New() *BootServices {
	return &BootServices{
		protocols: make(map[efi.Handle]map[efi.GUID]any),
		tpl:       efi.TPLApplication,
	}
}

// LocateProtocol returns the first interface installed under guid, in handle creation order.
func (bs *BootServices) LocateProtocol(guid efi.GUID) (any, efi.Status) {
	bs.Locates++
	for _, handle := range bs.handles {
		if iface, ok := bs.protocols[handle][guid]; ok {
			return iface, efi.Success
		}
	}
	return nil, efi.NotFound
}

// InstallProtocolInterface installs iface under guid. A zero *handle allocates a new handle.
func (bs *BootServices) InstallProtocolInterface(handle *efi.Handle, guid efi.GUID, iface any) efi.Status {
	if handle == nil {
		return efi.InvalidParameter
	}
	if bs.InstallStatus != efi.Success {
		return bs.InstallStatus
	}

	if *handle == 0 {
		bs.lastHandle++
		bs.handles = append(bs.handles, bs.lastHandle)
		bs.protocols[bs.lastHandle] = make(map[efi.GUID]any)
		*handle = bs.lastHandle
	}

	protocols, ok := bs.protocols[*handle]
	if !ok {
		return efi.InvalidParameter
	}
	if _, exists := protocols[guid]; exists {
		return efi.InvalidParameter
	}
	protocols[guid] = iface
	bs.Installs++
	return efi.Success
}

// Handles returns the handles that carry guid.
func (bs *BootServices) Handles(guid efi.GUID) []efi.Handle {
	var out []efi.Handle
	for _, handle := range bs.handles {
		if _, ok := bs.protocols[handle][guid]; ok {
			out = append(out, handle)
		}
	}
	return out
}

// AllocatePool hands out zeroed pool memory.
func (bs *BootServices) AllocatePool(size uint64) ([]byte, efi.Status) {
	if bs.PoolLimit > 0 && bs.allocated+size > bs.PoolLimit {
		return nil, efi.OutOfResources
	}
	bs.allocated += size
	bs.allocations = append(bs.allocations, size)
	return make([]byte, size), efi.Success
}

// Allocations returns the sizes of all pool allocations, in order.
func (bs *BootServices) Allocations() []uint64 {
	return append([]uint64(nil), bs.allocations...)
}

// RaiseTPL raises the task priority level. Lowering the level through RaiseTPL is a firmware
// contract violation and panics, as an ASSERT build of the firmware would.
func (bs *BootServices) RaiseTPL(newTPL efi.TPL) efi.TPL {
	if newTPL < bs.tpl {
		panic(fmt.Sprintf("sim: RaiseTPL(%s) below current %s", newTPL, bs.tpl))
	}
	bs.Raises++
	old := bs.tpl
	bs.tpl = newTPL
	return old
}

// RestoreTPL restores the task priority level.
func (bs *BootServices) RestoreTPL(oldTPL efi.TPL) {
	if oldTPL > bs.tpl {
		panic(fmt.Sprintf("sim: RestoreTPL(%s) above current %s", oldTPL, bs.tpl))
	}
	bs.Restores++
	bs.tpl = oldTPL
}

// TPL returns the current task priority level.
func (bs *BootServices) TPL() efi.TPL {
	return bs.tpl
}

var _ efi.BootServices = (*BootServices)(nil)
