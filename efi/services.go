package efi

// Handle is an EFI_HANDLE. The zero value is the NULL handle.
type Handle uintptr

// ScreenInfoProtocol is Apple's proprietary screen info protocol.
type ScreenInfoProtocol interface {
	GetInfo(baseAddress, frameBufferSize *uint64, bytesPerRow, width, height, depth *uint32) Status
}

// ProtocolLocator finds the first protocol interface registered under a GUID.
type ProtocolLocator interface {
	LocateProtocol(guid GUID) (any, Status)
}

// ProtocolInstaller installs a protocol interface on a handle. A zero *handle requests a new one.
type ProtocolInstaller interface {
	InstallProtocolInterface(handle *Handle, guid GUID, iface any) Status
}

// PoolAllocator allocates pool memory.
type PoolAllocator interface {
	AllocatePool(size uint64) ([]byte, Status)
}

// PriorityController raises and restores the task priority level.
type PriorityController interface {
	// RaiseTPL raises the priority and returns the previous level.
	RaiseTPL(newTPL TPL) TPL

	// RestoreTPL restores a level returned by RaiseTPL.
	RestoreTPL(oldTPL TPL)
}

// BootServices is the subset of EFI_BOOT_SERVICES the shim consumes.
type BootServices interface {
	ProtocolLocator
	ProtocolInstaller
	PoolAllocator
	PriorityController
}
