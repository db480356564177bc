//go:build linux

// Package ioctl wraps the ioctl system call for device drivers.
package ioctl

import (
	"fmt"
	"syscall"
	"unsafe"
)

// Mode is the ioctl direction encoded in a command.
type Mode uint8

// Modes
const (
	None Mode = iota
	Write
	Read
)

// Command to be sent over ioctl.
type Command uintptr

func (c Command) String() string {
	var (
		mode = Mode(c >> 30 & 0x03)
		size = c >> 16 & 0x3fff
		cmd  = c & 0xffff
		str  string
	)
	if mode&Write > 0 {
		str += " write"
	}
	if mode&Read > 0 {
		str += " read"
	}
	return fmt.Sprintf("ioctl%s (%d bytes) 0x%04x", str, size, uintptr(cmd))
}

// Do issues command against fd with ptr as the argument.
func Do(fd uintptr, command Command, ptr unsafe.Pointer) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, uintptr(command), uintptr(ptr))
	if errno != 0 {
		return fmt.Errorf("ioctl %s failed: %w", command, errno)
	}
	return nil
}
