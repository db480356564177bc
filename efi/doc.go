// Package efi contains the firmware vocabulary shared by the shim and its collaborators.
//
// The types mirror the UEFI definitions for status codes, GUIDs, task priority levels and the
// Graphics Output Protocol (GOP), expressed as Go types. Boot services are modelled as small
// capability interfaces, so that a real firmware binding and the in-memory environment from
// package [github.com/BeatGlow/gopshim/efi/sim] are interchangeable.
package efi
