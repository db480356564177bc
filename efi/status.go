package efi

import "fmt"

// Status is an EFI_STATUS value.
//
// Status implements error, but only non-success values should travel as errors; use [Status.Err]
// to convert a status returned by a firmware call.
type Status uint64

const errorBit = 1 << 63

// Status codes used by the shim and its collaborators.
const (
	Success          Status = 0
	LoadError        Status = errorBit | 1
	InvalidParameter Status = errorBit | 2
	Unsupported      Status = errorBit | 3
	BadBufferSize    Status = errorBit | 4
	BufferTooSmall   Status = errorBit | 5
	NotReady         Status = errorBit | 6
	DeviceError      Status = errorBit | 7
	WriteProtected   Status = errorBit | 8
	OutOfResources   Status = errorBit | 9
	NotFound         Status = errorBit | 14
	AccessDenied     Status = errorBit | 15
	AlreadyStarted   Status = errorBit | 20
)

var statusNames = map[Status]string{
	Success:          "Success",
	LoadError:        "Load Error",
	InvalidParameter: "Invalid Parameter",
	Unsupported:      "Unsupported",
	BadBufferSize:    "Bad Buffer Size",
	BufferTooSmall:   "Buffer Too Small",
	NotReady:         "Not Ready",
	DeviceError:      "Device Error",
	WriteProtected:   "Write Protected",
	OutOfResources:   "Out of Resources",
	NotFound:         "Not Found",
	AccessDenied:     "Access Denied",
	AlreadyStarted:   "Already Started",
}

// IsError reports whether the status has the error bit set.
func (s Status) IsError() bool {
	return s&errorBit != 0
}

// Err returns nil for [Success] and the status itself otherwise.
func (s Status) Err() error {
	if s == Success {
		return nil
	}
	return s
}

func (s Status) Error() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	if s.IsError() {
		return fmt.Sprintf("error %d", uint64(s&^errorBit))
	}
	return fmt.Sprintf("warning %d", uint64(s))
}

func (s Status) String() string {
	return s.Error()
}
