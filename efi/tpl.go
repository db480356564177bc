package efi

import "fmt"

// TPL is an EFI task priority level.
type TPL uint64

// Task priority levels.
const (
	TPLApplication TPL = 4
	TPLCallback    TPL = 8
	TPLNotify      TPL = 16
	TPLHighLevel   TPL = 31
)

func (t TPL) String() string {
	switch t {
	case TPLApplication:
		return "TPL_APPLICATION"
	case TPLCallback:
		return "TPL_CALLBACK"
	case TPLNotify:
		return "TPL_NOTIFY"
	case TPLHighLevel:
		return "TPL_HIGH_LEVEL"
	default:
		return fmt.Sprintf("TPL(%d)", uint64(t))
	}
}
