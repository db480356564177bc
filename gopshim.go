// Package gopshim synthesizes a Graphics Output Protocol from a vendor screen info protocol.
//
// Some firmware (notably older Apple machines) never publishes EFI_GRAPHICS_OUTPUT_PROTOCOL, but
// describes its linear frame buffer through a proprietary screen info protocol. A [Driver] checks
// whether a GOP is already available and, if not, builds a single mode from the vendor geometry,
// configures a block transfer engine against the frame buffer and installs a [GraphicsOutput]
// under the standard GUID, so later boot stages can draw without knowing the difference.
package gopshim

import (
	"log"
	"os"

	"github.com/BeatGlow/gopshim/efi"
)

var debug bool

func init() {
	debug = os.Getenv("GOPSHIM_DEBUG") != ""
}

// Config is the shim configuration.
type Config struct {
	// BltPriority is the task priority level Blt calls are raised to.
	BltPriority efi.TPL

	// Source overrides the geometry source. When nil, the vendor screen info protocol is
	// located through boot services.
	Source GeometrySource

	// Logger receives progress and error messages, nil uses the standard logger.
	Logger *log.Logger
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	BltPriority: efi.TPLNotify,
}

func (config *Config) withDefaults() Config {
	c := DefaultConfig
	if config != nil {
		c = *config
	}
	if c.BltPriority == 0 {
		c.BltPriority = DefaultConfig.BltPriority
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c
}
