// Package drivers is a convenience package that registers all built-in
// backends. Import it with a blank identifier to make all backends
// available:
//
//	import _ "github.com/nuln/fbox/drivers"
package drivers

import (
	"github.com/nuln/fbox"
	_ "github.com/nuln/fbox/driver/buffered"
	_ "github.com/nuln/fbox/driver/mmap"
	_ "github.com/nuln/fbox/driver/rclone"
	_ "github.com/nuln/fbox/driver/unixfd"
)

// Init ensures all built-in backends are registered.
// This is called automatically by importing the package.
func Init() {}

// List returns a list of all registered backends.
func List() []string {
	return fbox.Backends()
}
