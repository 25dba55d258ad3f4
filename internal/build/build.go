// Package build holds build-time metadata for the ndkbridge binary.
package build

// Version is the application version.
// It defaults to "dev" and can be overwritten by linker flags.
var Version = "dev"
