// ABOUTME: Version constants
// ABOUTME: Product identification used by the CLI tools
package version

const (
	// Version is the library version.
	Version = "0.1.0"

	// Product is the product name reported by the CLI tools.
	Product = "Pulseplay Player"

	// Manufacturer identifies the project.
	Manufacturer = "Pulseplay"
)
