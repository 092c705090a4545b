package config

import "fmt"

// Build carries the values stamped in at link time (or left at their
// defaults during development).
var Build = struct {
	Name    string
	Version string
}{
	Name:    "stackwm",
	Version: "dev",
}

// Summary returns the "name-version" string printed by the -v flag.
func Summary() string {
	return fmt.Sprintf("%s-%s", Build.Name, Build.Version)
}
