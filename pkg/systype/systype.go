// Package systype defines the closed set of toolkit system types and the
// static per-system configuration paths shared by the dockit family of CLIs.
package systype

import "fmt"

// System identifies which toolkit a config or metadata operation targets.
type System int

const (
	// ADR is the Architecture Decision Record toolkit.
	ADR System = iota
	// RunNote is the RunNotes development-log toolkit.
	RunNote
	// Req is the Requirements tracking toolkit.
	Req
)

// String returns the lowercase name used in CLI flags and config keys.
func (s System) String() string {
	switch s {
	case ADR:
		return "adr"
	case RunNote:
		return "runnote"
	case Req:
		return "req"
	}
	panic(fmt.Sprintf("systype: unknown System(%d)", int(s)))
}

// ParseSystem converts a CLI flag value into a System.
func ParseSystem(s string) (System, error) {
	switch s {
	case "adr":
		return ADR, nil
	case "runnote", "runnotes":
		return RunNote, nil
	case "req", "reqs":
		return Req, nil
	}
	return 0, fmt.Errorf("systype: unknown system %q (want adr, runnote, or req)", s)
}

// SystemPaths holds the fixed file locations and config namespace for one
// system type. The table is static and never mutated.
type SystemPaths struct {
	// GlobalConfigName is the dotfile name under the user's home directory.
	GlobalConfigName string
	// ProjectConfigName is the file name looked up at the project root.
	ProjectConfigName string
	// RootKey is the top-level config key namespacing this system's settings.
	RootKey string
}

// Paths returns the static SystemPaths entry for s.
func Paths(s System) SystemPaths {
	switch s {
	case ADR:
		return SystemPaths{
			GlobalConfigName:  ".adr.yaml",
			ProjectConfigName: ".adr.yaml",
			RootKey:           "adr",
		}
	case RunNote:
		return SystemPaths{
			GlobalConfigName:  ".runnotes.yaml",
			ProjectConfigName: ".runnotes.yaml",
			RootKey:           "runnotes",
		}
	case Req:
		return SystemPaths{
			GlobalConfigName:  ".reqs.yaml",
			ProjectConfigName: ".reqs.yaml",
			RootKey:           "reqs",
		}
	}
	panic(fmt.Sprintf("systype: unknown System(%d)", int(s)))
}
