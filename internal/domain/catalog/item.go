// Package catalog holds the immutable item definitions loaded for a run.
package catalog

import "regexp"

// ItemType describes how an item is delivered. It is descriptive metadata
// for grouping and display; engine behavior is fully determined by which
// script bodies are present on the item.
type ItemType string

const (
	TypeBrew              ItemType = "brew"
	TypeBrewCask          ItemType = "brew_cask"
	TypeMas               ItemType = "mas"
	TypeDirectDownloadDMG ItemType = "direct_download_dmg"
	TypeDirectDownloadPKG ItemType = "direct_download_pkg"
	TypeProtoTool         ItemType = "proto_tool"
	TypeSystemConfig      ItemType = "system_config"
	TypeLaunchAgent       ItemType = "launch_agent"
	TypeShellScript       ItemType = "shell_script"
)

// itemTypes is the set of recognized type values.
var itemTypes = map[ItemType]bool{
	TypeBrew:              true,
	TypeBrewCask:          true,
	TypeMas:               true,
	TypeDirectDownloadDMG: true,
	TypeDirectDownloadPKG: true,
	TypeProtoTool:         true,
	TypeSystemConfig:      true,
	TypeLaunchAgent:       true,
	TypeShellScript:       true,
}

// Valid returns true if the type is one of the recognized values.
func (t ItemType) Valid() bool {
	return itemTypes[t]
}

// String returns the string representation.
func (t ItemType) String() string {
	return string(t)
}

// Phase is one of the lifecycle script slots of an item.
type Phase string

const (
	PhaseValidate  Phase = "validate"
	PhaseInstall   Phase = "install"
	PhaseConfigure Phase = "configure"
	PhaseUninstall Phase = "uninstall"
)

// String returns the string representation.
func (p Phase) String() string {
	return string(p)
}

// idPattern validates item id format: letters, digits, underscores, hyphens.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidID reports whether s is a well-formed item id.
func ValidID(s string) bool {
	return idPattern.MatchString(s)
}

// Item is one installable or configurable unit. Items are read-only after
// load and live for the lifetime of the process.
type Item struct {
	ID                string
	Name              string
	Description       string
	Category          string
	Type              ItemType
	SelectedByDefault bool
	RequiresLicense   bool
	Dependencies      []string
	Tags              []string
	URL               string
	Notes             string

	// ConfigDir is the absolute path of the directory holding the item's
	// definition document; scripts receive it as ITEM_CONFIG_DIR.
	ConfigDir string

	// SourceFile is the document the item was loaded from.
	SourceFile string

	ValidateScript  string
	InstallScript   string
	ConfigureScript string
	UninstallScript string
}

// Script returns the body for the given phase and whether one is present.
func (i Item) Script(phase Phase) (string, bool) {
	var body string
	switch phase {
	case PhaseValidate:
		body = i.ValidateScript
	case PhaseInstall:
		body = i.InstallScript
	case PhaseConfigure:
		body = i.ConfigureScript
	case PhaseUninstall:
		body = i.UninstallScript
	}
	return body, body != ""
}

// HasScript returns true if the item defines a body for the phase.
func (i Item) HasScript(phase Phase) bool {
	_, ok := i.Script(phase)
	return ok
}
