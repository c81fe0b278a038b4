package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptSection accepts either a bare multi-line string or a mapping with
// a "script" key, so both document shapes load identically:
//
//	install: |
//	  brew install jq
//
//	install:
//	  script: |
//	    brew install jq
type scriptSection struct {
	Script string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *scriptSection) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&s.Script)
	case yaml.MappingNode:
		var wrapper struct {
			Script string `yaml:"script"`
		}
		if err := node.Decode(&wrapper); err != nil {
			return err
		}
		s.Script = wrapper.Script
		return nil
	default:
		return fmt.Errorf("script section must be a string or a mapping with a script key")
	}
}

// itemDocument is the wire shape of one item definition.
type itemDocument struct {
	ID                string        `yaml:"id"`
	Name              string        `yaml:"name"`
	Description       string        `yaml:"description"`
	Type              string        `yaml:"type"`
	Category          string        `yaml:"category"`
	SelectedByDefault bool          `yaml:"selected_by_default"`
	RequiresLicense   bool          `yaml:"requires_license"`
	Dependencies      []string      `yaml:"dependencies"`
	Tags              []string      `yaml:"tags"`
	URL               string        `yaml:"url"`
	Notes             string        `yaml:"notes"`
	Install           scriptSection `yaml:"install"`
	Validate          scriptSection `yaml:"validate"`
	Configure         scriptSection `yaml:"configure"`
	Uninstall         scriptSection `yaml:"uninstall"`
}

// ParseItem parses and validates one item definition document.
// path is used for error context only; ConfigDir and SourceFile are
// filled in by the loader.
func ParseItem(data []byte, path string) (Item, error) {
	var doc itemDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Item{}, NewItemParseError(path, err)
	}

	for field, value := range map[string]string{
		"id":       doc.ID,
		"name":     doc.Name,
		"type":     doc.Type,
		"category": doc.Category,
	} {
		if value == "" {
			return Item{}, NewFieldMissingError(path, field)
		}
	}

	if !ValidID(doc.ID) {
		return Item{}, NewIDInvalidError(path, doc.ID)
	}

	typ := ItemType(doc.Type)
	if !typ.Valid() {
		return Item{}, NewTypeUnknownError(path, doc.Type)
	}

	for _, dep := range doc.Dependencies {
		if dep == "" || !ValidID(dep) {
			return Item{}, NewIDInvalidError(path, dep)
		}
	}

	return Item{
		ID:                doc.ID,
		Name:              doc.Name,
		Description:       doc.Description,
		Category:          doc.Category,
		Type:              typ,
		SelectedByDefault: doc.SelectedByDefault,
		RequiresLicense:   doc.RequiresLicense,
		Dependencies:      doc.Dependencies,
		Tags:              doc.Tags,
		URL:               doc.URL,
		Notes:             doc.Notes,
		ValidateScript:    doc.Validate.Script,
		InstallScript:     doc.Install.Script,
		ConfigureScript:   doc.Configure.Script,
		UninstallScript:   doc.Uninstall.Script,
	}, nil
}
