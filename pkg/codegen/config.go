package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// AttributeRule injects an extra attribute above every generated type
// or field whose fully-qualified name matches the rule pattern.
type AttributeRule struct {
	Match     string `yaml:"match" json:"match"`
	Attribute string `yaml:"attribute" json:"attribute"`
}

// Config carries the customization rules for one generation pass. It is
// never mutated during generation and may be shared by concurrent
// passes.
type Config struct {
	// TypeAttributes and FieldAttributes are applied in order; every
	// matching rule contributes one attribute line.
	TypeAttributes  []AttributeRule
	FieldAttributes []AttributeRule

	// BTreeMaps lists patterns of map fields emitted as ordered maps
	// instead of hash maps.
	BTreeMaps []string

	// MappedTypes overrides resolution of exact fully-qualified schema
	// type names with a literal Rust type. Matching types are not
	// emitted as declarations.
	MappedTypes map[string]string

	// StripEnumPrefix removes the enum's own name from the front of its
	// value names where it forms a true camel-case prefix.
	StripEnumPrefix bool

	// WellKnownTypes substitutes the built-in well-known types with
	// their canonical Rust representation instead of generating
	// declarations for them.
	WellKnownTypes bool

	// ServiceGenerator, when set, receives one Service description per
	// service declaration. Services are skipped entirely when nil.
	ServiceGenerator ServiceGenerator
}

// NewConfig returns a Config with the default toggles enabled.
func NewConfig() *Config {
	return &Config{
		MappedTypes:     make(map[string]string),
		StripEnumPrefix: true,
		WellKnownTypes:  true,
	}
}

// configFile is the on-disk rule file shape, shared by the YAML and
// JSON decodings. Pointer fields distinguish "absent" from zero values
// so a rule file only overrides what it mentions.
type configFile struct {
	TypeAttributes  []AttributeRule   `yaml:"type_attributes" json:"type_attributes"`
	FieldAttributes []AttributeRule   `yaml:"field_attributes" json:"field_attributes"`
	BTreeMaps       []string          `yaml:"btree_maps" json:"btree_maps"`
	MappedTypes     map[string]string `yaml:"mapped_types" json:"mapped_types"`
	StripEnumPrefix *bool             `yaml:"strip_enum_prefix" json:"strip_enum_prefix"`
	WellKnownTypes  *bool             `yaml:"well_known_types" json:"well_known_types"`
}

// LoadFile merges a customization-rule file into the config. Files
// ending in .json are decoded as JSON, everything else as YAML.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var file configFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = gojson.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	c.TypeAttributes = append(c.TypeAttributes, file.TypeAttributes...)
	c.FieldAttributes = append(c.FieldAttributes, file.FieldAttributes...)
	c.BTreeMaps = append(c.BTreeMaps, file.BTreeMaps...)
	for name, ty := range file.MappedTypes {
		if !strings.HasPrefix(name, ".") {
			return fmt.Errorf("config file %s: mapped type %q is not fully qualified", path, name)
		}
		c.MappedTypes[name] = ty
	}
	if file.StripEnumPrefix != nil {
		c.StripEnumPrefix = *file.StripEnumPrefix
	}
	if file.WellKnownTypes != nil {
		c.WellKnownTypes = *file.WellKnownTypes
	}
	return nil
}
