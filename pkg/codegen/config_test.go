package codegen

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal("failed to write config file:", err)
	}
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeConfigFile(t, "ferrite.yaml", `
type_attributes:
  - match: .foo.Bar
    attribute: "#[derive(Serialize)]"
field_attributes:
  - match: id
    attribute: "#[serde(default)]"
btree_maps:
  - settings
mapped_types:
  .foo.Special: "crate::Special"
strip_enum_prefix: false
`)

	config := NewConfig()
	if err := config.LoadFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(config.TypeAttributes) != 1 || config.TypeAttributes[0].Match != ".foo.Bar" {
		t.Errorf("unexpected type attributes: %+v", config.TypeAttributes)
	}
	if len(config.FieldAttributes) != 1 || config.FieldAttributes[0].Attribute != "#[serde(default)]" {
		t.Errorf("unexpected field attributes: %+v", config.FieldAttributes)
	}
	if len(config.BTreeMaps) != 1 || config.BTreeMaps[0] != "settings" {
		t.Errorf("unexpected btree maps: %+v", config.BTreeMaps)
	}
	if config.MappedTypes[".foo.Special"] != "crate::Special" {
		t.Errorf("unexpected mapped types: %+v", config.MappedTypes)
	}
	if config.StripEnumPrefix {
		t.Error("expected strip_enum_prefix to be disabled")
	}
	if !config.WellKnownTypes {
		t.Error("well_known_types default must survive an absent key")
	}
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeConfigFile(t, "ferrite.json", `{
		"type_attributes": [{"match": ".foo", "attribute": "#[derive(Eq)]"}],
		"well_known_types": false
	}`)

	config := NewConfig()
	if err := config.LoadFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(config.TypeAttributes) != 1 || config.TypeAttributes[0].Attribute != "#[derive(Eq)]" {
		t.Errorf("unexpected type attributes: %+v", config.TypeAttributes)
	}
	if config.WellKnownTypes {
		t.Error("expected well_known_types to be disabled")
	}
	if !config.StripEnumPrefix {
		t.Error("strip_enum_prefix default must survive an absent key")
	}
}

func TestLoadFile_RelativeMappedType(t *testing.T) {
	path := writeConfigFile(t, "ferrite.yaml", `
mapped_types:
  foo.Special: "crate::Special"
`)
	if err := NewConfig().LoadFile(path); err == nil {
		t.Error("expected an error for a non-absolute mapped type")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if err := NewConfig().LoadFile("/nonexistent/ferrite.yaml"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := writeConfigFile(t, "ferrite.json", "not json")
	if err := NewConfig().LoadFile(path); err == nil {
		t.Error("expected an error for an invalid config file")
	}
}
