package codegen

// wellKnownTypes maps the closed set of well-known schema types to
// their canonical Rust representation: wrapper types collapse to
// primitives, Empty to the unit type, and the reflection types to their
// ferrite_types counterparts. Substitution is controlled by
// Config.WellKnownTypes.
var wellKnownTypes = map[string]string{
	".google.protobuf.BoolValue":   "bool",
	".google.protobuf.BytesValue":  "::std::vec::Vec<u8>",
	".google.protobuf.DoubleValue": "f64",
	".google.protobuf.Empty":       "()",
	".google.protobuf.FloatValue":  "f32",
	".google.protobuf.Int32Value":  "i32",
	".google.protobuf.Int64Value":  "i64",
	".google.protobuf.StringValue": "::std::string::String",
	".google.protobuf.UInt32Value": "u32",
	".google.protobuf.UInt64Value": "u64",

	".google.protobuf.Any":                      "::ferrite_types::Any",
	".google.protobuf.Api":                      "::ferrite_types::Api",
	".google.protobuf.DescriptorProto":          "::ferrite_types::DescriptorProto",
	".google.protobuf.Duration":                 "::ferrite_types::Duration",
	".google.protobuf.Enum":                     "::ferrite_types::Enum",
	".google.protobuf.EnumDescriptorProto":      "::ferrite_types::EnumDescriptorProto",
	".google.protobuf.EnumOptions":              "::ferrite_types::EnumOptions",
	".google.protobuf.EnumValue":                "::ferrite_types::EnumValue",
	".google.protobuf.EnumValueDescriptorProto": "::ferrite_types::EnumValueDescriptorProto",
	".google.protobuf.EnumValueOptions":         "::ferrite_types::EnumValueOptions",
	".google.protobuf.ExtensionRangeOptions":    "::ferrite_types::ExtensionRangeOptions",
	".google.protobuf.Field":                    "::ferrite_types::Field",
	".google.protobuf.FieldDescriptorProto":     "::ferrite_types::FieldDescriptorProto",
	".google.protobuf.FieldMask":                "::ferrite_types::FieldMask",
	".google.protobuf.FieldOptions":             "::ferrite_types::FieldOptions",
	".google.protobuf.FileDescriptorProto":      "::ferrite_types::FileDescriptorProto",
	".google.protobuf.FileDescriptorSet":        "::ferrite_types::FileDescriptorSet",
	".google.protobuf.FileOptions":              "::ferrite_types::FileOptions",
	".google.protobuf.GeneratedCodeInfo":        "::ferrite_types::GeneratedCodeInfo",
	".google.protobuf.ListValue":                "::ferrite_types::ListValue",
	".google.protobuf.MessageOptions":           "::ferrite_types::MessageOptions",
	".google.protobuf.Method":                   "::ferrite_types::Method",
	".google.protobuf.MethodDescriptorProto":    "::ferrite_types::MethodDescriptorProto",
	".google.protobuf.MethodOptions":            "::ferrite_types::MethodOptions",
	".google.protobuf.Mixin":                    "::ferrite_types::Mixin",
	".google.protobuf.NullValue":                "::ferrite_types::NullValue",
	".google.protobuf.OneofDescriptorProto":     "::ferrite_types::OneofDescriptorProto",
	".google.protobuf.OneofOptions":             "::ferrite_types::OneofOptions",
	".google.protobuf.Option":                   "::ferrite_types::Option",
	".google.protobuf.ServiceDescriptorProto":   "::ferrite_types::ServiceDescriptorProto",
	".google.protobuf.ServiceOptions":           "::ferrite_types::ServiceOptions",
	".google.protobuf.SourceCodeInfo":           "::ferrite_types::SourceCodeInfo",
	".google.protobuf.SourceContext":            "::ferrite_types::SourceContext",
	".google.protobuf.Struct":                   "::ferrite_types::Struct",
	".google.protobuf.Timestamp":                "::ferrite_types::Timestamp",
	".google.protobuf.Type":                     "::ferrite_types::Type",
	".google.protobuf.UninterpretedOption":      "::ferrite_types::UninterpretedOption",
	".google.protobuf.Value":                    "::ferrite_types::Value",
}
