// Package codegen lowers fully-resolved protobuf file descriptors into
// Rust type declarations annotated with #[ferrite(...)] wire metadata
// for the ferrite runtime codec.
package codegen

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/ferrite-rs/protoc-gen-ferrite/internal/ident"
	"github.com/ferrite-rs/protoc-gen-ferrite/internal/msggraph"
)

// Field numbers from descriptor.proto, used to build structural paths
// into SourceCodeInfo.
const (
	fileMessagesPath   = 4
	fileEnumsPath      = 5
	fileServicesPath   = 6
	messageFieldsPath  = 2
	messageNestedPath  = 3
	messageEnumsPath   = 4
	messageOneofsPath  = 8
	enumValuesPath     = 2
	serviceMethodsPath = 2
)

type syntax int

const (
	proto2 syntax = iota
	proto3
)

// generator is the emission state for one file: the current module
// scope, the structural path into the descriptor tree, the indentation
// depth, and the output buffer. It is created per file and never shared.
type generator struct {
	config *Config
	graph  *msggraph.Graph
	pkg    string
	syntax syntax
	index  *commentIndex
	depth  int
	path   []int32
	buf    strings.Builder
}

// Generate lowers one descriptor file into Rust type declarations:
// messages, then enums, then (when a ServiceGenerator is configured)
// one service description per service followed by a single finalize
// call. Any schema-consistency fault aborts the whole file; partial
// output is never returned.
func Generate(config *Config, graph *msggraph.Graph, file *descriptorpb.FileDescriptorProto) (string, error) {
	if file.SourceCodeInfo == nil {
		return "", fmt.Errorf("file %s: no source code info", file.GetName())
	}

	var syn syntax
	switch file.GetSyntax() {
	case "", "proto2":
		syn = proto2
	case "proto3":
		syn = proto3
	default:
		return "", fmt.Errorf("file %s: unknown syntax %q", file.GetName(), file.GetSyntax())
	}

	g := &generator{
		config: config,
		graph:  graph,
		pkg:    file.GetPackage(),
		syntax: syn,
		index:  newCommentIndex(file.SourceCodeInfo),
	}

	slog.Debug("generating file", "file", file.GetName(), "package", g.pkg)

	g.path = append(g.path, fileMessagesPath)
	for i, message := range file.GetMessageType() {
		g.path = append(g.path, int32(i))
		err := g.appendMessage(message)
		g.path = g.path[:len(g.path)-1]
		if err != nil {
			return "", err
		}
	}
	g.path = g.path[:len(g.path)-1]

	g.path = append(g.path, fileEnumsPath)
	for i, enum := range file.GetEnumType() {
		g.path = append(g.path, int32(i))
		err := g.appendEnum(enum)
		g.path = g.path[:len(g.path)-1]
		if err != nil {
			return "", err
		}
	}
	g.path = g.path[:len(g.path)-1]

	if config.ServiceGenerator != nil {
		g.path = append(g.path, fileServicesPath)
		for i, service := range file.GetService() {
			g.path = append(g.path, int32(i))
			err := g.pushService(service)
			g.path = g.path[:len(g.path)-1]
			if err != nil {
				return "", err
			}
		}
		g.path = g.path[:len(g.path)-1]

		if err := config.ServiceGenerator.Finalize(&g.buf); err != nil {
			return "", fmt.Errorf("file %s: finalize services: %w", file.GetName(), err)
		}
	}

	return g.buf.String(), nil
}

// ModulePath returns the Rust module path for a descriptor file,
// derived from its package name.
func ModulePath(file *descriptorpb.FileDescriptorProto) []string {
	var parts []string
	for _, part := range strings.Split(file.GetPackage(), ".") {
		if part != "" {
			parts = append(parts, ident.ToSnake(part))
		}
	}
	return parts
}

// indexedField pairs a field descriptor with its index in the original
// declaration order, preserved for structural-path comment lookup.
type indexedField struct {
	desc  *descriptorpb.FieldDescriptorProto
	index int
}

func (g *generator) appendMessage(message *descriptorpb.DescriptorProto) error {
	defer g.truncatePath(len(g.path))

	messageName := message.GetName()
	fqMessageName := g.fqName(messageName)
	slog.Debug("message", "name", fqMessageName)

	// Well-known and user-overridden types already have a canonical
	// Rust representation; nothing is emitted for them.
	if _, ok := g.knownType(fqMessageName); ok {
		return nil
	}

	// Split the nested types into genuine nested messages, keeping their
	// path index for comment lookup, and synthetic map entries, indexed
	// by fully-qualified name and reduced to their key/value pair.
	type nestedType struct {
		desc  *descriptorpb.DescriptorProto
		index int
	}
	type mapEntry struct {
		key, value *descriptorpb.FieldDescriptorProto
	}
	var nestedTypes []nestedType
	mapTypes := make(map[string]mapEntry)
	for i, nested := range message.GetNestedType() {
		if !nested.GetOptions().GetMapEntry() {
			nestedTypes = append(nestedTypes, nestedType{nested, i})
			continue
		}
		fields := nested.GetField()
		if len(fields) != 2 || fields[0].GetName() != "key" || fields[1].GetName() != "value" {
			return fmt.Errorf("message %s: malformed map entry %s", fqMessageName, nested.GetName())
		}
		mapTypes[fqMessageName+"."+nested.GetName()] = mapEntry{fields[0], fields[1]}
	}

	// Proto3 optional fields arrive wrapped in a synthetic single-member
	// oneof that exists only to carry presence. The field is lowered as a
	// plain optional field; the synthetic declaration is dropped and may
	// not even have a source location.
	syntheticOneofs := make(map[int32]bool)
	for _, field := range message.GetField() {
		if field.GetProto3Optional() && field.OneofIndex != nil {
			syntheticOneofs[field.GetOneofIndex()] = true
		}
	}

	// Split the fields into plain fields and oneof members grouped by
	// oneof index, again preserving declaration indexes.
	var fields []indexedField
	oneofFields := make(map[int32][]indexedField)
	for i, field := range message.GetField() {
		if field.OneofIndex != nil && !field.GetProto3Optional() {
			idx := field.GetOneofIndex()
			oneofFields[idx] = append(oneofFields[idx], indexedField{field, i})
		} else {
			fields = append(fields, indexedField{field, i})
		}
	}
	declaredOneofs := 0
	for i := range message.GetOneofDecl() {
		if !syntheticOneofs[int32(i)] {
			declaredOneofs++
		}
	}
	if len(oneofFields) != declaredOneofs {
		return fmt.Errorf("message %s: fields reference %d oneof groups, %d declared",
			fqMessageName, len(oneofFields), declaredOneofs)
	}

	if err := g.appendDoc(); err != nil {
		return err
	}
	g.pushIndent()
	g.buf.WriteString("#[derive(Clone, PartialEq, Message)]\n")
	g.appendTypeAttributes(fqMessageName)
	g.pushIndent()
	g.buf.WriteString("pub struct ")
	g.buf.WriteString(ident.ToUpperCamel(messageName))
	g.buf.WriteString(" {\n")

	g.depth++
	g.path = append(g.path, messageFieldsPath)
	for _, field := range fields {
		g.path = append(g.path, int32(field.index))
		var err error
		if entry, ok := mapTypes[field.desc.GetTypeName()]; ok {
			err = g.appendMapField(fqMessageName, field.desc, entry.key, entry.value)
		} else {
			err = g.appendField(fqMessageName, field.desc)
		}
		g.path = g.path[:len(g.path)-1]
		if err != nil {
			return err
		}
	}
	g.path = g.path[:len(g.path)-1]

	g.path = append(g.path, messageOneofsPath)
	for i, oneof := range message.GetOneofDecl() {
		if syntheticOneofs[int32(i)] {
			continue
		}
		g.path = append(g.path, int32(i))
		err := g.appendOneofField(messageName, fqMessageName, oneof, oneofFields[int32(i)])
		g.path = g.path[:len(g.path)-1]
		if err != nil {
			return err
		}
	}
	g.path = g.path[:len(g.path)-1]
	g.depth--

	g.pushIndent()
	g.buf.WriteString("}\n")

	if len(nestedTypes) > 0 || len(message.GetEnumType()) > 0 || len(oneofFields) > 0 {
		g.pushModule(messageName)

		g.path = append(g.path, messageNestedPath)
		for _, nested := range nestedTypes {
			g.path = append(g.path, int32(nested.index))
			err := g.appendMessage(nested.desc)
			g.path = g.path[:len(g.path)-1]
			if err != nil {
				return err
			}
		}
		g.path = g.path[:len(g.path)-1]

		g.path = append(g.path, messageEnumsPath)
		for i, nested := range message.GetEnumType() {
			g.path = append(g.path, int32(i))
			err := g.appendEnum(nested)
			g.path = g.path[:len(g.path)-1]
			if err != nil {
				return err
			}
		}
		g.path = g.path[:len(g.path)-1]

		for i := range message.GetOneofDecl() {
			idx := int32(i)
			if syntheticOneofs[idx] {
				continue
			}
			if err := g.appendOneof(fqMessageName, message.GetOneofDecl()[i], idx, oneofFields[idx]); err != nil {
				return err
			}
		}

		g.popModule()
	}
	return nil
}

func (g *generator) appendField(msgName string, field *descriptorpb.FieldDescriptorProto) error {
	if field.GetType() == descriptorpb.FieldDescriptorProto_TYPE_GROUP {
		// Legacy group encoding is not supported by the runtime codec;
		// the field is dropped from the generated type.
		slog.Warn("skipping group field", "message", msgName, "field", field.GetName())
		return nil
	}

	repeated := field.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	optional := g.optional(field)
	ty, err := g.resolveType(field)
	if err != nil {
		return fmt.Errorf("message %s, field %s: %w", msgName, field.GetName(), err)
	}
	boxed := !repeated &&
		field.GetType() == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE &&
		g.graph.IsNested(field.GetTypeName(), msgName)

	slog.Debug("field", "name", field.GetName(), "type", ty, "boxed", boxed)

	if err := g.appendDoc(); err != nil {
		return err
	}
	g.pushIndent()
	g.buf.WriteString("#[ferrite(")
	typeTag, err := g.fieldTypeTag(field)
	if err != nil {
		return fmt.Errorf("message %s, field %s: %w", msgName, field.GetName(), err)
	}
	g.buf.WriteString(typeTag)

	switch field.GetLabel() {
	case descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL:
		if optional {
			g.buf.WriteString(", optional")
		}
	case descriptorpb.FieldDescriptorProto_LABEL_REQUIRED:
		g.buf.WriteString(", required")
	case descriptorpb.FieldDescriptorProto_LABEL_REPEATED:
		g.buf.WriteString(", repeated")
		if canPack(field) && !g.packed(field) {
			g.buf.WriteString(`, packed="false"`)
		}
	}

	if boxed {
		g.buf.WriteString(", boxed")
	}
	g.buf.WriteString(`, tag="`)
	g.buf.WriteString(strconv.Itoa(int(field.GetNumber())))

	if field.DefaultValue != nil {
		g.buf.WriteString(`", default="`)
		if err := g.appendDefault(field); err != nil {
			return fmt.Errorf("message %s, field %s: %w", msgName, field.GetName(), err)
		}
	}

	g.buf.WriteString("\")]\n")
	g.appendFieldAttributes(msgName, field.GetName())
	g.pushIndent()
	g.buf.WriteString("pub ")
	g.buf.WriteString(ident.ToSnake(field.GetName()))
	g.buf.WriteString(": ")
	if repeated {
		g.buf.WriteString("::std::vec::Vec<")
	} else if optional {
		g.buf.WriteString("::std::option::Option<")
	}
	if boxed {
		g.buf.WriteString("::std::boxed::Box<")
	}
	g.buf.WriteString(ty)
	if boxed {
		g.buf.WriteString(">")
	}
	if repeated || optional {
		g.buf.WriteString(">")
	}
	g.buf.WriteString(",\n")
	return nil
}

// appendDefault writes a field's default-value literal into the open
// attribute string. Byte-string defaults are decoded from C escapes and
// re-encoded as a Rust byte-string literal; enum defaults are
// case-converted with optional prefix stripping; every other scalar
// default is passed through verbatim. The pass-through assumes proto
// literal escaping is compatible with Rust literal escaping, a known
// gap inherited from the wire-metadata contract.
func (g *generator) appendDefault(field *descriptorpb.FieldDescriptorProto) error {
	def := field.GetDefaultValue()
	switch field.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		raw, err := unescapeCEscapeString(def)
		if err != nil {
			return err
		}
		g.buf.WriteString(`b\"`)
		g.buf.WriteString(embedEscaped(escapeBytes(raw)))
		g.buf.WriteString(`\"`)
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		value := ident.ToUpperCamel(def)
		if g.config.StripEnumPrefix {
			// Field type names are fully qualified; the final segment is
			// the enum's own name.
			segments := strings.Split(field.GetTypeName(), ".")
			enumName := segments[len(segments)-1]
			value = stripEnumPrefix(ident.ToUpperCamel(enumName), value)
		}
		g.buf.WriteString(value)
	default:
		g.buf.WriteString(def)
	}
	return nil
}

func (g *generator) appendMapField(msgName string, field, key, value *descriptorpb.FieldDescriptorProto) error {
	keyTy, err := g.resolveType(key)
	if err != nil {
		return fmt.Errorf("message %s, map field %s: %w", msgName, field.GetName(), err)
	}
	valueTy, err := g.resolveType(value)
	if err != nil {
		return fmt.Errorf("message %s, map field %s: %w", msgName, field.GetName(), err)
	}

	slog.Debug("map field", "name", field.GetName(), "key", keyTy, "value", valueTy)

	if err := g.appendDoc(); err != nil {
		return err
	}
	g.pushIndent()

	annotation, rustTy := "map", "HashMap"
	for _, pattern := range g.config.BTreeMaps {
		if ident.Match(pattern, msgName, field.GetName()) {
			annotation, rustTy = "btree_map", "BTreeMap"
			break
		}
	}

	keyTag, err := g.fieldTypeTag(key)
	if err != nil {
		return fmt.Errorf("message %s, map field %s: %w", msgName, field.GetName(), err)
	}
	valueTag, err := g.mapValueTypeTag(value)
	if err != nil {
		return fmt.Errorf("message %s, map field %s: %w", msgName, field.GetName(), err)
	}
	fmt.Fprintf(&g.buf, "#[ferrite(%s=\"%s, %s\", tag=\"%d\")]\n",
		annotation, keyTag, valueTag, field.GetNumber())
	g.appendFieldAttributes(msgName, field.GetName())
	g.pushIndent()
	fmt.Fprintf(&g.buf, "pub %s: ::std::collections::%s<%s, %s>,\n",
		ident.ToSnake(field.GetName()), rustTy, keyTy, valueTy)
	return nil
}

func (g *generator) appendOneofField(messageName, fqMessageName string,
	oneof *descriptorpb.OneofDescriptorProto, fields []indexedField) error {

	name := ident.ToSnake(messageName) + "::" + ident.ToUpperCamel(oneof.GetName())

	tags := make([]int, 0, len(fields))
	for _, field := range fields {
		tags = append(tags, int(field.desc.GetNumber()))
	}
	slices.Sort(tags)
	tagList := make([]string, len(tags))
	for i, tag := range tags {
		tagList[i] = strconv.Itoa(tag)
	}

	if err := g.appendDoc(); err != nil {
		return err
	}
	g.pushIndent()
	fmt.Fprintf(&g.buf, "#[ferrite(oneof=\"%s\", tags=\"%s\")]\n", name, strings.Join(tagList, ", "))
	g.appendFieldAttributes(fqMessageName, oneof.GetName())
	g.pushIndent()
	fmt.Fprintf(&g.buf, "pub %s: ::std::option::Option<%s>,\n", ident.ToSnake(oneof.GetName()), name)
	return nil
}

// appendOneof emits the union type declaration for one oneof, inside
// the enclosing message's module.
func (g *generator) appendOneof(msgName string, oneof *descriptorpb.OneofDescriptorProto,
	idx int32, fields []indexedField) error {
	defer g.truncatePath(len(g.path))

	g.path = append(g.path, messageOneofsPath, idx)
	err := g.appendDoc()
	g.path = g.path[:len(g.path)-2]
	if err != nil {
		return err
	}

	g.pushIndent()
	g.buf.WriteString("#[derive(Clone, Oneof, PartialEq)]\n")
	oneofName := msgName + "." + oneof.GetName()
	g.appendTypeAttributes(oneofName)
	g.pushIndent()
	g.buf.WriteString("pub enum ")
	g.buf.WriteString(ident.ToUpperCamel(oneof.GetName()))
	g.buf.WriteString(" {\n")

	g.depth++
	g.path = append(g.path, messageFieldsPath)
	for _, field := range fields {
		if field.desc.GetType() == descriptorpb.FieldDescriptorProto_TYPE_GROUP {
			slog.Warn("skipping group field", "oneof", oneofName, "field", field.desc.GetName())
			continue
		}

		g.path = append(g.path, int32(field.index))
		err := g.appendDoc()
		g.path = g.path[:len(g.path)-1]
		if err != nil {
			return err
		}

		g.pushIndent()
		typeTag, err := g.fieldTypeTag(field.desc)
		if err != nil {
			return fmt.Errorf("oneof %s, field %s: %w", oneofName, field.desc.GetName(), err)
		}
		fmt.Fprintf(&g.buf, "#[ferrite(%s, tag=\"%d\")]\n", typeTag, field.desc.GetNumber())
		g.appendFieldAttributes(oneofName, field.desc.GetName())

		g.pushIndent()
		ty, err := g.resolveType(field.desc)
		if err != nil {
			return fmt.Errorf("oneof %s, field %s: %w", oneofName, field.desc.GetName(), err)
		}
		boxed := field.desc.GetType() == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE &&
			g.graph.IsNested(field.desc.GetTypeName(), msgName)
		if boxed {
			fmt.Fprintf(&g.buf, "%s(Box<%s>),\n", ident.ToUpperCamel(field.desc.GetName()), ty)
		} else {
			fmt.Fprintf(&g.buf, "%s(%s),\n", ident.ToUpperCamel(field.desc.GetName()), ty)
		}
	}
	g.path = g.path[:len(g.path)-1]
	g.depth--

	g.pushIndent()
	g.buf.WriteString("}\n")
	return nil
}

func (g *generator) appendEnum(enum *descriptorpb.EnumDescriptorProto) error {
	defer g.truncatePath(len(g.path))

	enumName := enum.GetName()
	fqEnumName := g.fqName(enumName)
	slog.Debug("enum", "name", fqEnumName)

	if _, ok := g.knownType(fqEnumName); ok {
		return nil
	}

	if err := g.appendDoc(); err != nil {
		return err
	}
	g.pushIndent()
	g.buf.WriteString("#[derive(Clone, Copy, Debug, PartialEq, Eq, Hash, PartialOrd, Ord, Enumeration)]\n")
	g.appendTypeAttributes(fqEnumName)
	g.pushIndent()
	g.buf.WriteString("pub enum ")
	g.buf.WriteString(ident.ToUpperCamel(enumName))
	g.buf.WriteString(" {\n")

	var prefix string
	if g.config.StripEnumPrefix {
		prefix = ident.ToUpperCamel(enumName)
	}

	seen := make(map[int32]bool)
	g.depth++
	g.path = append(g.path, enumValuesPath)
	for i, value := range enum.GetValue() {
		// Aliased values share a number; only the first occurrence is
		// emitted.
		if seen[value.GetNumber()] {
			continue
		}
		seen[value.GetNumber()] = true

		g.path = append(g.path, int32(i))
		err := g.appendEnumValue(fqEnumName, value, prefix)
		g.path = g.path[:len(g.path)-1]
		if err != nil {
			return err
		}
	}
	g.path = g.path[:len(g.path)-1]
	g.depth--

	g.pushIndent()
	g.buf.WriteString("}\n")
	return nil
}

func (g *generator) appendEnumValue(fqEnumName string, value *descriptorpb.EnumValueDescriptorProto, prefix string) error {
	if err := g.appendDoc(); err != nil {
		return err
	}
	g.appendFieldAttributes(fqEnumName, value.GetName())
	g.pushIndent()
	name := ident.ToUpperCamel(value.GetName())
	if prefix != "" {
		name = stripEnumPrefix(prefix, name)
	}
	fmt.Fprintf(&g.buf, "%s = %d,\n", name, value.GetNumber())
	return nil
}

func (g *generator) appendTypeAttributes(fqName string) {
	for _, rule := range g.config.TypeAttributes {
		if ident.Match(rule.Match, fqName, "") {
			g.pushIndent()
			g.buf.WriteString(rule.Attribute)
			g.buf.WriteString("\n")
		}
	}
}

func (g *generator) appendFieldAttributes(fqName, fieldName string) {
	for _, rule := range g.config.FieldAttributes {
		if ident.Match(rule.Match, fqName, fieldName) {
			g.pushIndent()
			g.buf.WriteString(rule.Attribute)
			g.buf.WriteString("\n")
		}
	}
}

func (g *generator) appendDoc() error {
	loc, err := g.index.lookup(g.path)
	if err != nil {
		return err
	}
	newComments(loc).appendWithIndent(g.depth, &g.buf)
	return nil
}

// optional reports whether a non-repeated field gets an Option wrapper.
// Message fields are optional by nature in both dialects; other types
// track presence in proto2 or when marked proto3-optional.
func (g *generator) optional(field *descriptorpb.FieldDescriptorProto) bool {
	if field.GetLabel() != descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL {
		return false
	}
	if field.GetType() == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE {
		return true
	}
	if field.GetProto3Optional() {
		return true
	}
	return g.syntax == proto2
}

// packed resolves the effective packing for a repeated field: an
// explicit packed option wins, otherwise proto3 packs by default and
// proto2 does not.
func (g *generator) packed(field *descriptorpb.FieldDescriptorProto) bool {
	if opts := field.GetOptions(); opts != nil && opts.Packed != nil {
		return opts.GetPacked()
	}
	return g.syntax == proto3
}

func (g *generator) resolveType(field *descriptorpb.FieldDescriptorProto) (string, error) {
	switch field.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return "f32", nil
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return "f64", nil
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32, descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return "u32", nil
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64, descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return "u64", nil
	case descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_SINT32,
		descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return "i32", nil
	case descriptorpb.FieldDescriptorProto_TYPE_INT64,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
		descriptorpb.FieldDescriptorProto_TYPE_SINT64:
		return "i64", nil
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return "bool", nil
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return "String", nil
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return "Vec<u8>", nil
	case descriptorpb.FieldDescriptorProto_TYPE_GROUP, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		if ty, ok := g.knownType(field.GetTypeName()); ok {
			return ty, nil
		}
		return g.resolveIdent(field.GetTypeName())
	default:
		return "", fmt.Errorf("unknown field type %v", field.GetType())
	}
}

// resolveIdent converts a fully-qualified schema name into a Rust path
// relative to the module scope currently being generated: the longest
// common scope prefix is discarded, each remaining local segment becomes
// a super, and each remaining target segment becomes a snake-cased
// module, ending with the UpperCamel type name.
func (g *generator) resolveIdent(pbIdent string) (string, error) {
	if !strings.HasPrefix(pbIdent, ".") {
		return "", fmt.Errorf("identifier %q is not fully qualified", pbIdent)
	}

	identPath := strings.Split(pbIdent[1:], ".")
	identType := identPath[len(identPath)-1]
	identPath = identPath[:len(identPath)-1]

	var localPath []string
	if g.pkg != "" {
		localPath = strings.Split(g.pkg, ".")
	}

	common := 0
	for common < len(localPath) && common < len(identPath) && localPath[common] == identPath[common] {
		common++
	}

	var parts []string
	for range localPath[common:] {
		parts = append(parts, "super")
	}
	for _, segment := range identPath[common:] {
		parts = append(parts, ident.ToSnake(segment))
	}
	parts = append(parts, ident.ToUpperCamel(identType))
	return strings.Join(parts, "::"), nil
}

func (g *generator) fieldTypeTag(field *descriptorpb.FieldDescriptorProto) (string, error) {
	switch field.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return "float", nil
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return "double", nil
	case descriptorpb.FieldDescriptorProto_TYPE_INT32:
		return "int32", nil
	case descriptorpb.FieldDescriptorProto_TYPE_INT64:
		return "int64", nil
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32:
		return "uint32", nil
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64:
		return "uint64", nil
	case descriptorpb.FieldDescriptorProto_TYPE_SINT32:
		return "sint32", nil
	case descriptorpb.FieldDescriptorProto_TYPE_SINT64:
		return "sint64", nil
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return "fixed32", nil
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return "fixed64", nil
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		return "sfixed32", nil
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return "sfixed64", nil
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return "bool", nil
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return "string", nil
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return "bytes", nil
	case descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		return "group", nil
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		return "message", nil
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		id, err := g.resolveIdent(field.GetTypeName())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("enumeration=%q", id), nil
	default:
		return "", fmt.Errorf("unknown field type %v", field.GetType())
	}
}

func (g *generator) mapValueTypeTag(field *descriptorpb.FieldDescriptorProto) (string, error) {
	if field.GetType() != descriptorpb.FieldDescriptorProto_TYPE_ENUM {
		return g.fieldTypeTag(field)
	}
	id, err := g.resolveIdent(field.GetTypeName())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("enumeration(%s)", id), nil
}

// knownType returns the fixed Rust type for a well-known or
// user-overridden schema type name.
func (g *generator) knownType(fqName string) (string, bool) {
	if g.config.WellKnownTypes {
		if ty, ok := wellKnownTypes[fqName]; ok {
			return ty, true
		}
	}
	ty, ok := g.config.MappedTypes[fqName]
	return ty, ok
}

func (g *generator) fqName(name string) string {
	if g.pkg == "" {
		return "." + name
	}
	return "." + g.pkg + "." + name
}

func (g *generator) pushIndent() {
	for i := 0; i < g.depth; i++ {
		g.buf.WriteString("    ")
	}
}

// pushModule opens a nested Rust module, extending the scope the name
// resolver works against. popModule must be called symmetrically; no
// other code mutates depth.
func (g *generator) pushModule(module string) {
	g.pushIndent()
	g.buf.WriteString("pub mod ")
	g.buf.WriteString(ident.ToSnake(module))
	g.buf.WriteString(" {\n")

	if g.pkg == "" {
		g.pkg = module
	} else {
		g.pkg += "." + module
	}
	g.depth++
}

func (g *generator) popModule() {
	g.depth--

	if idx := strings.LastIndex(g.pkg, "."); idx >= 0 {
		g.pkg = g.pkg[:idx]
	} else {
		g.pkg = ""
	}
	g.pushIndent()
	g.buf.WriteString("}\n")
}

func (g *generator) truncatePath(n int) {
	g.path = g.path[:n]
}

// canPack reports whether a repeated field's element type supports
// packed encoding.
func canPack(field *descriptorpb.FieldDescriptorProto) bool {
	switch field.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT,
		descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
		descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_TYPE_INT64,
		descriptorpb.FieldDescriptorProto_TYPE_UINT32,
		descriptorpb.FieldDescriptorProto_TYPE_UINT64,
		descriptorpb.FieldDescriptorProto_TYPE_SINT32,
		descriptorpb.FieldDescriptorProto_TYPE_SINT64,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED64,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
		descriptorpb.FieldDescriptorProto_TYPE_BOOL,
		descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return true
	}
	return false
}

// stripEnumPrefix strips the enclosing enum's converted name from the
// front of a converted value name. The prefix is only a true prefix if
// the next character is uppercase; stripping "Foo" from "Foobar" would
// corrupt the name.
func stripEnumPrefix(prefix, name string) string {
	stripped, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return name
	}
	for _, r := range stripped {
		if 'A' <= r && r <= 'Z' {
			return stripped
		}
		break
	}
	return name
}
