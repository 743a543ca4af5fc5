// Package msggraph answers by-value containment queries over the message
// types of a descriptor set. The generator uses it to decide when a field
// needs heap indirection to break a recursive type definition.
package msggraph

import (
	"google.golang.org/protobuf/types/descriptorpb"
)

// Graph records, for every message type in a descriptor set, which other
// message types it embeds by value. Repeated fields are excluded: their
// container already provides indirection. Immutable after New, safe for
// concurrent readers.
type Graph struct {
	edges map[string][]string
}

// New builds the containment graph for an entire descriptor set. The set
// must include every file a generated file depends on, so cross-file
// recursion is visible.
func New(files ...*descriptorpb.FileDescriptorProto) *Graph {
	g := &Graph{edges: make(map[string][]string)}
	for _, file := range files {
		prefix := ""
		if pkg := file.GetPackage(); pkg != "" {
			prefix = "." + pkg
		}
		for _, message := range file.GetMessageType() {
			g.add(prefix, message)
		}
	}
	return g
}

func (g *Graph) add(prefix string, message *descriptorpb.DescriptorProto) {
	name := prefix + "." + message.GetName()
	edges := []string{}
	for _, field := range message.GetField() {
		if field.GetType() == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE &&
			field.GetLabel() != descriptorpb.FieldDescriptorProto_LABEL_REPEATED {
			edges = append(edges, field.GetTypeName())
		}
	}
	g.edges[name] = edges
	for _, nested := range message.GetNestedType() {
		g.add(name, nested)
	}
}

// IsNested reports whether a value of message type inner transitively
// contains a value of message type outer. Both names must be fully
// qualified. A field of type inner declared in outer must be boxed when
// this returns true, since the types would otherwise have infinite size.
func (g *Graph) IsNested(inner, outer string) bool {
	if _, ok := g.edges[inner]; !ok {
		return false
	}
	if _, ok := g.edges[outer]; !ok {
		return false
	}
	seen := make(map[string]bool)
	var walk func(name string) bool
	walk = func(name string) bool {
		if name == outer {
			return true
		}
		if seen[name] {
			return false
		}
		seen[name] = true
		for _, next := range g.edges[name] {
			if walk(next) {
				return true
			}
		}
		return false
	}
	return walk(inner)
}
