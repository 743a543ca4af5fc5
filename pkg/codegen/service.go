package codegen

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/ferrite-rs/protoc-gen-ferrite/internal/ident"
)

// ServiceGenerator emits RPC scaffolding for service declarations. The
// core only assembles a language-agnostic Service description; what a
// service becomes in generated code is entirely up to the hook.
// Generate runs once per service, Finalize once per file after all
// services of that file.
type ServiceGenerator interface {
	Generate(service *Service, buf *strings.Builder) error
	Finalize(buf *strings.Builder) error
}

// Service describes one service declaration.
type Service struct {
	// Name is the service name converted to Rust conventions; ProtoName
	// is the name as written in the schema.
	Name      string
	ProtoName string
	// Package is the schema package the service was declared in.
	Package  string
	Comments Comments
	Methods  []Method
	// Options carries the raw service options, passed through
	// unexamined.
	Options *descriptorpb.ServiceOptions
}

// Method describes one method of a service.
type Method struct {
	Name      string
	ProtoName string
	Comments  Comments
	// InputType and OutputType are resolved Rust identifiers relative to
	// where the hook's output lands; InputProtoType and OutputProtoType
	// are the fully-qualified schema names.
	InputType       string
	OutputType      string
	InputProtoType  string
	OutputProtoType string
	Options         *descriptorpb.MethodOptions
	ClientStreaming bool
	ServerStreaming bool
}

// pushService assembles the description of one service and hands it to
// the configured ServiceGenerator.
func (g *generator) pushService(service *descriptorpb.ServiceDescriptorProto) error {
	defer g.truncatePath(len(g.path))

	name := service.GetName()
	loc, err := g.index.lookup(g.path)
	if err != nil {
		return err
	}
	comments := newComments(loc)

	var methods []Method
	g.path = append(g.path, serviceMethodsPath)
	for i, method := range service.GetMethod() {
		g.path = append(g.path, int32(i))
		loc, err := g.index.lookup(g.path)
		g.path = g.path[:len(g.path)-1]
		if err != nil {
			return err
		}

		inputType, err := g.resolveServiceType(method.GetInputType())
		if err != nil {
			return fmt.Errorf("service %s, method %s: %w", name, method.GetName(), err)
		}
		outputType, err := g.resolveServiceType(method.GetOutputType())
		if err != nil {
			return fmt.Errorf("service %s, method %s: %w", name, method.GetName(), err)
		}

		methods = append(methods, Method{
			Name:            ident.ToSnake(method.GetName()),
			ProtoName:       method.GetName(),
			Comments:        newComments(loc),
			InputType:       inputType,
			OutputType:      outputType,
			InputProtoType:  method.GetInputType(),
			OutputProtoType: method.GetOutputType(),
			Options:         method.GetOptions(),
			ClientStreaming: method.GetClientStreaming(),
			ServerStreaming: method.GetServerStreaming(),
		})
	}
	g.path = g.path[:len(g.path)-1]

	return g.config.ServiceGenerator.Generate(&Service{
		Name:      ident.ToUpperCamel(name),
		ProtoName: name,
		Package:   g.pkg,
		Comments:  comments,
		Methods:   methods,
		Options:   service.GetOptions(),
	}, &g.buf)
}

func (g *generator) resolveServiceType(fqName string) (string, error) {
	if ty, ok := g.knownType(fqName); ok {
		return ty, nil
	}
	return g.resolveIdent(fqName)
}
