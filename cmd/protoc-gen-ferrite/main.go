// protoc-gen-ferrite is a protoc plugin that generates Rust type
// declarations annotated for the ferrite runtime codec.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/ferrite-rs/protoc-gen-ferrite/internal/msggraph"
	"github.com/ferrite-rs/protoc-gen-ferrite/pkg/codegen"
)

func main() {
	// stdout carries the response; diagnostics go to stderr only.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		os.Stderr.WriteString("failed to read input: " + err.Error() + "\n")
		os.Exit(1)
	}

	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(input, req); err != nil {
		os.Stderr.WriteString("failed to unmarshal request: " + err.Error() + "\n")
		os.Exit(1)
	}

	resp, err := generate(req)
	if err != nil {
		// A generation fault is reported through the response so protoc
		// attributes it to this plugin; no partial output is kept.
		resp = &pluginpb.CodeGeneratorResponse{Error: proto.String(err.Error())}
	}

	output, err := proto.Marshal(resp)
	if err != nil {
		os.Stderr.WriteString("failed to marshal response: " + err.Error() + "\n")
		os.Exit(1)
	}

	os.Stdout.Write(output)
}

func generate(req *pluginpb.CodeGeneratorRequest) (*pluginpb.CodeGeneratorResponse, error) {
	config, err := parseParameters(req.Parameter)
	if err != nil {
		return nil, err
	}

	// The containment graph spans the whole request, dependencies
	// included, so cross-file recursion is visible.
	graph := msggraph.New(req.GetProtoFile()...)

	// One output file per Rust module: files sharing a package are
	// concatenated in request order.
	modules := make(map[string]*strings.Builder)
	var moduleOrder []string
	for _, fileName := range req.GetFileToGenerate() {
		file := findFile(req.GetProtoFile(), fileName)
		if file == nil {
			return nil, fmt.Errorf("file %s not found in request", fileName)
		}

		content, err := codegen.Generate(config, graph, file)
		if err != nil {
			return nil, err
		}
		if content == "" {
			continue
		}

		module := strings.Join(codegen.ModulePath(file), ".")
		buf, ok := modules[module]
		if !ok {
			buf = &strings.Builder{}
			modules[module] = buf
			moduleOrder = append(moduleOrder, module)
		}
		buf.WriteString(content)
	}

	resp := &pluginpb.CodeGeneratorResponse{}
	resp.SupportedFeatures = proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL))
	for _, module := range moduleOrder {
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(outputFileName(module)),
			Content: proto.String(modules[module].String()),
		})
	}
	return resp, nil
}

// parseParameters builds the generation config from the comma-separated
// protoc parameter string.
func parseParameters(parameter *string) (*codegen.Config, error) {
	config := codegen.NewConfig()
	if parameter == nil {
		return config, nil
	}

	for _, param := range strings.Split(*parameter, ",") {
		if param == "" {
			continue
		}
		key, value, _ := strings.Cut(param, "=")
		switch key {
		case "config":
			if err := config.LoadFile(value); err != nil {
				return nil, err
			}
		case "strip_enum_prefix":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid strip_enum_prefix value %q", value)
			}
			config.StripEnumPrefix = enabled
		case "well_known_types":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid well_known_types value %q", value)
			}
			config.WellKnownTypes = enabled
		default:
			return nil, fmt.Errorf("unknown parameter %q", key)
		}
	}
	return config, nil
}

func findFile(files []*descriptorpb.FileDescriptorProto, name string) *descriptorpb.FileDescriptorProto {
	for _, f := range files {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func outputFileName(module string) string {
	if module == "" {
		return "_.rs"
	}
	return module + ".rs"
}
