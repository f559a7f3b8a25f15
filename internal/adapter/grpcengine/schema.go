package grpcengine

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// ServiceName is the fully-qualified name of the engine's RPC service.
const ServiceName = "openperf_rpc.OpenPerfService"

const (
	methodSubmitPage           = "SubmitPage"
	methodRunRenderPipeline    = "RunRenderPipeline"
	methodAnalyzeAccessibility = "AnalyzeAccessibility"
	methodGetMetrics           = "GetMetrics"
)

var requiredMethods = []string{
	methodSubmitPage,
	methodRunRenderPipeline,
	methodAnalyzeAccessibility,
	methodGetMetrics,
}

// Schema resolves the engine's RPC methods and message types at runtime.
type Schema struct {
	service protoreflect.ServiceDescriptor
	methods map[string]protoreflect.MethodDescriptor
}

// LoadSchema reads a binary FileDescriptorSet (protoc --descriptor_set_out
// --include_imports) from path. An empty path selects the built-in schema.
func LoadSchema(path string) (*Schema, error) {
	if path == "" {
		return BuiltinSchema()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor set: %w", err)
	}
	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("decode descriptor set %s: %w", path, err)
	}
	files, err := protodesc.NewFiles(&set)
	if err != nil {
		return nil, fmt.Errorf("build descriptors from %s: %w", path, err)
	}
	return newSchema(files)
}

// BuiltinSchema returns the schema compiled into the gateway, matching
// api/proto/openperf.proto.
func BuiltinSchema() (*Schema, error) {
	fd, err := protodesc.NewFile(builtinFile(), new(protoregistry.Files))
	if err != nil {
		return nil, fmt.Errorf("build built-in schema: %w", err)
	}
	files := new(protoregistry.Files)
	if err := files.RegisterFile(fd); err != nil {
		return nil, fmt.Errorf("register built-in schema: %w", err)
	}
	return newSchema(files)
}

func newSchema(files *protoregistry.Files) (*Schema, error) {
	d, err := files.FindDescriptorByName(ServiceName)
	if err != nil {
		return nil, fmt.Errorf("schema: service %s: %w", ServiceName, err)
	}
	sd, ok := d.(protoreflect.ServiceDescriptor)
	if !ok {
		return nil, fmt.Errorf("schema: %s is not a service", ServiceName)
	}

	s := &Schema{service: sd, methods: make(map[string]protoreflect.MethodDescriptor, len(requiredMethods))}
	for _, name := range requiredMethods {
		md := sd.Methods().ByName(protoreflect.Name(name))
		if md == nil {
			return nil, fmt.Errorf("schema: service %s has no method %s", ServiceName, name)
		}
		if md.IsStreamingClient() || md.IsStreamingServer() {
			return nil, fmt.Errorf("schema: method %s must be unary", name)
		}
		s.methods[name] = md
	}
	return s, nil
}

// Method returns the descriptor of a required method, or nil.
func (s *Schema) Method(name string) protoreflect.MethodDescriptor {
	return s.methods[name]
}

// FullMethod returns the gRPC path of a method, e.g. "/openperf_rpc.OpenPerfService/GetMetrics".
func (s *Schema) FullMethod(name string) string {
	return "/" + string(s.service.FullName()) + "/" + name
}

func builtinFile() *descriptorpb.FileDescriptorProto {
	const pkg = ".openperf_rpc."
	str := descriptorpb.FieldDescriptorProto_TYPE_STRING

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("openperf.proto"),
		Package: proto.String("openperf_rpc"),
		Syntax:  proto.String("proto3"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("Severity"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("SEVERITY_UNSPECIFIED"), Number: proto.Int32(0)},
				{Name: proto.String("SEVERITY_INFO"), Number: proto.Int32(1)},
				{Name: proto.String("SEVERITY_WARNING"), Number: proto.Int32(2)},
				{Name: proto.String("SEVERITY_ERROR"), Number: proto.Int32(3)},
			},
		}},
		MessageType: []*descriptorpb.DescriptorProto{
			message("Node",
				field("id", 1, str, ""),
				field("tag", 2, str, ""),
				field("text", 3, str, ""),
				field("role", 4, str, ""),
				field("aria_label", 5, str, ""),
				field("is_interactive", 6, descriptorpb.FieldDescriptorProto_TYPE_BOOL, ""),
				repeated(field("children", 7, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, pkg+"Node")),
			),
			message("Page",
				field("id", 1, str, ""),
				field("url", 2, str, ""),
				field("root", 3, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, pkg+"Node"),
			),
			message("SubmitPageRequest", field("page", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, pkg+"Page")),
			message("SubmitPageResponse", field("page_id", 1, str, "")),
			message("RunRenderRequest", field("page_id", 1, str, "")),
			message("RunRenderResponse"),
			message("AnalyzeAccessibilityRequest", field("page_id", 1, str, "")),
			message("AccessibilityIssue",
				field("code", 1, str, ""),
				field("message", 2, str, ""),
				field("severity", 3, descriptorpb.FieldDescriptorProto_TYPE_ENUM, pkg+"Severity"),
				field("node_id", 4, str, ""),
			),
			message("AnalyzeAccessibilityResponse",
				repeated(field("issues", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, pkg+"AccessibilityIssue")),
			),
			message("GetMetricsRequest"),
			message("MetricSample",
				field("name", 1, str, ""),
				field("value", 2, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE, ""),
				field("timestamp_unix_ms", 3, descriptorpb.FieldDescriptorProto_TYPE_INT64, ""),
			),
			message("GetMetricsResponse",
				repeated(field("samples", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, pkg+"MetricSample")),
			),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("OpenPerfService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				rpc(methodSubmitPage, pkg+"SubmitPageRequest", pkg+"SubmitPageResponse"),
				rpc(methodRunRenderPipeline, pkg+"RunRenderRequest", pkg+"RunRenderResponse"),
				rpc(methodAnalyzeAccessibility, pkg+"AnalyzeAccessibilityRequest", pkg+"AnalyzeAccessibilityResponse"),
				rpc(methodGetMetrics, pkg+"GetMetricsRequest", pkg+"GetMetricsResponse"),
			},
		}},
	}
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func field(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, typeName string) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
	if typeName != "" {
		f.TypeName = proto.String(typeName)
	}
	return f
}

func repeated(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func rpc(name, in, out string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(in),
		OutputType: proto.String(out),
	}
}
