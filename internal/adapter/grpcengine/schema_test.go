package grpcengine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/user/openperf-gateway/internal/entity"
)

func TestBuiltinSchema(t *testing.T) {
	s, err := BuiltinSchema()
	if err != nil {
		t.Fatalf("BuiltinSchema: %v", err)
	}
	for _, name := range requiredMethods {
		if s.Method(name) == nil {
			t.Errorf("method %s not resolved", name)
		}
	}
	if got := s.FullMethod(methodGetMetrics); got != "/openperf_rpc.OpenPerfService/GetMetrics" {
		t.Errorf("FullMethod = %q", got)
	}
	if got := s.Method(methodSubmitPage).Input().FullName(); got != "openperf_rpc.SubmitPageRequest" {
		t.Errorf("SubmitPage input = %s", got)
	}
}

func writeDescriptorSet(t *testing.T, files ...*descriptorpb.FileDescriptorProto) string {
	t.Helper()
	raw, err := proto.Marshal(&descriptorpb.FileDescriptorSet{File: files})
	if err != nil {
		t.Fatalf("marshal descriptor set: %v", err)
	}
	path := filepath.Join(t.TempDir(), "openperf.pb")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write descriptor set: %v", err)
	}
	return path
}

func TestLoadSchema_FromDescriptorSet(t *testing.T) {
	path := writeDescriptorSet(t, builtinFile())

	s, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	if s.Method(methodAnalyzeAccessibility) == nil {
		t.Error("AnalyzeAccessibility not resolved")
	}
}

func TestLoadSchema_EmptyPathUsesBuiltin(t *testing.T) {
	s, err := LoadSchema("")
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	if s.Method(methodSubmitPage) == nil {
		t.Error("SubmitPage not resolved")
	}
}

func TestLoadSchema_MissingMethod(t *testing.T) {
	fd := builtinFile()
	fd.Service[0].Method = fd.Service[0].Method[:3] // drop GetMetrics

	_, err := LoadSchema(writeDescriptorSet(t, fd))
	if err == nil || !strings.Contains(err.Error(), "GetMetrics") {
		t.Fatalf("err = %v, want missing GetMetrics", err)
	}
}

func TestLoadSchema_Errors(t *testing.T) {
	if _, err := LoadSchema(filepath.Join(t.TempDir(), "nope.pb")); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.pb")
	if err := os.WriteFile(garbage, []byte("not a descriptor"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSchema(garbage); err == nil {
		t.Error("expected error for garbage file")
	}
}

func TestEncodePage_RejectsSchemaMismatch(t *testing.T) {
	fd := builtinFile()
	// Rename Node.aria_label so the canonical field cannot be found.
	for _, m := range fd.MessageType {
		if m.GetName() == "Node" {
			m.Field[4].Name = proto.String("label")
		}
	}
	s, err := LoadSchema(writeDescriptorSet(t, fd))
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}

	client := NewClient(nil, s)
	_, err = client.SubmitPage(t.Context(), &entity.Page{URL: "u", Root: entity.Node{Tag: "div"}})
	if err == nil || !strings.Contains(err.Error(), "aria_label") {
		t.Fatalf("err = %v, want schema mismatch on aria_label", err)
	}
}
