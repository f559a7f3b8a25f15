package grpcengine

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/user/openperf-gateway/internal/entity"
)

// Responses are rendered with the schema's own field names, every field
// present, enums as symbols and 64-bit integers as strings.
var responseJSON = protojson.MarshalOptions{
	UseProtoNames:   true,
	EmitUnpopulated: true,
}

func encodePage(msg protoreflect.Message, page *entity.Page) error {
	if err := setString(msg, "id", page.ID); err != nil {
		return err
	}
	if err := setString(msg, "url", page.URL); err != nil {
		return err
	}
	rootFd, err := lookupField(msg, "root", protoreflect.MessageKind)
	if err != nil {
		return err
	}
	return encodeNode(msg.Mutable(rootFd).Message(), &page.Root)
}

func encodeNode(msg protoreflect.Message, n *entity.Node) error {
	for _, f := range []struct{ name, value string }{
		{"id", n.ID},
		{"tag", n.Tag},
		{"text", n.Text},
		{"role", n.Role},
		{"aria_label", n.AriaLabel},
	} {
		if err := setString(msg, f.name, f.value); err != nil {
			return err
		}
	}

	fd, err := lookupField(msg, "is_interactive", protoreflect.BoolKind)
	if err != nil {
		return err
	}
	msg.Set(fd, protoreflect.ValueOfBool(n.IsInteractive))

	fd, err = lookupField(msg, "children", protoreflect.MessageKind)
	if err != nil {
		return err
	}
	if !fd.IsList() {
		return fmt.Errorf("schema: %s.children must be repeated", msg.Descriptor().FullName())
	}
	list := msg.Mutable(fd).List()
	for i := range n.Children {
		el := list.NewElement()
		if err := encodeNode(el.Message(), &n.Children[i]); err != nil {
			return err
		}
		list.Append(el)
	}
	return nil
}

func setString(msg protoreflect.Message, name, value string) error {
	fd, err := lookupField(msg, name, protoreflect.StringKind)
	if err != nil {
		return err
	}
	msg.Set(fd, protoreflect.ValueOfString(value))
	return nil
}

func lookupField(msg protoreflect.Message, name string, kind protoreflect.Kind) (protoreflect.FieldDescriptor, error) {
	md := msg.Descriptor()
	fd := md.Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		return nil, fmt.Errorf("schema: %s has no field %q", md.FullName(), name)
	}
	if fd.Kind() != kind {
		return nil, fmt.Errorf("schema: %s.%s is %s, want %s", md.FullName(), name, fd.Kind(), kind)
	}
	return fd, nil
}

// decodeResponse renders msg as JSON and decodes it into v.
func decodeResponse(msg proto.Message, v any) error {
	raw, err := responseJSON.Marshal(msg)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
