package usecase

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/user/openperf-gateway/internal/entity"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNormalizeNode_Defaults(t *testing.T) {
	got := NormalizeNode(entity.NodeDraft{Tag: strPtr("div")})
	want := entity.Node{Tag: "div", Children: []entity.Node{}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeNode = %#v, want %#v", got, want)
	}
}

func TestNormalizeNode_CopiesProvidedFields(t *testing.T) {
	got := NormalizeNode(entity.NodeDraft{
		ID:            strPtr("cta"),
		Tag:           strPtr("button"),
		Text:          strPtr("Buy"),
		Role:          strPtr("button"),
		AriaLabel:     strPtr("Buy now"),
		IsInteractive: boolPtr(true),
	})
	want := entity.Node{
		ID:            "cta",
		Tag:           "button",
		Text:          "Buy",
		Role:          "button",
		AriaLabel:     "Buy now",
		IsInteractive: true,
		Children:      []entity.Node{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeNode = %#v, want %#v", got, want)
	}
}

func TestNormalizeNode_PreservesChildOrder(t *testing.T) {
	draft := entity.NodeDraft{
		Tag: strPtr("ul"),
		Children: []entity.NodeDraft{
			{Tag: strPtr("li"), ID: strPtr("a")},
			{Tag: strPtr("li"), ID: strPtr("b"), Children: []entity.NodeDraft{{Tag: strPtr("span"), ID: strPtr("b1")}}},
			{Tag: strPtr("li"), ID: strPtr("c")},
		},
	}
	got := NormalizeNode(draft)

	var ids []string
	for _, c := range got.Children {
		ids = append(ids, c.ID)
	}
	if strings.Join(ids, ",") != "a,b,c" {
		t.Fatalf("child order = %v, want [a b c]", ids)
	}
	if len(got.Children[1].Children) != 1 || got.Children[1].Children[0].ID != "b1" {
		t.Fatalf("grandchild not preserved: %#v", got.Children[1])
	}
}

func TestNormalizeNode_DeepTreeFullyPopulated(t *testing.T) {
	const depth = 50
	root := entity.NodeDraft{Tag: strPtr("div")}
	cur := &root
	for i := 0; i < depth; i++ {
		cur.Children = []entity.NodeDraft{{Tag: strPtr("div")}, {Tag: strPtr("p")}}
		cur = &cur.Children[0]
	}

	got := NormalizeNode(root)

	// Every node must serialize with every canonical key present.
	keys := []string{"id", "tag", "text", "role", "aria_label", "is_interactive", "children"}
	var walk func(n entity.Node, level int)
	walk = func(n entity.Node, level int) {
		raw, err := json.Marshal(n)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		for _, k := range keys {
			if v, ok := fields[k]; !ok || string(v) == "null" {
				t.Fatalf("level %d: field %q absent or null", level, k)
			}
		}
		for _, c := range n.Children {
			walk(c, level+1)
		}
	}
	walk(got, 0)

	levels := 0
	for n := got; len(n.Children) > 0; n = n.Children[0] {
		if n.Children[1].Tag != "p" {
			t.Fatalf("level %d: second child tag = %q, want p", levels, n.Children[1].Tag)
		}
		levels++
	}
	if levels != depth {
		t.Fatalf("depth = %d, want %d", levels, depth)
	}
}

func TestNormalizePage(t *testing.T) {
	draft := &entity.PageDraft{
		URL:  strPtr("https://example.com"),
		Root: &entity.NodeDraft{Tag: strPtr("div"), Children: []entity.NodeDraft{{Tag: strPtr("img")}}},
	}
	got := NormalizePage(draft)
	want := &entity.Page{
		URL: "https://example.com",
		Root: entity.Node{
			Tag:      "div",
			Children: []entity.Node{{Tag: "img", Children: []entity.Node{}}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizePage = %#v, want %#v", got, want)
	}
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		name    string
		draft   *entity.PageDraft
		wantErr string
	}{
		{name: "nil draft", draft: nil, wantErr: "missing url or root"},
		{name: "missing url", draft: &entity.PageDraft{Root: &entity.NodeDraft{Tag: strPtr("div")}}, wantErr: "missing url or root"},
		{name: "empty url", draft: &entity.PageDraft{URL: strPtr(""), Root: &entity.NodeDraft{Tag: strPtr("div")}}, wantErr: "missing url or root"},
		{name: "missing root", draft: &entity.PageDraft{URL: strPtr("https://example.com")}, wantErr: "missing url or root"},
		{name: "root without tag", draft: &entity.PageDraft{URL: strPtr("https://example.com"), Root: &entity.NodeDraft{}}, wantErr: "node root is missing a tag"},
		{
			name: "nested node without tag",
			draft: &entity.PageDraft{
				URL: strPtr("https://example.com"),
				Root: &entity.NodeDraft{Tag: strPtr("div"), Children: []entity.NodeDraft{
					{Tag: strPtr("p")},
					{Tag: strPtr("ul"), Children: []entity.NodeDraft{{}}},
				}},
			},
			wantErr: "node root.children[1].children[0] is missing a tag",
		},
		{name: "valid", draft: &entity.PageDraft{URL: strPtr("https://example.com"), Root: &entity.NodeDraft{Tag: strPtr("div")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePage(tt.draft)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidPage) {
				t.Fatalf("err = %v, want ErrInvalidPage", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
