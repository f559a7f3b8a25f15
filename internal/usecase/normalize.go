package usecase

import (
	"fmt"
	"strconv"

	"github.com/user/openperf-gateway/internal/entity"
)

// NormalizeNode converts a submitted node into its canonical form, depth-first,
// preserving child order. Absent optional fields take their zero value; the
// tag is copied as-is and never defaulted, ValidatePage rejects missing tags.
func NormalizeNode(d entity.NodeDraft) entity.Node {
	n := entity.Node{
		ID:            deref(d.ID),
		Tag:           deref(d.Tag),
		Text:          deref(d.Text),
		Role:          deref(d.Role),
		AriaLabel:     deref(d.AriaLabel),
		IsInteractive: d.IsInteractive != nil && *d.IsInteractive,
		Children:      make([]entity.Node, 0, len(d.Children)),
	}
	for _, child := range d.Children {
		n.Children = append(n.Children, NormalizeNode(child))
	}
	return n
}

// NormalizePage builds the canonical page for a draft that passed ValidatePage.
func NormalizePage(d *entity.PageDraft) *entity.Page {
	return &entity.Page{
		ID:   deref(d.ID),
		URL:  deref(d.URL),
		Root: NormalizeNode(*d.Root),
	}
}

// ValidatePage checks the fields that must be present before anything is sent
// to the engine: a url, a root node, and a tag on every node of the tree.
func ValidatePage(d *entity.PageDraft) error {
	if d == nil || deref(d.URL) == "" || d.Root == nil {
		return fmt.Errorf("%w: missing url or root in body", ErrInvalidPage)
	}
	return validateTags(*d.Root, "root")
}

func validateTags(d entity.NodeDraft, path string) error {
	if deref(d.Tag) == "" {
		return fmt.Errorf("%w: node %s is missing a tag", ErrInvalidPage, path)
	}
	for i, child := range d.Children {
		if err := validateTags(child, path+".children["+strconv.Itoa(i)+"]"); err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
