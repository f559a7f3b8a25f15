package entity

// NodeDraft is a page-structure node as submitted by a client. Every field
// except Tag may be absent; nil means "not provided".
type NodeDraft struct {
	ID            *string     `json:"id,omitempty"`
	Tag           *string     `json:"tag,omitempty"`
	Text          *string     `json:"text,omitempty"`
	Role          *string     `json:"role,omitempty"`
	AriaLabel     *string     `json:"ariaLabel,omitempty"`
	IsInteractive *bool       `json:"isInteractive,omitempty"`
	Children      []NodeDraft `json:"children,omitempty"`
}

// PageDraft is the body of a page submission before validation.
type PageDraft struct {
	ID   *string    `json:"id,omitempty"`
	URL  *string    `json:"url,omitempty"`
	Root *NodeDraft `json:"root,omitempty"`
}

// Node is the canonical form sent to the backend engine. No field is ever
// left unset; Children is never nil.
type Node struct {
	ID            string `json:"id"`
	Tag           string `json:"tag"`
	Text          string `json:"text"`
	Role          string `json:"role"`
	AriaLabel     string `json:"aria_label"`
	IsInteractive bool   `json:"is_interactive"`
	Children      []Node `json:"children"`
}

// Page mirrors the backend's Page message. An empty ID asks the backend to assign one.
type Page struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Root Node   `json:"root"`
}
