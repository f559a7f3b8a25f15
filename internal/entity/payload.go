package entity

// Payload is a backend response decoded into loosely-typed JSON fields. Field
// names follow whatever convention the backend schema uses.
type Payload map[string]any
