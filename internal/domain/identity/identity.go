package identity

// ID is an opaque caller identity. The ledger only ever compares IDs for
// equality; it never derives or validates them.
type ID string

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return id == "" }
