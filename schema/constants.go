package schema

// Sentinel object ids.
const (
	// NullID marks a nonexistent side of a ref update: the old side of a
	// branch creation or the new side of a branch deletion.
	NullID = "0000000000000000000000000000000000000000"

	// EmptyTreeID is the fixed id of the empty tree, used as the "from"
	// point when diffing against a state that never existed.
	EmptyTreeID = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"
)

const (
	idLength      = 40
	shortIDLength = 10
)

// GroupMemberPrefix marks a member token as a nested group reference.
const GroupMemberPrefix = '@'

// UserSpecRegexPrefix marks a user specification token as a regular
// expression to match against the user identifier.
const UserSpecRegexPrefix = '^'
