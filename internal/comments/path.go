package comments

import (
	"fmt"
	"strconv"
	"strings"
)

// Field numbers from descriptor.proto that address declarations inside a
// SourceCodeInfo location path.
const (
	FileMessageType int32 = 4
	FileEnumType    int32 = 5
	FileService     int32 = 6

	MessageField      int32 = 2
	MessageNestedType int32 = 3
	MessageEnumType   int32 = 4

	EnumValue     int32 = 2
	ServiceMethod int32 = 2
)

// Path is a SourceCodeInfo location path: alternating (field number, index)
// pairs leading from the file down to one declaration.
type Path []int32

// Child returns a new path addressing element idx of the repeated field tag
// within the declaration at p. p is never modified.
func (p Path) Child(tag, idx int32) Path {
	out := make(Path, len(p), len(p)+2)
	copy(out, p)
	return append(out, tag, idx)
}

// HasPrefix reports whether prefix is an element-wise prefix of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

func (p Path) Equal(other Path) bool {
	return len(p) == len(other) && p.HasPrefix(other)
}

// Validate checks that p has the shape of a declaration path.
func (p Path) Validate() error {
	if len(p) == 0 {
		return &MalformedPathError{Path: p, Reason: "empty path"}
	}
	if len(p)%2 != 0 {
		return &MalformedPathError{Path: p, Reason: "odd number of segments"}
	}
	switch p[0] {
	case FileMessageType, FileEnumType, FileService:
	default:
		return &MalformedPathError{Path: p, Reason: fmt.Sprintf("unknown file element %d", p[0])}
	}
	for i, seg := range p {
		if seg < 0 {
			return &MalformedPathError{Path: p, Reason: fmt.Sprintf("negative segment at %d", i)}
		}
	}
	return nil
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = strconv.Itoa(int(seg))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MalformedPathError reports a lookup path that cannot address a declaration.
// It is never fatal: the declaration is rendered without a description.
type MalformedPathError struct {
	Path   Path
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed source path %s: %s", e.Path, e.Reason)
}
