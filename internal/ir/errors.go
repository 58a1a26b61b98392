package ir

import (
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"
)

// UnsupportedTypeError reports a field whose protobuf type has no GraphQL
// mapping. It aborts generation.
type UnsupportedTypeError struct {
	FullName string
	Type     descriptorpb.FieldDescriptorProto_Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %s on field %s", e.Type, e.FullName)
}

// DuplicateNameError reports two declarations that map to the same GraphQL
// type name.
type DuplicateNameError struct {
	Name     string
	FullName string
	Existing string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("GraphQL type %s from %s is already declared by %s", e.Name, e.FullName, e.Existing)
}
