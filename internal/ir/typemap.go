package ir

import (
	"github.com/hanpama/protoc-gen-apollo/internal/naming"
	"google.golang.org/protobuf/types/descriptorpb"
)

var scalarKinds = map[descriptorpb.FieldDescriptorProto_Type]Kind{
	descriptorpb.FieldDescriptorProto_TYPE_BOOL:   KindBool,
	descriptorpb.FieldDescriptorProto_TYPE_STRING: KindString,

	// 64-bit values beyond 2^31 do not fit GraphQL Int.
	descriptorpb.FieldDescriptorProto_TYPE_INT32:    KindInt,
	descriptorpb.FieldDescriptorProto_TYPE_INT64:    KindInt,
	descriptorpb.FieldDescriptorProto_TYPE_UINT32:   KindInt,
	descriptorpb.FieldDescriptorProto_TYPE_UINT64:   KindInt,
	descriptorpb.FieldDescriptorProto_TYPE_SINT32:   KindInt,
	descriptorpb.FieldDescriptorProto_TYPE_SINT64:   KindInt,
	descriptorpb.FieldDescriptorProto_TYPE_FIXED32:  KindInt,
	descriptorpb.FieldDescriptorProto_TYPE_FIXED64:  KindInt,
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED32: KindInt,
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED64: KindInt,

	descriptorpb.FieldDescriptorProto_TYPE_FLOAT:  KindFloat,
	descriptorpb.FieldDescriptorProto_TYPE_DOUBLE: KindFloat,
}

// NewFieldType resolves the type of field f. fullName identifies the field in
// errors.
func NewFieldType(fullName string, f *descriptorpb.FieldDescriptorProto) (FieldType, error) {
	ft := FieldType{Repeated: f.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED}
	switch t := f.GetType(); t {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		ft.Kind = KindMessage
		ft.TypeName = naming.TypeName(f.GetTypeName())
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		ft.Kind = KindEnum
		ft.TypeName = naming.TypeName(f.GetTypeName())
	default:
		kind, ok := scalarKinds[t]
		if !ok {
			return FieldType{}, &UnsupportedTypeError{FullName: fullName, Type: t}
		}
		ft.Kind = kind
	}
	return ft, nil
}

// MapType renders ft as a GraphQL type expression. Required fields reference
// object types and are non-null; optional fields reference input types.
// The non-null marker applies to the whole expression, so a required list
// renders as [T]!.
func MapType(ft FieldType, required bool) string {
	named := namedType(ft, required)
	if ft.Repeated {
		named = "[" + named + "]"
	}
	if required {
		named += "!"
	}
	return named
}

func namedType(ft FieldType, required bool) string {
	switch ft.Kind {
	case KindBool:
		return "Boolean"
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindMessage:
		if required {
			return ft.TypeName
		}
		return ft.TypeName + "Input"
	case KindEnum:
		return ft.TypeName
	}
	panic("unreachable: " + string(ft.Kind))
}
