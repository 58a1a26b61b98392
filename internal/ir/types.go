package ir

import "github.com/hanpama/protoc-gen-apollo/internal/naming"

// Kind classifies the GraphQL shape a protobuf field maps to.
type Kind string

const (
	KindBool    Kind = "BOOL"
	KindString  Kind = "STRING"
	KindInt     Kind = "INT"
	KindFloat   Kind = "FLOAT"
	KindMessage Kind = "MESSAGE"
	KindEnum    Kind = "ENUM"
)

// FieldType is the resolved type of a single protobuf field. TypeName is set
// for message and enum kinds and holds the mangled GraphQL name of the
// referenced declaration.
type FieldType struct {
	Kind     Kind
	TypeName string
	Repeated bool
}

type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Description string
}

// TypeExpr renders the field's GraphQL type expression.
func (f Field) TypeExpr() string {
	return MapType(f.Type, f.Required)
}

type ObjectType struct {
	Name        string
	FullName    string
	Fields      []Field
	Description string
}

// Input derives the input counterpart of the object: same fields, all
// optional.
func (o *ObjectType) Input() *InputType {
	fields := make([]Field, len(o.Fields))
	for i, f := range o.Fields {
		f.Required = false
		fields[i] = f
	}
	return &InputType{
		Name:        o.Name + "Input",
		Fields:      fields,
		Description: o.Description,
	}
}

type InputType struct {
	Name        string
	Fields      []Field
	Description string
}

type EnumType struct {
	Name        string
	FullName    string
	Values      []EnumValue
	Description string
}

type EnumValue struct {
	Name        string
	Description string
}

// Method keeps its request and response types as raw descriptor references,
// e.g. ".shop.Topping".
type Method struct {
	Name            string
	InputType       string
	OutputType      string
	ServerStreaming bool
	Description     string
}

func (m Method) FieldName() string { return naming.FieldName(m.Name) }

func (m Method) ArgName() string { return naming.ArgName(m.InputType) }

func (m Method) InputTypeName() string { return naming.TypeName(m.InputType) + "Input" }

func (m Method) OutputTypeName() string { return naming.TypeName(m.OutputType) }

type Service struct {
	Name        string
	FullName    string
	Package     string
	Methods     []Method
	OriginFile  string
	Description string
}

// TypeName is the GraphQL object type grouping the service's methods.
func (s *Service) TypeName() string { return s.Name + "Service" }

// FieldName is the root field the service is exposed under.
func (s *Service) FieldName() string { return naming.FieldName(s.Name) }

func (s *Service) HasStreaming() bool {
	for _, m := range s.Methods {
		if m.ServerStreaming {
			return true
		}
	}
	return false
}

// Unary returns the methods answered with a single response.
func (s *Service) Unary() []Method {
	var out []Method
	for _, m := range s.Methods {
		if !m.ServerStreaming {
			out = append(out, m)
		}
	}
	return out
}

// Streaming returns the server-streaming methods.
func (s *Service) Streaming() []Method {
	var out []Method
	for _, m := range s.Methods {
		if m.ServerStreaming {
			out = append(out, m)
		}
	}
	return out
}
