// Package builder walks file descriptors into an ir.Aggregate.
package builder

import (
	"fmt"

	"github.com/hanpama/protoc-gen-apollo/internal/comments"
	"github.com/hanpama/protoc-gen-apollo/internal/ir"
	"github.com/hanpama/protoc-gen-apollo/internal/naming"
	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Build blends the declarations of every file, in order, into one aggregate.
func Build(files []*descriptorpb.FileDescriptorProto, log logrus.FieldLogger) (*ir.Aggregate, error) {
	b := New(ir.NewAggregate(), log)
	for _, fd := range files {
		if err := b.AddFile(fd); err != nil {
			return nil, err
		}
	}
	return b.Aggregate(), nil
}

type Builder struct {
	agg *ir.Aggregate
	log logrus.FieldLogger
}

func New(agg *ir.Aggregate, log logrus.FieldLogger) *Builder {
	if log == nil {
		log = logrus.New()
	}
	return &Builder{agg: agg, log: log}
}

func (b *Builder) Aggregate() *ir.Aggregate { return b.agg }

// scope is the state carried down the declaration tree: what to prefix
// mangled names with, and where comments for the declaration live.
type scope struct {
	docs     *comments.Resolver
	names    []string
	fullName string
	path     comments.Path
}

func (s scope) child(name string, path comments.Path) scope {
	names := make([]string, len(s.names), len(s.names)+1)
	copy(names, s.names)
	fullName := name
	if s.fullName != "" {
		fullName = s.fullName + "." + name
	}
	return scope{
		docs:     s.docs,
		names:    append(names, name),
		fullName: fullName,
		path:     path,
	}
}

// AddFile appends the messages, enums and services of fd, in declaration
// order. Messages come first, each followed by its own enums and nested
// messages.
func (b *Builder) AddFile(fd *descriptorpb.FileDescriptorProto) error {
	log := b.log.WithField("file", fd.GetName())
	root := scope{
		docs:     comments.NewResolver(fd.GetName(), fd.GetSourceCodeInfo(), log),
		names:    naming.PackageScope(fd.GetPackage()),
		fullName: fd.GetPackage(),
	}

	before := len(b.agg.Objects)
	for i, msg := range fd.GetMessageType() {
		s := root.child(msg.GetName(), comments.Path{comments.FileMessageType, int32(i)})
		if err := b.addMessage(s, msg); err != nil {
			return fmt.Errorf("%s: %w", fd.GetName(), err)
		}
	}
	for i, enum := range fd.GetEnumType() {
		s := root.child(enum.GetName(), comments.Path{comments.FileEnumType, int32(i)})
		if err := b.addEnum(s, enum); err != nil {
			return fmt.Errorf("%s: %w", fd.GetName(), err)
		}
	}
	for i, svc := range fd.GetService() {
		path := comments.Path{comments.FileService, int32(i)}
		if err := b.addService(root, path, fd, svc); err != nil {
			return fmt.Errorf("%s: %w", fd.GetName(), err)
		}
	}

	log.WithFields(logrus.Fields{
		"objects":  len(b.agg.Objects) - before,
		"services": len(fd.GetService()),
	}).Debug("file added")
	return nil
}

func (b *Builder) addMessage(s scope, msg *descriptorpb.DescriptorProto) error {
	obj := &ir.ObjectType{
		Name:        naming.Mangle(s.names...),
		FullName:    s.fullName,
		Description: s.docs.Leading(s.path),
	}
	for _, f := range msg.GetField() {
		field, err := b.buildField(s, f)
		if err != nil {
			return err
		}
		obj.Fields = append(obj.Fields, field)
	}
	if err := b.agg.AddObject(obj); err != nil {
		return err
	}

	for k, enum := range msg.GetEnumType() {
		if err := b.addEnum(s.child(enum.GetName(), s.path.Child(comments.MessageEnumType, int32(k))), enum); err != nil {
			return err
		}
	}
	for j, nested := range msg.GetNestedType() {
		if err := b.addMessage(s.child(nested.GetName(), s.path.Child(comments.MessageNestedType, int32(j))), nested); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildField(s scope, f *descriptorpb.FieldDescriptorProto) (ir.Field, error) {
	ft, err := ir.NewFieldType(s.fullName+"."+f.GetName(), f)
	if err != nil {
		return ir.Field{}, err
	}
	// Field comments are addressed by tag number rather than declaration
	// position.
	path := s.path.Child(comments.MessageField, f.GetNumber()-1)
	return ir.Field{
		Name:        f.GetName(),
		Type:        ft,
		Required:    true,
		Description: s.docs.Attached(path),
	}, nil
}

func (b *Builder) addEnum(s scope, enum *descriptorpb.EnumDescriptorProto) error {
	e := &ir.EnumType{
		Name:        naming.Mangle(s.names...),
		FullName:    s.fullName,
		Description: s.docs.Leading(s.path),
	}
	for v, value := range enum.GetValue() {
		e.Values = append(e.Values, ir.EnumValue{
			Name:        value.GetName(),
			Description: s.docs.Attached(s.path.Child(comments.EnumValue, int32(v))),
		})
	}
	return b.agg.AddEnum(e)
}

func (b *Builder) addService(root scope, path comments.Path, fd *descriptorpb.FileDescriptorProto, svc *descriptorpb.ServiceDescriptorProto) error {
	fullName := svc.GetName()
	if fd.GetPackage() != "" {
		fullName = fd.GetPackage() + "." + fullName
	}
	s := &ir.Service{
		Name:        svc.GetName(),
		FullName:    fullName,
		Package:     fd.GetPackage(),
		OriginFile:  fd.GetName(),
		Description: root.docs.Leading(path),
	}
	for i, m := range svc.GetMethod() {
		s.Methods = append(s.Methods, ir.Method{
			Name:            m.GetName(),
			InputType:       m.GetInputType(),
			OutputType:      m.GetOutputType(),
			ServerStreaming: m.GetServerStreaming(),
			Description:     root.docs.Leading(path.Child(comments.ServiceMethod, int32(i))),
		})
	}
	return b.agg.AddService(s)
}
