// Package protosrc compiles .proto sources into the descriptor protos a
// protoc plugin request would carry.
package protosrc

import (
	"context"
	"fmt"
	"io"

	"github.com/bufbuild/protocompile"
	"github.com/bufbuild/protocompile/protoutil"
	"github.com/spf13/afero"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

type Loader struct {
	Fs          afero.Fs
	ImportPaths []string
}

func NewLoader(fs afero.Fs, importPaths ...string) *Loader {
	return &Loader{Fs: fs, ImportPaths: importPaths}
}

// Load compiles the named files. The result holds every file the targets
// depend on, each after its own imports, followed by the targets, with
// comments retained. Well-known imports resolve without being on disk.
func (l *Loader) Load(ctx context.Context, names ...string) ([]*descriptorpb.FileDescriptorProto, error) {
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			ImportPaths: l.ImportPaths,
			Accessor: func(path string) (io.ReadCloser, error) {
				return l.Fs.Open(path)
			},
		}),
		SourceInfoMode: protocompile.SourceInfoStandard,
	}
	files, err := compiler.Compile(ctx, names...)
	if err != nil {
		return nil, fmt.Errorf("compile proto sources: %w", err)
	}

	var (
		out  []*descriptorpb.FileDescriptorProto
		seen = map[string]bool{}
	)
	var visit func(fd protoreflect.FileDescriptor)
	visit = func(fd protoreflect.FileDescriptor) {
		if seen[fd.Path()] {
			return
		}
		seen[fd.Path()] = true
		imports := fd.Imports()
		for i := 0; i < imports.Len(); i++ {
			visit(imports.Get(i).FileDescriptor)
		}
		out = append(out, protoutil.ProtoFromFileDescriptor(fd))
	}
	for _, fd := range files {
		visit(fd)
	}
	return out, nil
}

// FromMap returns a loader over in-memory sources keyed by path.
func FromMap(sources map[string]string) (*Loader, error) {
	fs := afero.NewMemMapFs()
	for name, src := range sources {
		if err := afero.WriteFile(fs, name, []byte(src), 0o644); err != nil {
			return nil, err
		}
	}
	return NewLoader(fs), nil
}
