// Package codegen turns descriptor protos into the generated artifacts for a
// set of target names.
package codegen

import (
	"context"
	"time"

	"github.com/hanpama/protoc-gen-apollo/internal/builder"
	"github.com/hanpama/protoc-gen-apollo/internal/eventbus"
	"github.com/hanpama/protoc-gen-apollo/internal/events"
	"github.com/hanpama/protoc-gen-apollo/internal/language"
	"github.com/hanpama/protoc-gen-apollo/internal/render"
	"github.com/hanpama/protoc-gen-apollo/internal/reqid"
	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/types/descriptorpb"
)

type Options struct {
	Lang render.Lang
	// Validate loads the rendered SDL with gqlparser before anything is
	// emitted.
	Validate bool

	Log logrus.FieldLogger
	Bus *eventbus.Bus
}

type File struct {
	Name    string
	Content string
}

// Artifacts are the three renderings of one aggregate.
type Artifacts struct {
	SDL       string
	TypeDefs  string
	Resolvers string
}

// Files names the artifacts after target.
func (a Artifacts) Files(target string, lang render.Lang) []File {
	ext := lang.Ext()
	return []File{
		{Name: target + ".out", Content: a.SDL},
		{Name: target + "-type-defs." + ext, Content: a.TypeDefs},
		{Name: target + "-resolvers." + ext, Content: a.Resolvers},
	}
}

// Generate blends every file into one aggregate and emits the same three
// artifacts under each target name. Nothing is returned on error.
func Generate(ctx context.Context, files []*descriptorpb.FileDescriptorProto, targets []string, opts Options) (out []File, err error) {
	log := opts.Log
	if log == nil {
		log = logrus.New()
	}
	ctx, rid := reqid.Ensure(ctx)
	log = log.WithField("run", rid)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.GetName()
	}
	eventbus.Publish(ctx, opts.Bus, events.GenerateStart{Files: names, Targets: targets, Lang: string(opts.Lang)})
	start := time.Now()
	defer func() {
		eventbus.Publish(ctx, opts.Bus, events.GenerateFinish{Artifacts: len(out), Err: err, Duration: time.Since(start)})
	}()

	artifacts, err := Render(files, opts.Lang, log)
	if err != nil {
		return nil, err
	}
	if opts.Validate && len(targets) > 0 {
		if _, err := language.ValidateSchema(targets[0]+".out", artifacts.SDL); err != nil {
			return nil, err
		}
	}

	for _, target := range targets {
		for _, f := range artifacts.Files(target, opts.Lang) {
			eventbus.Publish(ctx, opts.Bus, events.ArtifactRendered{Name: f.Name, Bytes: len(f.Content)})
			out = append(out, f)
		}
	}
	log.WithField("files", len(out)).Debug("generated")
	return out, nil
}

// Render builds the aggregate of files and renders it.
func Render(files []*descriptorpb.FileDescriptorProto, lang render.Lang, log logrus.FieldLogger) (Artifacts, error) {
	agg, err := builder.Build(files, log)
	if err != nil {
		return Artifacts{}, err
	}
	var a Artifacts
	if a.SDL, err = render.SDL(agg); err != nil {
		return Artifacts{}, err
	}
	if a.TypeDefs, err = render.TypeDefs(agg, lang); err != nil {
		return Artifacts{}, err
	}
	if a.Resolvers, err = render.Resolvers(agg, lang); err != nil {
		return Artifacts{}, err
	}
	return a, nil
}
