// Package plugin speaks the protoc plugin protocol: a CodeGeneratorRequest
// on stdin, a CodeGeneratorResponse on stdout.
package plugin

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hanpama/protoc-gen-apollo/internal/codegen"
	"github.com/hanpama/protoc-gen-apollo/internal/render"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"
)

// Params are the options passed with --apollo_opt, e.g. "lang=ts,validate".
type Params struct {
	Lang     render.Lang
	Validate bool
}

func ParseParams(s string) (Params, error) {
	p := Params{Lang: render.JS}
	if s == "" {
		return p, nil
	}
	for _, kv := range strings.Split(s, ",") {
		key, value, hasValue := strings.Cut(strings.TrimSpace(kv), "=")
		switch key {
		case "lang":
			lang, err := render.ParseLang(value)
			if err != nil {
				return Params{}, err
			}
			p.Lang = lang
		case "validate":
			if !hasValue {
				p.Validate = true
				continue
			}
			v, err := strconv.ParseBool(value)
			if err != nil {
				return Params{}, fmt.Errorf("parameter validate: %w", err)
			}
			p.Validate = v
		case "":
		default:
			return Params{}, fmt.Errorf("unknown parameter %q", key)
		}
	}
	return p, nil
}

// Handle answers req. Failures travel in the response's error field, as
// protoc expects; no files are returned alongside an error.
func Handle(ctx context.Context, req *pluginpb.CodeGeneratorRequest, opts codegen.Options) *pluginpb.CodeGeneratorResponse {
	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}

	params, err := ParseParams(req.GetParameter())
	if err != nil {
		resp.Error = proto.String(err.Error())
		return resp
	}
	opts.Lang = params.Lang
	opts.Validate = params.Validate

	files, err := codegen.Generate(ctx, req.GetProtoFile(), req.GetFileToGenerate(), opts)
	if err != nil {
		resp.Error = proto.String(err.Error())
		return resp
	}
	for _, f := range files {
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(f.Name),
			Content: proto.String(f.Content),
		})
	}
	return resp
}

// Run reads one request from r and writes the response to w. Only transport
// failures are returned; generation errors are reported to protoc.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts codegen.Options) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(in, req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	resp := Handle(ctx, req, opts)
	if opts.Log != nil && resp.Error != nil {
		opts.Log.WithField("error", resp.GetError()).Warn("generation failed")
	}

	out, err := proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
