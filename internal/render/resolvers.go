package render

import (
	"fmt"
	"strings"

	"github.com/hanpama/protoc-gen-apollo/internal/ir"
	"github.com/hanpama/protoc-gen-apollo/internal/naming"
)

// Resolvers renders a module wiring every method to a gRPC backend stub.
// Unary methods resolve under Query through a promise; server-streaming
// methods resolve under Subscription, publishing each streamed message on a
// channel allocated per invocation.
func Resolvers(agg *ir.Aggregate, lang Lang) (string, error) {
	if err := check(agg); err != nil {
		return "", err
	}
	r := resolverWriter{lang: lang}
	streaming := agg.HasStreaming()

	if lang == TS {
		r.line("import * as grpc from 'grpc'")
		if streaming {
			r.line("import { PubSub } from 'graphql-subscriptions'")
		}
	} else {
		r.line("const grpc = require('grpc')")
		if streaming {
			r.line("const { PubSub } = require('graphql-subscriptions')")
		}
	}

	loaded := map[string]bool{}
	for _, s := range agg.Services {
		if loaded[s.OriginFile] {
			continue
		}
		loaded[s.OriginFile] = true
		r.line("const %s%s = grpc.load('./%s')", naming.ModuleVar(s.OriginFile), r.typeAny(), s.OriginFile)
	}
	r.line("")

	for _, s := range agg.Services {
		r.line("const %s%s = new %s(process.env.%s, grpc.credentials.createInsecure())",
			stubVar(s), r.typeAny(), naming.StubConstructor(s.OriginFile, s.Package, s.Name), naming.EnvVar(s.Name))
		r.line("")
	}

	if streaming {
		r.line("const pubsub = new PubSub()")
		r.line("let nextChannelId = 0")
		r.line("")
	}

	if lang == TS {
		r.line("export const resolvers = {")
	} else {
		r.line("module.exports = {")
	}

	r.line("  Query: {")
	for _, s := range agg.Services {
		r.line("    %s: () => ({", s.FieldName())
		for _, m := range s.Unary() {
			r.unary(s, m)
		}
		r.line("    }),")
	}
	r.line("  },")

	if streaming {
		r.line("  Subscription: {")
		for _, s := range agg.StreamingServices() {
			r.line("    %s: () => ({", s.FieldName())
			for _, m := range s.Streaming() {
				r.subscription(s, m)
			}
			r.line("    }),")
		}
		r.line("  },")
	}
	r.line("}")

	if lang == TS {
		r.line("")
		r.line("export default resolvers")
	}
	return r.b.String(), nil
}

func stubVar(s *ir.Service) string { return s.Name + "Stub" }

type resolverWriter struct {
	b    strings.Builder
	lang Lang
}

func (r *resolverWriter) line(format string, args ...any) {
	fmt.Fprintf(&r.b, format, args...)
	r.b.WriteString("\n")
}

// typeAny annotates untyped bindings in TypeScript output.
func (r *resolverWriter) typeAny() string {
	if r.lang == TS {
		return ": any"
	}
	return ""
}

// params destructures the method argument from the resolver arguments.
func (r *resolverWriter) params(m ir.Method) string {
	return fmt.Sprintf("({ %s }%s)", m.ArgName(), r.typeAny())
}

func (r *resolverWriter) unary(s *ir.Service, m ir.Method) {
	r.line("      %s: %s => {", m.FieldName(), r.params(m))
	r.line("        return new Promise((resolve, reject) => %s.%s(%s, (err%s, res%s) => err ? reject(err) : resolve(res)))",
		stubVar(s), m.Name, m.ArgName(), r.typeAny(), r.typeAny())
	r.line("      },")
}

func (r *resolverWriter) subscription(s *ir.Service, m ir.Method) {
	r.line("      %s: %s => {", m.FieldName(), r.params(m))
	r.line("        const channel = `%s.%s.${nextChannelId++}`", s.Name, m.Name)
	r.line("        const iterator = pubsub.asyncIterator(channel)")
	r.line("        const call = %s.%s(%s)", stubVar(s), m.Name, m.ArgName())
	r.line("        call.on('data', (res%s) => pubsub.publish(channel, res))", r.typeAny())
	r.line("        call.on('end', () => iterator.return())")
	r.line("        call.on('error', (err%s) => iterator.throw(err))", r.typeAny())
	r.line("        return iterator")
	r.line("      },")
}
