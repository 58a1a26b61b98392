package naming

import (
	"path"
	"strings"

	"github.com/ettle/strcase"
)

// Mangle joins a declaration scope (package segments, enclosing message names
// and the declaration's own name) into a single GraphQL type name.
func Mangle(scope ...string) string {
	return strcase.ToPascal(strings.Join(scope, "_"))
}

// TypeName resolves a descriptor type reference such as ".pkg.Outer.Inner"
// to the name its declaration was mangled into.
func TypeName(ref string) string {
	return strcase.ToPascal(flatten(ref))
}

// ArgName is the argument name used for a method's request message.
func ArgName(ref string) string {
	return strcase.ToSnake(flatten(ref))
}

// PackageScope splits a dotted proto package into scope segments.
func PackageScope(pkg string) []string {
	if pkg == "" {
		return nil
	}
	return strings.Split(pkg, ".")
}

// FieldName is the mixed-case field name used for services and methods.
func FieldName(name string) string {
	return strcase.ToCamel(name)
}

func EnvVar(serviceName string) string {
	return strcase.ToSNAKE(serviceName) + "_BACKEND_URL"
}

// ModuleVar names the variable a proto file is loaded into by the resolver
// module, e.g. "foo/try.proto" becomes "FooTry".
func ModuleVar(file string) string {
	file = strings.TrimSuffix(file, path.Ext(file))
	file = strings.NewReplacer("/", "_", ".", "_", "-", "_").Replace(file)
	return strcase.ToPascal(file)
}

// StubConstructor addresses a service client inside the namespace returned by
// grpc.load for its file.
func StubConstructor(file, pkg, service string) string {
	parts := []string{ModuleVar(file)}
	parts = append(parts, PackageScope(pkg)...)
	parts = append(parts, service)
	return strings.Join(parts, ".")
}

func flatten(ref string) string {
	return strings.ReplaceAll(strings.TrimLeft(ref, "."), ".", "_")
}
