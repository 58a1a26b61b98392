package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hanpama/protoc-gen-apollo/internal/codegen"
	"github.com/hanpama/protoc-gen-apollo/internal/config"
	"github.com/hanpama/protoc-gen-apollo/internal/eventbus"
	"github.com/hanpama/protoc-gen-apollo/internal/events"
	"github.com/hanpama/protoc-gen-apollo/internal/otel"
	"github.com/hanpama/protoc-gen-apollo/internal/output"
	"github.com/hanpama/protoc-gen-apollo/internal/plugin"
	"github.com/hanpama/protoc-gen-apollo/internal/protosrc"
	"github.com/hanpama/protoc-gen-apollo/internal/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	st := &state{
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	if err := run(context.Background(), st, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "protoc-gen-apollo:", err)
		os.Exit(1)
	}
}

// state is what the commands need from the process. Tests swap every field.
type state struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	log *logrus.Logger
	bus *eventbus.Bus
}

func run(ctx context.Context, st *state, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if st.log, err = cfg.NewLogger(st.stderr); err != nil {
		return err
	}

	st.bus = eventbus.New()
	eventbus.Use(st.bus)
	eventbus.Subscribe(st.bus, func(_ context.Context, e events.ArtifactRendered) {
		st.log.WithFields(logrus.Fields{"name": e.Name, "bytes": e.Bytes}).Debug("artifact rendered")
	})
	shutdown, err := otel.Setup(st.bus, cfg.OTelEndpoint, cfg.OTelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			st.log.WithError(err).Warn("otel shutdown")
		}
	}()

	if args == nil {
		// cobra reads os.Args when given nil
		args = []string{}
	}
	root := newRootCmd(st)
	root.SetArgs(args)
	root.SetIn(st.stdin)
	root.SetOut(st.stdout)
	root.SetErr(st.stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:   "protoc-gen-apollo",
		Short: "Generate Apollo GraphQL schemas and resolver stubs from protobuf services",
		Long: `Without a subcommand, protoc-gen-apollo runs as a protoc plugin: it reads a
CodeGeneratorRequest on stdin and writes a CodeGeneratorResponse on stdout.

Plugin parameters are passed with --apollo_opt, e.g. lang=ts,validate.`,
		Example: `
  protoc --apollo_out=gen --apollo_opt=lang=ts pizzeria.proto
  protoc-gen-apollo compile -I proto --out gen pizzeria.proto`[1:],
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return plugin.Run(cmd.Context(), st.stdin, st.stdout, codegen.Options{Log: st.log, Bus: st.bus})
		},
	}
	root.AddCommand(newCompileCmd(st), newVersionCmd())
	return root
}

type compileCmd struct {
	st          *state
	importPaths []string
	outDir      string
	lang        string
	validate    bool
}

func newCompileCmd(st *state) *cobra.Command {
	c := &compileCmd{st: st}
	cmd := &cobra.Command{
		Use:   "compile [flags] file.proto...",
		Short: "Compile .proto sources without protoc",
		Long: `Compile .proto sources in-process and write the same artifacts protoc would
receive from the plugin. Well-known imports such as google/protobuf/timestamp.proto
resolve without being on disk.`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run,
	}
	cmd.Flags().AddFlagSet(c.flagSet())
	return cmd
}

func (c *compileCmd) flagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.StringArrayVarP(&c.importPaths, "proto_path", "I", nil, "directory searched for imports, repeatable (default: .)")
	flags.StringVar(&c.outDir, "out", ".", "directory the generated files are written to")
	flags.StringVar(&c.lang, "lang", string(render.JS), "flavour of the generated modules, js or ts")
	flags.BoolVar(&c.validate, "validate", false, "load the generated SDL with a GraphQL parser before writing")
	return flags
}

func (c *compileCmd) run(cmd *cobra.Command, args []string) error {
	lang, err := render.ParseLang(c.lang)
	if err != nil {
		return err
	}
	importPaths := c.importPaths
	if len(importPaths) == 0 {
		importPaths = []string{"."}
	}

	files, err := protosrc.NewLoader(c.st.fs, importPaths...).Load(cmd.Context(), args...)
	if err != nil {
		return err
	}
	out, err := codegen.Generate(cmd.Context(), files, args, codegen.Options{
		Lang:     lang,
		Validate: c.validate,
		Log:      c.st.log,
		Bus:      c.st.bus,
	})
	if err != nil {
		return err
	}
	return output.WriteFiles(c.st.fs, c.outDir, out, c.st.log)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show application version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "protoc-gen-apollo", version)
			return err
		},
	}
}
