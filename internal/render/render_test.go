package render_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hanpama/protoc-gen-apollo/internal/builder"
	"github.com/hanpama/protoc-gen-apollo/internal/ir"
	"github.com/hanpama/protoc-gen-apollo/internal/protosrc"
	"github.com/hanpama/protoc-gen-apollo/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pizzeria(t *testing.T) *ir.Aggregate {
	t.Helper()
	agg := ir.NewAggregate()
	require.NoError(t, agg.AddEnum(&ir.EnumType{
		Name:        "Sauce",
		Description: " The sauce\n",
		Values: []ir.EnumValue{
			{Name: "TOMATO"},
			{Name: "CREAM", Description: " Like avocado\n"},
		},
	}))
	require.NoError(t, agg.AddObject(&ir.ObjectType{
		Name:        "Pizza",
		Description: " A pizza\n",
		Fields: []ir.Field{
			{Name: "toppings", Type: ir.FieldType{Kind: ir.KindMessage, TypeName: "Topping", Repeated: true}, Required: true},
			{Name: "sauce", Type: ir.FieldType{Kind: ir.KindEnum, TypeName: "Sauce"}, Required: true, Description: " red or white\n"},
		},
	}))
	require.NoError(t, agg.AddObject(&ir.ObjectType{
		Name:   "Topping",
		Fields: []ir.Field{{Name: "name", Type: ir.FieldType{Kind: ir.KindString}, Required: true}},
	}))
	require.NoError(t, agg.AddService(&ir.Service{
		Name:       "Pizzeria",
		OriginFile: "try.proto",
		Methods: []ir.Method{
			{Name: "MakePizza", InputType: ".Pizza", OutputType: ".Pizza"},
			{Name: "WatchOven", InputType: ".Pizza", OutputType: ".Topping", ServerStreaming: true},
		},
	}))
	return agg
}

func TestSDLMessagesOnly(t *testing.T) {
	agg := ir.NewAggregate()
	require.NoError(t, agg.AddObject(&ir.ObjectType{Name: "Pizza"}))
	require.NoError(t, agg.AddObject(&ir.ObjectType{Name: "Topping"}))

	got, err := render.SDL(agg)
	require.NoError(t, err)
	assert.Equal(t, "\n\ntype Pizza {\n}\n\ninput PizzaInput {\n}\n\ntype Topping {\n}\n\ninput ToppingInput {\n}", got)
}

func TestSDLEmpty(t *testing.T) {
	got, err := render.SDL(ir.NewAggregate())
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestSDLPizzeria(t *testing.T) {
	got, err := render.SDL(pizzeria(t))
	require.NoError(t, err)

	want := strings.Join([]string{
		"",
		"# The sauce\nenum Sauce {\n  TOMATO\n  # Like avocado\n  CREAM\n}",
		"# A pizza\ntype Pizza {\n  toppings: [Topping]!\n  # red or white\n  sauce: Sauce!\n}",
		"# A pizza\ninput PizzaInput {\n  toppings: [ToppingInput]\n  # red or white\n  sauce: Sauce\n}",
		"type Topping {\n  name: String!\n}",
		"input ToppingInput {\n  name: String\n}",
		"type PizzeriaService {\n  makePizza(pizza: PizzaInput!): Pizza!\n  watchOven(pizza: PizzaInput!): Topping!\n}",
		"type Query {\n  pizzeria: PizzeriaService!\n}",
		"type Subscription {\n  pizzeria: PizzeriaService!\n}",
	}, "\n\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SDL mismatch (-want +got):\n%s", diff)
	}
}

func TestSDLNoSubscriptionWithoutStreaming(t *testing.T) {
	agg := ir.NewAggregate()
	require.NoError(t, agg.AddService(&ir.Service{
		Name:    "Pizzeria",
		Methods: []ir.Method{{Name: "MakePizza", InputType: ".Pizza", OutputType: ".Pizza"}},
	}))

	got, err := render.SDL(agg)
	require.NoError(t, err)
	assert.Contains(t, got, "type Query {")
	assert.NotContains(t, got, "Subscription")
}

func TestSDLIsIdempotent(t *testing.T) {
	agg := pizzeria(t)
	first, err := render.SDL(agg)
	require.NoError(t, err)
	second, err := render.SDL(agg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSDLPreservesEnumOrder(t *testing.T) {
	values := []string{"ZULU", "ALPHA", "MIKE", "BRAVO"}
	e := &ir.EnumType{Name: "Callsign"}
	for _, v := range values {
		e.Values = append(e.Values, ir.EnumValue{Name: v})
	}
	agg := ir.NewAggregate()
	require.NoError(t, agg.AddEnum(e))

	got, err := render.SDL(agg)
	require.NoError(t, err)

	last := -1
	for _, v := range values {
		assert.Equal(t, 1, strings.Count(got, "  "+v+"\n"), v)
		idx := strings.Index(got, "  "+v+"\n")
		assert.Greater(t, idx, last, v)
		last = idx
	}
}

func TestSDLDescriptionLines(t *testing.T) {
	agg := ir.NewAggregate()
	require.NoError(t, agg.AddObject(&ir.ObjectType{
		Name:        "Pizza",
		Description: " first\r\n\n third\n",
	}))

	got, err := render.SDL(agg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "\n\n# first\n#\n# third\ntype Pizza {\n}"), got)
}

func TestRenderRejectsUnknownKind(t *testing.T) {
	agg := ir.NewAggregate()
	require.NoError(t, agg.AddObject(&ir.ObjectType{
		Name:   "Pizza",
		Fields: []ir.Field{{Name: "photo", Type: ir.FieldType{Kind: "BYTES"}}},
	}))

	_, err := render.SDL(agg)
	require.Error(t, err)
	_, err = render.TypeDefs(agg, render.JS)
	require.Error(t, err)
	_, err = render.Resolvers(agg, render.JS)
	require.Error(t, err)
}

func TestTypeDefsEscapesTemplates(t *testing.T) {
	agg := ir.NewAggregate()
	require.NoError(t, agg.AddObject(&ir.ObjectType{
		Name:        "Pizza",
		Description: " use `oven` at ${temp} \\ 200\n",
	}))

	got, err := render.TypeDefs(agg, render.JS)
	require.NoError(t, err)
	assert.Contains(t, got, "# use \\`oven\\` at \\${temp} \\\\ 200\n")
	assert.True(t, strings.HasSuffix(got, "module.exports = [\n  Pizza,\n  PizzaInput,\n]\n"), got)
	assert.NotContains(t, got, "const Query")
}

func TestResolversSubscriptionEntries(t *testing.T) {
	agg := ir.NewAggregate()
	require.NoError(t, agg.AddService(&ir.Service{
		Name:       "Tracker",
		OriginFile: "track.proto",
		Methods: []ir.Method{
			{Name: "Locate", InputType: ".Order", OutputType: ".Position"},
			{Name: "Follow", InputType: ".Order", OutputType: ".Position", ServerStreaming: true},
			{Name: "Watch", InputType: ".Order", OutputType: ".Position", ServerStreaming: true},
		},
	}))
	require.NoError(t, agg.AddService(&ir.Service{
		Name:       "Menu",
		OriginFile: "track.proto",
		Methods:    []ir.Method{{Name: "List", InputType: ".Order", OutputType: ".Order"}},
	}))

	for _, lang := range []render.Lang{render.JS, render.TS} {
		t.Run(string(lang), func(t *testing.T) {
			got, err := render.Resolvers(agg, lang)
			require.NoError(t, err)

			query, subscription, found := strings.Cut(got, "  Subscription: {\n")
			require.True(t, found)
			assert.Equal(t, 2, strings.Count(subscription, "pubsub.asyncIterator("))
			assert.Contains(t, subscription, "`Tracker.Follow.${nextChannelId++}`")
			assert.Contains(t, subscription, "`Tracker.Watch.${nextChannelId++}`")
			assert.NotContains(t, subscription, "locate:")
			assert.NotContains(t, subscription, "menu:")

			assert.Contains(t, query, "locate: ")
			assert.Contains(t, query, "list: ")
			assert.NotContains(t, query, "follow:")
			assert.Equal(t, 1, strings.Count(got, "grpc.load("))
		})
	}
}

func TestResolversWithoutStreaming(t *testing.T) {
	agg := ir.NewAggregate()
	require.NoError(t, agg.AddService(&ir.Service{
		Name:       "Pizzeria",
		Package:    "shop.v1",
		OriginFile: "shop/v1/shop.proto",
		Methods:    []ir.Method{{Name: "MakePizza", InputType: ".shop.v1.Pizza", OutputType: ".shop.v1.Pizza"}},
	}))

	got, err := render.Resolvers(agg, render.JS)
	require.NoError(t, err)
	assert.NotContains(t, got, "PubSub")
	assert.NotContains(t, got, "Subscription")
	assert.Contains(t, got, "const ShopV1Shop = grpc.load('./shop/v1/shop.proto')\n")
	assert.Contains(t, got, "new ShopV1Shop.shop.v1.Pizzeria(process.env.PIZZERIA_BACKEND_URL, grpc.credentials.createInsecure())")
	assert.Contains(t, got, "makePizza: ({ shop_v1_pizza }) => {")
}

func TestResolversLoadEachFileOnce(t *testing.T) {
	agg := ir.NewAggregate()
	for _, s := range []struct{ name, file string }{{"A", "b.proto"}, {"B", "a.proto"}, {"C", "b.proto"}} {
		require.NoError(t, agg.AddService(&ir.Service{Name: s.name, OriginFile: s.file}))
	}

	got, err := render.Resolvers(agg, render.JS)
	require.NoError(t, err)
	b := strings.Index(got, "grpc.load('./b.proto')")
	a := strings.Index(got, "grpc.load('./a.proto')")
	require.GreaterOrEqual(t, b, 0)
	require.Greater(t, a, b)
	assert.Equal(t, 2, strings.Count(got, "grpc.load("))
}

func TestParseLang(t *testing.T) {
	for in, want := range map[string]render.Lang{"": render.JS, "js": render.JS, "ts": render.TS} {
		got, err := render.ParseLang(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := render.ParseLang("coffee")
	require.Error(t, err)
	assert.Equal(t, "ts", render.TS.Ext())
	assert.Equal(t, "js", render.JS.Ext())
}

func TestPizzeriaSnapshots(t *testing.T) {
	agg := pizzeria(t)
	for _, tc := range []struct {
		snapshot string
		render   func() (string, error)
	}{
		{"pizzeria-type-defs.js", func() (string, error) { return render.TypeDefs(agg, render.JS) }},
		{"pizzeria-type-defs.ts", func() (string, error) { return render.TypeDefs(agg, render.TS) }},
		{"pizzeria-resolvers.js", func() (string, error) { return render.Resolvers(agg, render.JS) }},
		{"pizzeria-resolvers.ts", func() (string, error) { return render.Resolvers(agg, render.TS) }},
	} {
		t.Run(tc.snapshot, func(t *testing.T) {
			got, err := tc.render()
			require.NoError(t, err)
			matchSnapshot(t, filepath.Join("testdata", tc.snapshot), got)
		})
	}
}

func TestCompiledSchemaSnapshot(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "shop.proto"))
	require.NoError(t, err)
	loader, err := protosrc.FromMap(map[string]string{"shop.proto": string(src)})
	require.NoError(t, err)
	files, err := loader.Load(context.Background(), "shop.proto")
	require.NoError(t, err)

	agg, err := builder.Build(files, nil)
	require.NoError(t, err)
	got, err := render.SDL(agg)
	require.NoError(t, err)
	matchSnapshot(t, filepath.Join("testdata", "shop.graphql"), got)
}

func matchSnapshot(t *testing.T, snapshotPath, actual string) {
	t.Helper()

	// If snapshot doesn't exist, create it
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		err := os.WriteFile(snapshotPath, []byte(actual), 0644)
		require.NoError(t, err, "failed to write snapshot file")
		t.Logf("Created snapshot file: %s", snapshotPath)
		return
	}

	expected, err := os.ReadFile(snapshotPath)
	require.NoError(t, err, "failed to read snapshot file")

	if diff := cmp.Diff(string(expected), actual); diff != "" {
		t.Errorf("snapshot %s mismatch (-want +got):\n%s", snapshotPath, diff)
	}
}
