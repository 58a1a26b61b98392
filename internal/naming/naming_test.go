package naming

import "testing"

func TestTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: ".Topping", want: "Topping"},
		{in: "..Topping", want: "Topping"},
		{in: "Topping", want: "Topping"},
		{in: ".Topping.FatContent", want: "ToppingFatContent"},
		{in: ".google.protobuf.Timestamp", want: "GoogleProtobufTimestamp"},
		{in: ".Pizza.Sauce", want: "PizzaSauce"},
	}

	for _, tc := range tests {
		got := TypeName(tc.in)
		if got != tc.want {
			t.Fatalf("TypeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMangleMatchesTypeName(t *testing.T) {
	tests := []struct {
		scope []string
		ref   string
	}{
		{scope: []string{"Pizza"}, ref: ".Pizza"},
		{scope: []string{"Topping", "FatContent", "FatType"}, ref: ".Topping.FatContent.FatType"},
		{scope: []string{"google", "protobuf", "Timestamp"}, ref: ".google.protobuf.Timestamp"},
	}

	for _, tc := range tests {
		if got, want := Mangle(tc.scope...), TypeName(tc.ref); got != want {
			t.Fatalf("Mangle(%v) = %q, TypeName(%q) = %q", tc.scope, got, tc.ref, want)
		}
	}
}

func TestMethodNames(t *testing.T) {
	if got := ArgName(".Topping"); got != "topping" {
		t.Fatalf("ArgName = %q", got)
	}
	if got := FieldName("MakeSimplePizza"); got != "makeSimplePizza" {
		t.Fatalf("FieldName = %q", got)
	}
	if got := FieldName("Pizzeria"); got != "pizzeria" {
		t.Fatalf("FieldName = %q", got)
	}
	if got := EnvVar("Pizzeria"); got != "PIZZERIA_BACKEND_URL" {
		t.Fatalf("EnvVar = %q", got)
	}
	if got := EnvVar("PizzaShop"); got != "PIZZA_SHOP_BACKEND_URL" {
		t.Fatalf("EnvVar = %q", got)
	}
}

func TestModuleVar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "try.proto", want: "Try"},
		{in: "foo/try.proto", want: "FooTry"},
		{in: "pizza_shop.proto", want: "PizzaShop"},
	}
	for _, tc := range tests {
		if got := ModuleVar(tc.in); got != tc.want {
			t.Fatalf("ModuleVar(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := StubConstructor("try.proto", "", "Pizzeria"); got != "Try.Pizzeria" {
		t.Fatalf("StubConstructor = %q", got)
	}
	if got := StubConstructor("shop/v1/shop.proto", "shop.v1", "Pizzeria"); got != "ShopV1Shop.shop.v1.Pizzeria" {
		t.Fatalf("StubConstructor = %q", got)
	}
}
