package keypath

import (
	"testing"

	"github.com/goliatone/go-modelgen/pkg/model"
)

func TestResolve(t *testing.T) {
	type key string
	source := map[string]any{
		"foo": map[string]any{
			"foo": map[string]any{"foo": "bar"},
		},
		"list":  []any{map[string]any{"a": 1}},
		"null":  nil,
		"typed": map[key]int{"n": 7},
	}

	cases := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{path: "foo.foo.foo", want: "bar", wantOK: true},
		{path: "foo.missing", wantOK: false},
		{path: "foo.foo.foo.deeper", wantOK: false},
		{path: "list.0", wantOK: false},
		{path: "null", want: nil, wantOK: true},
		{path: "null.child", wantOK: false},
		{path: "typed.n", want: 7, wantOK: true},
		{path: "", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got, ok := Resolve(source, tc.path)
			if ok != tc.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tc.path, ok, tc.wantOK)
			}
			if got != tc.want {
				t.Fatalf("Resolve(%q) = %#v, want %#v", tc.path, got, tc.want)
			}
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	source := map[string]any{"a": map[string]any{"b": "c"}}
	first, ok1 := Resolve(source, "a.b")
	second, ok2 := Resolve(source, "a.b")
	if first != second || ok1 != ok2 {
		t.Fatalf("resolution changed between calls: %#v/%v vs %#v/%v", first, ok1, second, ok2)
	}
	if len(source) != 1 || len(source["a"].(map[string]any)) != 1 {
		t.Fatalf("source mutated: %#v", source)
	}
}

func TestResolveThroughInstance(t *testing.T) {
	child := model.New()
	child.Set("name", "leaf")
	source := map[string]any{"child": child}

	got, ok := Resolve(source, "child.name")
	if !ok || got != "leaf" {
		t.Fatalf("Resolve through instance = %#v, %v", got, ok)
	}
	if _, ok := Resolve(source, "child.missing"); ok {
		t.Fatalf("missing instance field must be absent")
	}
}

func TestResolveNonObjectSource(t *testing.T) {
	if _, ok := Resolve("scalar", "a"); ok {
		t.Fatalf("scalar source must resolve absent")
	}
	if _, ok := Resolve(nil, "a"); ok {
		t.Fatalf("nil source must resolve absent")
	}
}
