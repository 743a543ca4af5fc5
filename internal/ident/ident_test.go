package ident

import "testing"

func TestToSnake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"foo", "foo"},
		{"Foo", "foo"},
		{"FooBar", "foo_bar"},
		{"fooBar", "foo_bar"},
		{"FOO_BAR", "foo_bar"},
		{"FooBARBaz", "foo_bar_baz"},
		{"foo_bar", "foo_bar"},
		{"Foo1Bar", "foo1_bar"},
		{"HTTPServer", "http_server"},
	}
	for _, c := range cases {
		if got := ToSnake(c.in); got != c.want {
			t.Errorf("ToSnake(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToUpperCamel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"foo", "Foo"},
		{"foo_bar", "FooBar"},
		{"FOO_BAR", "FooBar"},
		{"fooBar", "FooBar"},
		{"foo_bar_1", "FooBar1"},
		{"FOO_BAR_ONE", "FooBarOne"},
	}
	for _, c := range cases {
		if got := ToUpperCamel(c.in); got != c.want {
			t.Errorf("ToUpperCamel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		pattern string
		fqName  string
		field   string
		want    bool
	}{
		{".", ".foo.Bar", "", true},
		{"", ".foo.Bar", "", false},
		{".foo.Bar", ".foo.Bar", "", true},
		{".foo", ".foo.Bar", "", true},
		{".foo.Ba", ".foo.Bar", "", false},
		{".other", ".foo.Bar", "", false},
		{"Bar", ".foo.Bar", "", true},
		{"foo.Bar", ".foo.Bar", "", true},
		{"ar", ".foo.Bar", "", false},
		{"baz", ".foo.Bar", "baz", true},
		{"Bar.baz", ".foo.Bar", "baz", true},
		{".foo.Bar", ".foo.Bar", "baz", true},
		{"Bar", ".foo.Bar", "baz", false},
	}
	for _, c := range cases {
		if got := Match(c.pattern, c.fqName, c.field); got != c.want {
			t.Errorf("Match(%q, %q, %q) = %v, want %v", c.pattern, c.fqName, c.field, got, c.want)
		}
	}
}
