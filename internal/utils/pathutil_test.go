package utils

import "testing"

func TestParentDir(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"src/auth/login.go", "src/auth"},
		{"src\\auth\\login.go", "src/auth"},
		{"src/auth/", "src/auth"},
		{"src/auth", "src/auth"},
		{"main.go", ""},
		{"src/v1.2/handler.ts", "src/v1.2"},
		{"", ""},
	}
	for _, c := range cases {
		if got := ParentDir(c.in); got != c.want {
			t.Errorf("ParentDir(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"src/auth", "src-auth"},
		{"Auth Core!", "auth-core"},
		{"  hello   world  ", "hello-world"},
		{"___", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slug(c.in); got != c.want {
			t.Errorf("Slug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"src/auth-core", "Auth Core"},
		{"src/user_service", "User Service"},
		{"api", "Api"},
		{"", ""},
	}
	for _, c := range cases {
		if got := DisplayName(c.in); got != c.want {
			t.Errorf("DisplayName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
