package candidate

import "testing"

func complete() Record {
	return Record{
		Name:       "John Doe",
		Email:      "john@example.com",
		Phone:      "5551234567",
		Experience: "3.5",
		Position:   "Backend Engineer",
		Location:   "Berlin",
		TechStack:  "Go, PostgreSQL",
	}
}

func TestComplete(t *testing.T) {
	rec := complete()
	if !rec.Complete() {
		t.Fatal("expected record to be complete")
	}

	missing := complete()
	missing.TechStack = "   "
	if missing.Complete() {
		t.Fatal("expected whitespace tech stack to be incomplete")
	}

	empty := Record{}
	if empty.Complete() {
		t.Fatal("expected empty record to be incomplete")
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"John Doe", "john_doe"},
		{"  Ana-Maria O'Neil  ", "ana-maria_oneil"},
		{"Łukasz Kowalski", "łukasz_kowalski"},
		{"", "unknown"},
		{"///", "unknown"},
		{"A  B", "a__b"},
	}

	for _, tc := range cases {
		rec := Record{Name: tc.name}
		if got := rec.Slug(); got != tc.want {
			t.Fatalf("Slug(%q) = %q, expected %q", tc.name, got, tc.want)
		}
	}
}
