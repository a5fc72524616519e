package tribool

import "testing"

func TestNewFromBool(t *testing.T) {
	if !NewFromBool(true).True() {
		t.Fatal("NewFromBool(true) is not true")
	}
	if !NewFromBool(false).False() {
		t.Fatal("NewFromBool(false) is not false")
	}
}

func TestNot(t *testing.T) {
	if !True.Not().False() {
		t.Fatal("!true is not false")
	}
	if !False.Not().True() {
		t.Fatal("!false is not true")
	}
	if !Undef.Not().Undef() {
		t.Fatal("!undef is not undef")
	}
}

func TestString(t *testing.T) {
	for _, tt := range []struct {
		b    Tribool
		want string
	}{
		{True, "true"},
		{False, "false"},
		{Undef, "undef"},
	} {
		if got := tt.b.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}
