package commands

import (
	"errors"
	"testing"
)

func TestRegistry_Execute(t *testing.T) {
	r := NewRegistry()
	var ran []string
	r.Register('a', "ok", func() error {
		ran = append(ran, "a")
		return nil
	})
	boom := errors.New("boom")
	r.Register('b', "fail", func() error { return boom })

	if err := r.Execute('a'); err != nil {
		t.Fatalf("Execute('a') = %v", err)
	}
	if len(ran) != 1 {
		t.Errorf("ran = %v, want one call", ran)
	}
	if err := r.Execute('b'); !errors.Is(err, boom) {
		t.Errorf("Execute('b') = %v, want wrapped boom", err)
	}
	if err := r.Execute('z'); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Execute('z') = %v, want ErrUnknownCommand", err)
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register('x', "first", func() error { return nil })
	r.Register('x', "second", func() error { return nil })
	c, ok := r.Lookup('x')
	if !ok || c.Name != "second" {
		t.Errorf("Lookup('x') = %+v, %v; want second", c, ok)
	}
	if !r.Has('x') || r.Has('y') {
		t.Error("Has reports wrong bindings")
	}
}

func TestRegistry_CommandsSorted(t *testing.T) {
	r := NewRegistry()
	for _, code := range []int{'z', ' ', 'a'} {
		r.Register(code, KeyName(code), func() error { return nil })
	}
	got := r.Commands()
	want := []int{' ', 'a', 'z'}
	for i, c := range got {
		if c.Code != want[i] {
			t.Errorf("Commands()[%d].Code = %d, want %d", i, c.Code, want[i])
		}
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{' ', "space"},
		{'a', "'a'"},
		{13, "key 13"},
		{300, "key 300"},
	}
	for _, tt := range tests {
		if got := KeyName(tt.code); got != tt.want {
			t.Errorf("KeyName(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
