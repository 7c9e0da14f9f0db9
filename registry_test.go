package frombase

import (
	"errors"
	"sync"
	"testing"
	"unicode/utf8"
)

func TestBuiltinTables(t *testing.T) {
	want := map[string]int{
		"base16":    16,
		"base32":    32,
		"base32hex": 32,
		"crockford": 32,
		"base36":    36,
		"base58":    58,
		"flickr":    58,
		"base62":    62,
		"base64":    64,
		"base64url": 64,
	}

	for name, size := range want {
		chars, ok := LookupTable(name)
		if !ok {
			t.Errorf("builtin table %s missing", name)
			continue
		}
		if n := utf8.RuneCountInString(chars); n != size {
			t.Errorf("table %s has %d characters, want %d", name, n, size)
		}
		seen := make(map[rune]bool)
		for _, c := range chars {
			if seen[c] {
				t.Errorf("table %s repeats %q", name, c)
			}
			seen[c] = true
		}
	}
}

func TestRegisterTable(t *testing.T) {
	if err := RegisterTable("test-binary", "01"); err != nil {
		t.Fatalf("RegisterTable() error = %v", err)
	}
	chars, err := ResolveTable("@test-binary")
	if err != nil {
		t.Fatalf("ResolveTable() error = %v", err)
	}
	if chars != "01" {
		t.Errorf("ResolveTable() = %q, want %q", chars, "01")
	}

	found := false
	for _, name := range TableNames() {
		if name == "test-binary" {
			found = true
		}
	}
	if !found {
		t.Error("TableNames() does not list test-binary")
	}

	if err := RegisterTable("", "01"); err == nil {
		t.Error("RegisterTable() with empty name should fail")
	}
	if err := RegisterTable("@x", "01"); err == nil {
		t.Error("RegisterTable() with @ prefix should fail")
	}
}

func TestResolveTable(t *testing.T) {
	if got, err := ResolveTable("abc"); err != nil || got != "abc" {
		t.Errorf("ResolveTable(literal) = %q, %v", got, err)
	}
	if _, err := ResolveTable("@does-not-exist"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("ResolveTable(unknown) error = %v, want ErrUnknownTable", err)
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := RegisterTable("concurrent", Base36Alphabet); err != nil {
				t.Errorf("RegisterTable() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, ok := LookupTable("base58"); !ok {
				t.Error("base58 missing during concurrent access")
			}
		}()
	}
	wg.Wait()
}
