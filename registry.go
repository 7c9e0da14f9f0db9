package frombase

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// TableRef is the prefix that marks a table argument as the name of a
// registered table rather than a literal alphabet, as in "@base58".
const TableRef = "@"

// Well-known alphabets available by name.
const (
	Base16Alphabet    = "0123456789ABCDEF"
	Base32Alphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	Base32HexAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUV"
	CrockfordAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	Base36Alphabet    = "0123456789abcdefghijklmnopqrstuvwxyz"
	Base58Alphabet    = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	FlickrAlphabet    = "123456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
	Base62Alphabet    = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Base64Alphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	Base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
)

var (
	registryOnce sync.Once
	registryMu   sync.RWMutex
	registry     = map[string]string{}
)

func ensureBuiltinTables() {
	registryOnce.Do(func() {
		builtins := map[string]string{
			"base16":    Base16Alphabet,
			"base32":    Base32Alphabet,
			"base32hex": Base32HexAlphabet,
			"crockford": CrockfordAlphabet,
			"base36":    Base36Alphabet,
			"base58":    Base58Alphabet,
			"flickr":    FlickrAlphabet,
			"base62":    Base62Alphabet,
			"base64":    Base64Alphabet,
			"base64url": Base64URLAlphabet,
		}
		registryMu.Lock()
		defer registryMu.Unlock()
		for name, chars := range builtins {
			if _, ok := registry[name]; !ok {
				registry[name] = chars
			}
		}
	})
}

// RegisterTable makes chars available under name, replacing any previous
// table of that name, including a builtin one.
func RegisterTable(name, chars string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if strings.HasPrefix(name, TableRef) {
		return fmt.Errorf("table name %q cannot start with %q", name, TableRef)
	}
	ensureBuiltinTables()

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = chars
	return nil
}

// LookupTable returns the characters of the named table.
func LookupTable(name string) (string, bool) {
	ensureBuiltinTables()

	registryMu.RLock()
	defer registryMu.RUnlock()
	chars, ok := registry[name]
	return chars, ok
}

// TableNames returns the names of all registered tables, sorted.
func TableNames() []string {
	ensureBuiltinTables()

	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveTable expands a table argument. Arguments starting with TableRef
// name a registered table; anything else is returned unchanged.
func ResolveTable(arg string) (string, error) {
	if !strings.HasPrefix(arg, TableRef) {
		return arg, nil
	}
	name := strings.TrimPrefix(arg, TableRef)
	chars, ok := LookupTable(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return chars, nil
}
