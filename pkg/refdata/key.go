package refdata

import (
	"fmt"
	"strings"
)

// Kind names a reference data set.
type Kind string

const (
	KindHeroes Kind = "heroes"
	KindItems  Kind = "items"
)

// DefaultLanguage is assumed for keys without a language.
const DefaultLanguage = "en_us"

// Key identifies one stored reference data set.
type Key struct {
	Kind     Kind
	Language string
}

func (k Key) language() string {
	if k.Language == "" {
		return DefaultLanguage
	}
	return strings.ToLower(k.Language)
}

// String generates a deterministic key string.
// Format: d2:refdata:<kind>:language=<lang>
func (k Key) String() string {
	return fmt.Sprintf("d2:refdata:%s:language=%s", k.Kind, k.language())
}

// FileName returns the file the set is stored in: heroes.json for the
// default language, heroes.de_de.json otherwise.
func (k Key) FileName() string {
	if lang := k.language(); lang != DefaultLanguage {
		return fmt.Sprintf("%s.%s.json", k.Kind, lang)
	}
	return string(k.Kind) + ".json"
}
