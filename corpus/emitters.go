package corpus

import (
	"strings"

	"github.com/teranos/fixturegen/emit"
	"github.com/teranos/fixturegen/emit/golang"
	"github.com/teranos/fixturegen/emit/python"
	"github.com/teranos/fixturegen/emit/ruby"
	"github.com/teranos/fixturegen/emit/rustlang"
	"github.com/teranos/fixturegen/emit/typescript"
	"github.com/teranos/fixturegen/errors"
)

// Emitters returns every registered language emitter, in stable order.
func Emitters() []emit.Emitter {
	return []emit.Emitter{
		golang.New(),
		python.New(),
		ruby.New(),
		rustlang.New(),
		typescript.New(),
	}
}

// Languages returns the stable language keys of all emitters.
func Languages() []string {
	all := Emitters()
	out := make([]string, len(all))
	for i, e := range all {
		out[i] = e.Language()
	}
	return out
}

// EmittersFor resolves language keys to emitters. An empty selection means
// all languages.
func EmittersFor(langs []string) ([]emit.Emitter, error) {
	all := Emitters()
	if len(langs) == 0 {
		return all, nil
	}

	byKey := make(map[string]emit.Emitter, len(all))
	for _, e := range all {
		byKey[e.Language()] = e
	}

	var out []emit.Emitter
	for _, lang := range langs {
		e, ok := byKey[strings.ToLower(strings.TrimSpace(lang))]
		if !ok {
			return nil, errors.Newf("unknown language %q (supported: %s)", lang, strings.Join(Languages(), ", "))
		}
		out = append(out, e)
	}
	return out, nil
}
