package validator

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// PropertyAccessor names a property of T and reads it.
type PropertyAccessor[T, P any] struct {
	Name string
	Get  func(T) P
}

// Property builds an accessor from a getter.
func Property[T, P any](name string, get func(T) P) PropertyAccessor[T, P] {
	if get == nil {
		panic(configError("property %q has no getter", name))
	}
	return PropertyAccessor[T, P]{Name: name, Get: get}
}

type fieldKey struct {
	owner reflect.Type
	path  string
	out   reflect.Type
}

type fieldPath struct {
	steps [][]int
}

var fieldCache sync.Map

// Field builds an accessor for an exported, possibly nested struct field such as
// "Address.City". Nil pointers along the path yield the zero value of P.
// It panics when the path does not resolve to a field assignable to P.
func Field[T, P any](path string) PropertyAccessor[T, P] {
	owner := reflect.TypeFor[T]()
	out := reflect.TypeFor[P]()
	fp := resolveField(owner, path, out)

	return PropertyAccessor[T, P]{
		Name: path,
		Get: func(instance T) P {
			var result P
			v := reflect.ValueOf(&instance).Elem()
			for _, step := range fp.steps {
				for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
					if v.IsNil() {
						return result
					}
					v = v.Elem()
				}
				fv, err := v.FieldByIndexErr(step)
				if err != nil {
					return result
				}
				v = fv
			}
			reflect.ValueOf(&result).Elem().Set(v)
			return result
		},
	}
}

func resolveField(owner reflect.Type, path string, out reflect.Type) *fieldPath {
	key := fieldKey{owner: owner, path: path, out: out}
	if cached, ok := fieldCache.Load(key); ok {
		return cached.(*fieldPath)
	}

	if path == "" {
		panic(configError("empty field path for %s", owner))
	}

	fp := &fieldPath{}
	t := owner
	for name := range strings.SplitSeq(path, ".") {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			panic(configError("field path %q: %s is not a struct", path, t))
		}
		sf, ok := t.FieldByName(name)
		if !ok || !sf.IsExported() {
			panic(configError("field path %q: %s has no exported field %q", path, t, name))
		}
		fp.steps = append(fp.steps, sf.Index)
		t = sf.Type
	}
	if !t.AssignableTo(out) {
		panic(configError("field path %q: %s is not assignable to %s", path, t, out))
	}

	actual, _ := fieldCache.LoadOrStore(key, fp)
	return actual.(*fieldPath)
}

// DisplayName derives a human-readable name from a property path: the last member is
// split at word boundaries, so "Customer.FirstName" becomes "First Name".
func DisplayName(propertyPath string) string {
	name := propertyPath
	if i := strings.LastIndexAny(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '['); i > 0 {
		name = name[:i]
	}
	return SplitPascalCase(name)
}

// SplitPascalCase inserts spaces at word boundaries: "HTMLParserID" -> "HTML Parser ID".
func SplitPascalCase(s string) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
