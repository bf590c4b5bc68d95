// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfig

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ktong/konfig/tree"
)

// Resolve replaces references in string values with the values they point to.
//
// A reference is written as `${path}`, or `${?path}` if it is optional.
// If a string consists of exactly one reference, it is replaced by the referenced
// value, whatever its kind. Otherwise references are concatenated with the rest of
// the string, and they must point to scalars. A missing optional reference removes
// the field (or array element) holding it, or contributes nothing to a concatenation.
// `$${` is a literal `${`.
//
// References are resolved against the root of the given value. All unresolved
// references are reported, each with the path of the string holding it.
func Resolve(value tree.Value) (tree.Value, error) {
	r := &resolver{
		root:     value,
		resolved: make(map[string]tree.Value),
		visiting: make(map[string]bool),
	}
	resolved, _, err := r.resolve(value, Path{})

	return resolved, err
}

type resolver struct {
	root     tree.Value
	resolved map[string]tree.Value
	visiting map[string]bool
}

func (r *resolver) resolve(value tree.Value, path Path) (tree.Value, bool, error) { //nolint:cyclop
	switch value.Kind() { //nolint:exhaustive
	case tree.KindString:
		text, _ := value.Text()
		if !strings.Contains(text, "${") {
			return value, true, nil
		}

		parts, err := parseReferences(text)
		if err != nil {
			return tree.Value{}, false, r.fail(value, path, err.Error())
		}

		return r.substitute(value, parts, path)
	case tree.KindArray:
		var (
			elems = make([]tree.Value, 0, value.Len())
			errs  []error
		)
		for i, elem := range value.Elements() {
			resolved, keep, err := r.resolve(elem, path.Append(Index(i)))
			if err != nil {
				errs = append(errs, err)

				continue
			}
			if keep {
				elems = append(elems, resolved)
			}
		}
		if err := Combine(errs...); err != nil {
			return tree.Value{}, false, err
		}

		return tree.Array(elems...).WithOrigin(value.Origin()), true, nil
	case tree.KindObject:
		var (
			fields = make([]tree.Field, 0, value.Len())
			errs   []error
		)
		for _, field := range value.Fields() {
			resolved, keep, err := r.resolve(field.Value, path.Append(Key(field.Key)))
			if err != nil {
				errs = append(errs, err)

				continue
			}
			if keep {
				fields = append(fields, tree.Field{Key: field.Key, Value: resolved})
			}
		}
		if err := Combine(errs...); err != nil {
			return tree.Value{}, false, err
		}

		return tree.Object(fields...).WithOrigin(value.Origin()), true, nil
	default:
		return value, true, nil
	}
}

func (r *resolver) substitute(value tree.Value, parts []referencePart, path Path) (tree.Value, bool, error) {
	if len(parts) == 1 && parts[0].ref != nil {
		target, found, err := r.lookup(parts[0].ref, path)
		switch {
		case err != nil:
			return tree.Value{}, false, err
		case !found && parts[0].optional:
			return tree.Value{}, false, nil
		case !found:
			return tree.Value{}, false, r.fail(value, path, "reference ${"+parts[0].ref.String()+"} is not found")
		default:
			return target, true, nil
		}
	}

	var (
		builder strings.Builder
		errs    []error
	)
	for _, part := range parts {
		if part.ref == nil {
			builder.WriteString(part.literal)

			continue
		}

		target, found, err := r.lookup(part.ref, path)
		switch {
		case err != nil:
			errs = append(errs, err)
		case !found && part.optional:
		case !found:
			errs = append(errs, r.fail(value, path, "reference ${"+part.ref.String()+"} is not found"))
		case target.Kind() == tree.KindObject || target.Kind() == tree.KindArray:
			errs = append(errs, r.fail(value, path,
				"reference ${"+part.ref.String()+"} is "+target.Kind().String()+" and can not be concatenated"))
		default:
			if text, ok := target.Text(); ok {
				builder.WriteString(text)
			} else if b, ok := target.Bool(); ok {
				builder.WriteString(strconv.FormatBool(b))
			}
		}
	}
	if err := Combine(errs...); err != nil {
		return tree.Value{}, false, err
	}

	return tree.String(builder.String()).WithOrigin(value.Origin()), true, nil
}

// lookup finds the value at the given path from the root, and resolves it.
func (r *resolver) lookup(ref Path, from Path) (tree.Value, bool, error) {
	key := ref.String()
	if value, ok := r.resolved[key]; ok {
		return value, true, nil
	}
	if r.visiting[key] {
		return tree.Value{}, false, Failures{{
			Kind:        CannotResolve,
			Path:        from,
			Description: "cycle in reference ${" + key + "}",
		}}
	}
	r.visiting[key] = true
	defer delete(r.visiting, key)

	node := r.root
	for i, segment := range ref {
		// A reference on the way may point to the container.
		if node.Kind() == tree.KindString {
			resolved, keep, err := r.resolve(node, ref[:i])
			if err != nil || !keep {
				return tree.Value{}, false, err
			}
			node = resolved
		}

		var ok bool
		if index, isIndex := segment.Index(); isIndex {
			node, ok = node.Index(index)
		} else {
			k, _ := segment.Key()
			node, ok = node.Get(k)
		}
		if !ok {
			return tree.Value{}, false, nil
		}
	}

	resolved, keep, err := r.resolve(node, ref)
	if err != nil || !keep {
		return tree.Value{}, false, err
	}
	r.resolved[key] = resolved

	return resolved, true, nil
}

func (r *resolver) fail(value tree.Value, path Path, description string) error {
	return Failures{{
		Kind:        CannotResolve,
		Path:        path,
		Origin:      value.Origin(),
		Description: description,
	}}
}

type referencePart struct {
	literal  string
	ref      Path
	optional bool
}

func parseReferences(text string) ([]referencePart, error) {
	var (
		parts   []referencePart
		literal strings.Builder
	)
	for pos := 0; pos < len(text); {
		switch {
		case strings.HasPrefix(text[pos:], "$${"):
			literal.WriteString("${")
			pos += 3
		case strings.HasPrefix(text[pos:], "${"):
			end := strings.IndexByte(text[pos:], '}')
			if end < 0 {
				return nil, errUnclosedReference
			}
			expr := text[pos+2 : pos+end]
			optional := strings.HasPrefix(expr, "?")
			ref, err := ParsePath(strings.TrimSpace(strings.TrimPrefix(expr, "?")))
			if err != nil {
				return nil, err
			}
			if len(ref) == 0 {
				return nil, errEmptyReference
			}
			if literal.Len() > 0 {
				parts = append(parts, referencePart{literal: literal.String()})
				literal.Reset()
			}
			parts = append(parts, referencePart{ref: ref, optional: optional})
			pos += end + 1
		default:
			literal.WriteByte(text[pos])
			pos++
		}
	}
	if literal.Len() > 0 || len(parts) == 0 {
		parts = append(parts, referencePart{literal: literal.String()})
	}

	return parts, nil
}

var (
	errUnclosedReference = errors.New("reference is missing '}'")
	errEmptyReference    = errors.New("reference is empty")
)
