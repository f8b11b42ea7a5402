package codegen

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// FragmentRegistry maps fragment names to their definitions. It is built once
// per run, across all input documents, before any generation begins; that is
// what lets a fragment defined in one file be spread in another.
type FragmentRegistry map[string]*ast.FragmentDefinition

// NewFragmentRegistry collects the fragments of all given documents.
// Nil documents are skipped.
func NewFragmentRegistry(documents ...*ast.QueryDocument) FragmentRegistry {
	registry := FragmentRegistry{}
	for _, document := range documents {
		if document == nil {
			continue
		}
		for _, fragment := range document.Fragments {
			registry[fragment.Name] = fragment
		}
	}

	return registry
}

// fragmentNameSuffixes are the naming-convention suffixes stripped when
// guessing the GraphQL type behind an unresolvable fragment spread.
// First match wins, case-sensitive.
var fragmentNameSuffixes = []string{"Fragment", "Fields", "Details", "Info", "Data", "Props"}

// maxSynthesizedFields bounds the substitute field list synthesized for an
// unresolvable fragment spread.
const maxSynthesizedFields = 3

// Resolver expands fragment spreads into a flat, self-contained selection
// tree. Inline fragments are preserved as fragment boundaries so downstream
// union handling can still see them; their contents are resolved recursively.
type Resolver struct {
	schema *ast.Schema
	strict bool
}

// NewResolver creates a Resolver. With strict set, an unresolvable fragment
// spread is an error instead of triggering the best-effort field synthesis.
func NewResolver(schema *ast.Schema, strict bool) *Resolver {
	return &Resolver{schema: schema, strict: strict}
}

// Resolve returns a copy of selectionSet with every fragment spread spliced
// in place and every nested selection set resolved. The input is not mutated.
func (r *Resolver) Resolve(selectionSet ast.SelectionSet, registry FragmentRegistry) (ast.SelectionSet, error) {
	return r.resolve(selectionSet, registry, map[string]bool{})
}

// expanding guards against cyclic fragment definitions, which are invalid
// GraphQL but must not hang the generator.
func (r *Resolver) resolve(selectionSet ast.SelectionSet, registry FragmentRegistry, expanding map[string]bool) (ast.SelectionSet, error) {
	resolved := make(ast.SelectionSet, 0, len(selectionSet))

	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *ast.Field:
			if len(sel.SelectionSet) == 0 {
				resolved = append(resolved, sel)

				continue
			}
			inner, err := r.resolve(sel.SelectionSet, registry, expanding)
			if err != nil {
				return nil, err
			}
			field := *sel
			field.SelectionSet = inner
			resolved = append(resolved, &field)
		case *ast.FragmentSpread:
			fragment := registry[sel.Name]
			if fragment == nil || expanding[sel.Name] {
				if r.strict {
					return nil, fmt.Errorf("fragment %s could not be resolved from the given documents", sel.Name)
				}
				resolved = append(resolved, r.synthesizeFields(sel.Name)...)

				continue
			}
			expanding[sel.Name] = true
			inner, err := r.resolve(fragment.SelectionSet, registry, expanding)
			delete(expanding, sel.Name)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, inner...)
		case *ast.InlineFragment:
			inner, err := r.resolve(sel.SelectionSet, registry, expanding)
			if err != nil {
				return nil, err
			}
			inline := *sel
			inline.SelectionSet = inner
			resolved = append(resolved, &inline)
		default:
			// Unexpected selection kinds are dropped rather than raised.
		}
	}

	return resolved, nil
}

// synthesizeFields builds a plausible substitute selection for a fragment
// whose definition is unavailable (the near-operation-file layout passes
// files one at a time). The fragment name is mapped to a candidate type via
// suffix stripping, and a few of that type's scalar fields stand in for the
// real selection. Heuristic only: the result may not match the real fragment.
func (r *Resolver) synthesizeFields(fragmentName string) ast.SelectionSet {
	typeName := fragmentName
	for _, suffix := range fragmentNameSuffixes {
		if strings.HasSuffix(fragmentName, suffix) && len(fragmentName) > len(suffix) {
			typeName = strings.TrimSuffix(fragmentName, suffix)

			break
		}
	}

	def := r.schema.Types[typeName]
	if def == nil || (def.Kind != ast.Object && def.Kind != ast.Interface) {
		return nil
	}

	var selections ast.SelectionSet
	for _, field := range def.Fields {
		if len(selections) == maxSynthesizedFields {
			break
		}
		if strings.HasPrefix(field.Name, "__") {
			continue
		}
		named := r.schema.Types[field.Type.Name()]
		if named == nil || (named.Kind != ast.Scalar && named.Kind != ast.Enum) {
			continue
		}
		selections = append(selections, &ast.Field{
			Name:             field.Name,
			Alias:            field.Name,
			Definition:       field,
			ObjectDefinition: def,
		})
	}

	return selections
}
