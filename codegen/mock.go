package codegen

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// UnionVariantExpander builds one named mock per variant of a union
// selection. It is the capability the mock builder needs from the union
// handler; see TypeMockBuilder for the other direction.
type UnionVariantExpander interface {
	ProcessUnionType(unionDef *ast.Definition, selectionSet ast.SelectionSet, operationName string, registry FragmentRegistry) ([]NamedMock, error)
}

// MockBuilder walks a selection set top-down and produces one or more
// concrete named mocks, combining the scalar generator, the selection
// resolver, and the union handler.
type MockBuilder struct {
	schema   *ast.Schema
	scalars  *ScalarGenerator
	resolver *Resolver
	unions   UnionVariantExpander
}

// NewMockBuilder constructs a MockBuilder wired to a UnionHandler; the two
// call into each other, so the wiring happens here, once.
func NewMockBuilder(schema *ast.Schema, scalars *ScalarGenerator, resolver *Resolver) *MockBuilder {
	builder := &MockBuilder{
		schema:   schema,
		scalars:  scalars,
		resolver: resolver,
	}

	unionHandler := NewUnionHandler(schema)
	unionHandler.AttachBuilder(builder)
	builder.unions = unionHandler

	return builder
}

// BuildForType builds the named mocks for one GraphQL type and selection.
// A union type delegates entirely to the union handler: no top-level object
// is built for the union selection itself. Everything else builds one base
// object seeded with __typename, which may fork into additional sibling
// mocks when a union-typed field is encountered (one per variant). A base
// that ends up with no keys beyond __typename contributes nothing; only the
// forked variants are returned.
func (b *MockBuilder) BuildForType(def *ast.Definition, selectionSet ast.SelectionSet, nameHint string, registry FragmentRegistry) ([]NamedMock, error) {
	resolved, err := b.resolver.Resolve(selectionSet, registry)
	if err != nil {
		return nil, err
	}

	if def.Kind == ast.Union {
		if b.unions == nil {
			panic("codegen: MockBuilder used before a UnionVariantExpander was attached")
		}

		return b.unions.ProcessUnionType(def, resolved, nameHint, registry)
	}

	base := NewMockObject()
	base.Set("__typename", def.Name)

	forks, err := b.populate(base, def, resolved, nameHint, registry)
	if err != nil {
		return nil, err
	}

	mocks := forks
	if base.Len() > 1 {
		mocks = append(mocks, NamedMock{Name: nameHint, TypeName: def.Name, MockValue: base})
	}

	return mocks, nil
}

// populate fills base from the given selections in source order and returns
// the sibling mocks forked off by union-typed fields. Remaining fields after
// a fork keep flowing into base only; the forked copies stay as they were at
// the moment the union field was reached, plus that variant's value.
func (b *MockBuilder) populate(base *MockObject, def *ast.Definition, selections ast.SelectionSet, nameHint string, registry FragmentRegistry) ([]NamedMock, error) {
	var forks []NamedMock

	for _, selection := range selections {
		switch sel := selection.(type) {
		case *ast.Field:
			if sel.Name == "__typename" {
				continue
			}
			fieldDef := b.fieldDefinition(def, sel)
			if fieldDef == nil {
				// Field not present in the schema: dropped, not raised.
				continue
			}
			named := b.schema.Types[fieldDef.Type.Name()]
			if named == nil {
				continue
			}

			key := fieldKey(sel)
			isList := fieldDef.Type.Elem != nil

			switch named.Kind {
			case ast.Scalar:
				value, err := b.scalars.Generate(named.Name)
				if err != nil {
					return nil, err
				}
				base.Set(key, wrapList(value, isList))
			case ast.Enum:
				var value any
				if len(named.EnumValues) > 0 {
					value = named.EnumValues[0].Name
				}
				base.Set(key, wrapList(value, isList))
			case ast.Object, ast.Interface:
				if len(sel.SelectionSet) == 0 {
					// Selected a complex field without saying what to fetch.
					base.Set(key, nil)

					continue
				}
				nestedMocks, err := b.BuildForType(named, sel.SelectionSet, nameHint, registry)
				if err != nil {
					return nil, err
				}
				if len(nestedMocks) == 0 {
					continue
				}
				base.Set(key, wrapList(nestedMocks[0].MockValue, isList))
			case ast.Union:
				if len(sel.SelectionSet) == 0 {
					base.Set(key, nil)

					continue
				}
				variants, err := b.BuildForType(named, sel.SelectionSet, nameHint, registry)
				if err != nil {
					return nil, err
				}
				for _, variant := range variants {
					fork := base.Copy()
					fork.Set(key, wrapList(variant.MockValue, isList))
					forks = append(forks, NamedMock{Name: variant.Name, TypeName: def.Name, MockValue: fork})
				}
				// Zero variants: the field is simply absent from the base.
			}
		case *ast.InlineFragment:
			target := b.inlineTarget(def, sel)
			if target == nil {
				continue
			}
			nestedForks, err := b.populate(base, target, sel.SelectionSet, nameHint, registry)
			if err != nil {
				return nil, err
			}
			forks = append(forks, nestedForks...)
		default:
			// Fragment spreads are gone after resolution; anything else is
			// malformed input and ignored.
		}
	}

	return forks, nil
}

// inlineTarget decides whether an inline fragment applies to def and which
// definition its fields should be looked up on.
func (b *MockBuilder) inlineTarget(def *ast.Definition, inline *ast.InlineFragment) *ast.Definition {
	if inline.TypeCondition == "" || inline.TypeCondition == def.Name {
		return def
	}
	condDef := b.schema.Types[inline.TypeCondition]
	if condDef == nil {
		return nil
	}
	// Broadening to an interface def implements: fields resolve on def too.
	if containsType(def.Interfaces, inline.TypeCondition) {
		return def
	}
	// Narrowing from an interface to one of its implementors.
	if containsType(condDef.Interfaces, def.Name) {
		return condDef
	}

	return nil
}

func (b *MockBuilder) fieldDefinition(def *ast.Definition, field *ast.Field) *ast.FieldDefinition {
	if field.Definition != nil {
		return field.Definition
	}

	return def.Fields.ForName(field.Name)
}

// wrapList wraps a scalar or object value in a single-element array when the
// field's schema type is a list. One element, always: a structurally valid
// sample, not a realistic cardinality.
func wrapList(value any, isList bool) any {
	if isList {
		return []any{value}
	}

	return value
}
