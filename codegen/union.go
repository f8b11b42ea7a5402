package codegen

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// TypeMockBuilder builds named mocks for any GraphQL type. It is the
// capability the union handler needs from the mock builder; the two are
// mutually recursive and get wired together at construction time.
type TypeMockBuilder interface {
	BuildForType(def *ast.Definition, selectionSet ast.SelectionSet, nameHint string, registry FragmentRegistry) ([]NamedMock, error)
}

// UnionHandler produces one named mock variant per inline fragment of a
// union selection, named "<operationName>As<TypeName>".
type UnionHandler struct {
	schema  *ast.Schema
	builder TypeMockBuilder
}

func NewUnionHandler(schema *ast.Schema) *UnionHandler {
	return &UnionHandler{schema: schema}
}

// AttachBuilder wires the mock builder the handler delegates variants to.
func (h *UnionHandler) AttachBuilder(builder TypeMockBuilder) {
	h.builder = builder
}

// ProcessUnionType iterates only the inline fragments directly inside
// selectionSet; bare fields alongside them are ignored, since a union
// field's own sub-selections do not apply per GraphQL semantics. Invalid
// type conditions (missing, unknown, or not a member of the union) skip the
// variant; other variants may still be valid, so this is never an error.
func (h *UnionHandler) ProcessUnionType(unionDef *ast.Definition, selectionSet ast.SelectionSet, operationName string, registry FragmentRegistry) ([]NamedMock, error) {
	if h.builder == nil {
		// A handler without its collaborator is an assembly bug, not a data error.
		panic("codegen: UnionHandler used before a TypeMockBuilder was attached")
	}

	var mocks []NamedMock
	for _, selection := range selectionSet {
		inline, ok := selection.(*ast.InlineFragment)
		if !ok || inline.TypeCondition == "" {
			continue
		}
		variantDef := h.schema.Types[inline.TypeCondition]
		if variantDef == nil || !containsType(unionDef.Types, inline.TypeCondition) {
			continue
		}

		variantMocks, err := h.builder.BuildForType(variantDef, inline.SelectionSet, operationName+"As"+inline.TypeCondition, registry)
		if err != nil {
			return nil, err
		}
		mocks = append(mocks, variantMocks...)
	}

	return mocks, nil
}
