package codegen

import (
	"regexp"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// TypeField is one named field of an object type description. Fields are kept
// in selection order so rendered types line up with emitted mock values.
type TypeField struct {
	Name string
	Type *TypeInfo
}

// TypeInfo is a semantic description of the shape a selection produces,
// decoupled from any concrete mock value. It is what type declarations are
// rendered from.
type TypeInfo struct {
	TypeString    string
	IsArray       bool
	IsNullable    bool
	ObjectFields  []TypeField
	UnionVariants map[string][]TypeField
}

// FieldType returns the TypeInfo of the named object field, or nil.
func (i *TypeInfo) FieldType(name string) *TypeInfo {
	for _, field := range i.ObjectFields {
		if field.Name == name {
			return field.Type
		}
	}

	return nil
}

// TypeAnalyzer maps a GraphQL type plus a selection set into TypeInfo.
type TypeAnalyzer struct {
	schema   *ast.Schema
	resolver *Resolver
}

func NewTypeAnalyzer(schema *ast.Schema, resolver *Resolver) *TypeAnalyzer {
	return &TypeAnalyzer{schema: schema, resolver: resolver}
}

// Analyze strips List/NonNull wrappers, classifies the named type, and for
// object selections recursively describes every selected field. Selection
// sets are resolved through the Resolver first, so fragment spreads count
// toward the described fields.
func (a *TypeAnalyzer) Analyze(t *ast.Type, selectionSet ast.SelectionSet, registry FragmentRegistry) *TypeInfo {
	if t.Elem != nil {
		inner := a.Analyze(t.Elem, selectionSet, registry)

		return &TypeInfo{
			TypeString:    inner.TypeString,
			IsArray:       true,
			IsNullable:    !t.NonNull,
			ObjectFields:  inner.ObjectFields,
			UnionVariants: inner.UnionVariants,
		}
	}

	info := a.analyzeNamed(t.NamedType, selectionSet, registry)
	info.IsNullable = !t.NonNull

	return info
}

// AnalyzeDefinition describes a selection against a concrete definition, as
// used for fragment definitions and union variants.
func (a *TypeAnalyzer) AnalyzeDefinition(def *ast.Definition, selectionSet ast.SelectionSet, registry FragmentRegistry) *TypeInfo {
	return a.Analyze(&ast.Type{NamedType: def.Name}, selectionSet, registry)
}

func (a *TypeAnalyzer) analyzeNamed(typeName string, selectionSet ast.SelectionSet, registry FragmentRegistry) *TypeInfo {
	def := a.schema.Types[typeName]
	if def == nil {
		return &TypeInfo{TypeString: "any"}
	}

	switch def.Kind {
	case ast.Scalar:
		return &TypeInfo{TypeString: scalarTypeString(typeName)}
	case ast.Enum:
		return &TypeInfo{TypeString: "string"}
	case ast.Union:
		info := &TypeInfo{TypeString: "object"}
		if len(selectionSet) > 0 {
			info.UnionVariants = a.unionVariants(def, selectionSet, registry)
		}

		return info
	case ast.Object, ast.Interface:
		if len(selectionSet) == 0 {
			// Selected but unexpanded complex fields mock to null.
			return &TypeInfo{TypeString: "null"}
		}

		return &TypeInfo{ObjectFields: a.objectFields(def, selectionSet, registry)}
	default:
		return &TypeInfo{TypeString: "any"}
	}
}

// objectFields flattens the resolved selection set into a field list.
// Inline fragments on object/interface selections contribute their fields
// directly; duplicate field names keep the first occurrence.
func (a *TypeAnalyzer) objectFields(def *ast.Definition, selectionSet ast.SelectionSet, registry FragmentRegistry) []TypeField {
	resolved, err := a.resolver.Resolve(selectionSet, registry)
	if err != nil {
		resolved = selectionSet
	}

	fields := make([]TypeField, 0, len(resolved))
	seen := map[string]bool{}

	var addSelections func(selections ast.SelectionSet)
	addSelections = func(selections ast.SelectionSet) {
		for _, selection := range selections {
			switch sel := selection.(type) {
			case *ast.Field:
				if sel.Name == "__typename" || seen[fieldKey(sel)] {
					continue
				}
				fieldDef := a.fieldDefinition(def, sel)
				if fieldDef == nil {
					continue
				}
				seen[fieldKey(sel)] = true
				fields = append(fields, TypeField{
					Name: fieldKey(sel),
					Type: a.Analyze(fieldDef.Type, sel.SelectionSet, registry),
				})
			case *ast.InlineFragment:
				addSelections(sel.SelectionSet)
			}
		}
	}
	addSelections(resolved)

	return fields
}

// unionVariants maps each valid inline-fragment variant to its field list.
func (a *TypeAnalyzer) unionVariants(def *ast.Definition, selectionSet ast.SelectionSet, registry FragmentRegistry) map[string][]TypeField {
	resolved, err := a.resolver.Resolve(selectionSet, registry)
	if err != nil {
		resolved = selectionSet
	}

	variants := map[string][]TypeField{}
	for _, selection := range resolved {
		inline, ok := selection.(*ast.InlineFragment)
		if !ok || inline.TypeCondition == "" {
			continue
		}
		variantDef := a.schema.Types[inline.TypeCondition]
		if variantDef == nil || !containsType(def.Types, inline.TypeCondition) {
			continue
		}
		variants[inline.TypeCondition] = a.objectFields(variantDef, inline.SelectionSet, registry)
	}

	return variants
}

func (a *TypeAnalyzer) fieldDefinition(def *ast.Definition, field *ast.Field) *ast.FieldDefinition {
	if field.Definition != nil {
		return field.Definition
	}

	return def.Fields.ForName(field.Name)
}

func fieldKey(field *ast.Field) string {
	if field.Alias != "" {
		return field.Alias
	}

	return field.Name
}

func containsType(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}

// scalarTypeString maps a scalar type name onto a TypeScript primitive.
// Custom scalars are classified by a name heuristic, not by schema truth:
// a "date"-ish scalar is almost always serialized as a string, a "json"
// scalar can be anything.
func scalarTypeString(name string) string {
	switch name {
	case "String", "ID":
		return "string"
	case "Int", "Float":
		return "number"
	case "Boolean":
		return "boolean"
	}

	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "date"):
		return "string"
	case strings.Contains(lower, "json"):
		return "any"
	default:
		return "string"
	}
}

var bareIdentifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Render renders the semantic type as TypeScript source text. Object shapes
// render as brace-delimited structural types; field names are quoted when
// they are not valid bare identifiers or when they equal __typename.
func (i *TypeInfo) Render() string {
	base := i.RenderElem()
	if i.IsArray {
		return "Array<" + base + ">"
	}

	return base
}

// RenderElem renders the element type without the Array wrapper.
func (i *TypeInfo) RenderElem() string {
	if i.ObjectFields == nil {
		return i.TypeString
	}

	parts := make([]string, 0, len(i.ObjectFields))
	for _, field := range i.ObjectFields {
		parts = append(parts, QuoteFieldName(field.Name)+": "+field.Type.Render())
	}
	if len(parts) == 0 {
		return "{}"
	}

	return "{ " + strings.Join(parts, ", ") + " }"
}

// QuoteFieldName quotes a field name for a type position when needed.
func QuoteFieldName(name string) string {
	if name == "__typename" || !bareIdentifierPattern.MatchString(name) {
		return `"` + name + `"`
	}

	return name
}
