package tsmockgen

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/99designs/gqlgen/codegen/templates"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/Yamashou/mockgenc/codegen"
)

// CodeFormatter renders mock values and their semantic type descriptions as
// TypeScript source. It holds the nested shapes collected for the current
// definition so matching object values can be replaced by builder calls.
type CodeFormatter struct {
	nested map[string]*codegen.NestedTypeInfo
}

func NewCodeFormatter(nested []*codegen.NestedTypeInfo) *CodeFormatter {
	byType := make(map[string]*codegen.NestedTypeInfo, len(nested))
	for _, entry := range nested {
		byType[entry.GraphQLType.Name] = entry
	}

	return &CodeFormatter{nested: byType}
}

// FormatTypeDecl renders one exported type alias on a single line.
func (f *CodeFormatter) FormatTypeDecl(name, body string) string {
	return fmt.Sprintf("export type %s = %s;\n", name, body)
}

// FormatBuilder renders the builder const for a type. The builder name is
// always the type name prefixed with "a".
func (f *CodeFormatter) FormatBuilder(typeName, literal string) string {
	return fmt.Sprintf("export const a%s = createBuilder<%s>(%s);\n", typeName, typeName, literal)
}

// TypeBody renders the TypeScript type of a mock value. The value drives the
// structure; info refines primitive positions with schema knowledge (custom
// scalar mappings, union variant shapes). selfType is the GraphQL type whose
// own declaration is being rendered, so it never collapses into itself.
func (f *CodeFormatter) TypeBody(value any, info *codegen.TypeInfo, selfType string) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return scalarType(info, "string")
	case bool:
		return scalarType(info, "boolean")
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return scalarType(info, "number")
	case []any:
		if len(v) == 0 {
			return "Array<any>"
		}

		return "Array<" + f.TypeBody(v[0], elemInfo(info), selfType) + ">"
	case *codegen.MockObject:
		if nested := f.nestedFor(v, selfType); nested != nil {
			return nested.TypeName
		}

		parts := make([]string, 0, v.Len())
		for _, field := range v.Fields() {
			if field.Key == "__typename" {
				parts = append(parts, `"__typename": string`)

				continue
			}
			fieldType := f.TypeBody(field.Value, f.fieldInfo(info, field.Key, field.Value), selfType)
			parts = append(parts, codegen.QuoteFieldName(field.Key)+": "+fieldType)
		}
		if len(parts) == 0 {
			return "{}"
		}

		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return "any"
	}
}

// ValueLiteral renders a mock value as a TypeScript expression. Object values
// whose shape matches a collected nested type become a call to that type's
// builder instead of an inline literal.
func (f *CodeFormatter) ValueLiteral(value any, selfType string) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quoteString(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, elem := range v {
			parts = append(parts, f.ValueLiteral(elem, selfType))
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case *codegen.MockObject:
		if nested := f.nestedFor(v, selfType); nested != nil {
			return nested.BuilderName + "()"
		}

		parts := make([]string, 0, v.Len())
		for _, field := range v.Fields() {
			parts = append(parts, literalKey(field.Key)+": "+f.ValueLiteral(field.Value, selfType))
		}
		if len(parts) == 0 {
			return "{}"
		}

		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// nestedFor returns the collected nested shape a mock object should be
// replaced with, or nil when it must be emitted inline.
func (f *CodeFormatter) nestedFor(obj *codegen.MockObject, selfType string) *codegen.NestedTypeInfo {
	typeName := obj.TypeName()
	if typeName == "" || typeName == selfType {
		return nil
	}
	nested := f.nested[typeName]
	if nested == nil || !nested.MatchesFields(objectFieldNames(obj)) {
		return nil
	}

	return nested
}

// fieldInfo resolves the semantic info for one object field. A union-typed
// field holding a forked variant value narrows to that variant's field list.
func (f *CodeFormatter) fieldInfo(info *codegen.TypeInfo, key string, value any) *codegen.TypeInfo {
	if info == nil {
		return nil
	}
	fieldType := info.FieldType(key)
	if fieldType == nil || fieldType.UnionVariants == nil {
		return fieldType
	}
	obj := mockObjectOf(value)
	if obj == nil {
		return fieldType
	}
	if fields, ok := fieldType.UnionVariants[obj.TypeName()]; ok {
		return &codegen.TypeInfo{
			ObjectFields: fields,
			IsArray:      fieldType.IsArray,
			IsNullable:   fieldType.IsNullable,
		}
	}

	return fieldType
}

// mockTypeName derives the exported type name for one named mock. The base is
// the capitalized definition name plus the operation-kind suffix (none for
// fragments). A variant name carrying the "<name>As<Type>" convention keeps
// its As segment spliced after the suffix; any other name already extending
// the base is kept as-is.
func mockTypeName(mockName, definitionName, operationType string) string {
	expected := ""
	if definitionName != "" {
		expected = templates.ToGo(definitionName)
	}
	if operationType != "" {
		expected += templates.ToGo(operationType)
	}

	if definitionName != "" {
		if rest, ok := strings.CutPrefix(mockName, definitionName+"As"); ok {
			return expected + "As" + rest
		}
	}
	if mockName != "" {
		name := templates.ToGo(mockName)
		if strings.HasPrefix(name, expected) {
			return name
		}
	}

	return expected
}

func scalarType(info *codegen.TypeInfo, fallback string) string {
	if info != nil && info.ObjectFields == nil && info.UnionVariants == nil && info.TypeString != "" {
		return info.TypeString
	}

	return fallback
}

// elemInfo strips the array wrapper so element positions see element info.
func elemInfo(info *codegen.TypeInfo) *codegen.TypeInfo {
	if info == nil || !info.IsArray {
		return info
	}
	inner := *info
	inner.IsArray = false

	return &inner
}

func mockObjectOf(value any) *codegen.MockObject {
	switch v := value.(type) {
	case *codegen.MockObject:
		return v
	case []any:
		if len(v) > 0 {
			return mockObjectOf(v[0])
		}
	}

	return nil
}

func objectFieldNames(obj *codegen.MockObject) []string {
	names := make([]string, 0, obj.Len())
	for _, field := range obj.Fields() {
		if field.Key == "__typename" {
			continue
		}
		names = append(names, field.Key)
	}
	sort.Strings(names)

	return names
}

var bareKeyPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// literalKey renders an object key for a value position. Unlike type
// positions, __typename stays bare here.
func literalKey(name string) string {
	if bareKeyPattern.MatchString(name) {
		return name
	}

	return quoteString(name)
}

// quoteString renders a TypeScript string literal with JSON escaping.
func quoteString(s string) string {
	quoted, err := jsontext.AppendQuote([]byte(nil), s)
	if err != nil {
		return strconv.Quote(s)
	}

	return string(quoted)
}
