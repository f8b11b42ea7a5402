package codegen

import (
	"sort"
	"strings"

	"github.com/99designs/gqlgen/codegen/templates"

	"github.com/vektah/gqlparser/v2/ast"
)

// complexFieldThreshold is the selected-field count at which a nested object
// shape earns its own builder even when it appears only once.
const complexFieldThreshold = 3

// NestedTypeInfo identifies a nested object shape that deserves its own
// named builder rather than being inlined at every use site.
type NestedTypeInfo struct {
	TypeName     string // emitted type name: <OperationName><GraphQLTypeName>
	BuilderName  string // emitted builder name: a<TypeName>
	GraphQLType  *ast.Definition
	SelectionSet ast.SelectionSet
	UsageCount   int

	fieldNames []string
}

// MatchesFields reports whether the given sorted field names equal this
// shape's own. Substituting a named builder at a use site is only safe when
// the shapes agree exactly.
func (n *NestedTypeInfo) MatchesFields(names []string) bool {
	if len(names) != len(n.fieldNames) {
		return false
	}
	for i := range names {
		if names[i] != n.fieldNames[i] {
			return false
		}
	}

	return true
}

// NestedTypeCollector scans a selection tree for object shapes that are
// reused or complex enough to deserve a dedicated builder. It is purely
// advisory: collecting nothing just means everything gets inlined.
type NestedTypeCollector struct {
	schema   *ast.Schema
	resolver *Resolver
}

func NewNestedTypeCollector(schema *ast.Schema, resolver *Resolver) *NestedTypeCollector {
	return &NestedTypeCollector{schema: schema, resolver: resolver}
}

// nestedAccumulator carries the usage counts of one collection run. It is
// passed explicitly through the traversal so no state survives between runs.
type nestedAccumulator struct {
	order   []string
	entries map[string]*NestedTypeInfo
}

// Collect walks the selection tree under parentDef and returns the
// builder-worthy nested shapes: used more than once, or carrying at least
// three selected fields. Output is sorted by type name; when two different
// shapes of the same GraphQL type qualify, the more used one wins so emitted
// names stay unique.
func (c *NestedTypeCollector) Collect(parentDef *ast.Definition, selectionSet ast.SelectionSet, operationName string, registry FragmentRegistry) []*NestedTypeInfo {
	acc := &nestedAccumulator{entries: map[string]*NestedTypeInfo{}}
	c.walk(acc, parentDef, selectionSet, registry, map[string]bool{})

	prefix := templates.ToGo(operationName)
	bestByType := map[string]*NestedTypeInfo{}
	for _, key := range acc.order {
		entry := acc.entries[key]
		if entry.UsageCount <= 1 && len(entry.fieldNames) < complexFieldThreshold {
			continue
		}
		current := bestByType[entry.GraphQLType.Name]
		if current == nil || entry.UsageCount > current.UsageCount ||
			(entry.UsageCount == current.UsageCount && len(entry.fieldNames) > len(current.fieldNames)) {
			bestByType[entry.GraphQLType.Name] = entry
		}
	}

	nested := make([]*NestedTypeInfo, 0, len(bestByType))
	for _, entry := range bestByType {
		entry.TypeName = prefix + entry.GraphQLType.Name
		entry.BuilderName = "a" + entry.TypeName
		nested = append(nested, entry)
	}
	sort.Slice(nested, func(i, j int) bool { return nested[i].GraphQLType.Name < nested[j].GraphQLType.Name })

	return nested
}

// walk counts every object/interface-typed field that carries its own
// selection set. The visited set holds the type names on the current path,
// bounding recursion on self-referential schema shapes.
func (c *NestedTypeCollector) walk(acc *nestedAccumulator, def *ast.Definition, selectionSet ast.SelectionSet, registry FragmentRegistry, visited map[string]bool) {
	resolved, err := c.resolver.Resolve(selectionSet, registry)
	if err != nil {
		resolved = selectionSet
	}

	for _, selection := range resolved {
		switch sel := selection.(type) {
		case *ast.Field:
			if len(sel.SelectionSet) == 0 {
				continue
			}
			fieldDef := sel.Definition
			if fieldDef == nil {
				fieldDef = def.Fields.ForName(sel.Name)
			}
			if fieldDef == nil {
				continue
			}
			named := c.schema.Types[fieldDef.Type.Name()]
			if named == nil {
				continue
			}

			switch named.Kind {
			case ast.Object, ast.Interface:
				childResolved, err := c.resolver.Resolve(sel.SelectionSet, registry)
				if err != nil {
					childResolved = sel.SelectionSet
				}
				c.record(acc, named, childResolved)
				if !visited[named.Name] {
					visited[named.Name] = true
					c.walk(acc, named, sel.SelectionSet, registry, visited)
					delete(visited, named.Name)
				}
			case ast.Union:
				for _, inner := range sel.SelectionSet {
					inline, ok := inner.(*ast.InlineFragment)
					if !ok || inline.TypeCondition == "" {
						continue
					}
					variantDef := c.schema.Types[inline.TypeCondition]
					if variantDef == nil || !containsType(named.Types, inline.TypeCondition) {
						continue
					}
					c.walk(acc, variantDef, inline.SelectionSet, registry, visited)
				}
			}
		case *ast.InlineFragment:
			target := def
			if inline := sel; inline.TypeCondition != "" && inline.TypeCondition != def.Name {
				target = c.schema.Types[inline.TypeCondition]
				if target == nil {
					continue
				}
			}
			c.walk(acc, target, sel.SelectionSet, registry, visited)
		}
	}
}

// record bumps the usage counter for the structural key of one nested shape:
// the type name plus the sorted selected field names.
func (c *NestedTypeCollector) record(acc *nestedAccumulator, def *ast.Definition, resolved ast.SelectionSet) {
	names := selectedFieldNames(resolved)
	key := def.Name + "|" + strings.Join(names, ",")

	entry := acc.entries[key]
	if entry == nil {
		entry = &NestedTypeInfo{
			GraphQLType:  def,
			SelectionSet: resolved,
			fieldNames:   names,
		}
		acc.entries[key] = entry
		acc.order = append(acc.order, key)
	}
	entry.UsageCount++
}

// selectedFieldNames returns the sorted field names of a resolved selection,
// excluding __typename.
func selectedFieldNames(selectionSet ast.SelectionSet) []string {
	seen := map[string]bool{}
	var names []string
	for _, selection := range selectionSet {
		field, ok := selection.(*ast.Field)
		if !ok || field.Name == "__typename" || seen[fieldKey(field)] {
			continue
		}
		seen[fieldKey(field)] = true
		names = append(names, fieldKey(field))
	}
	sort.Strings(names)

	return names
}
