package tsmockgen

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/Yamashou/mockgenc/codegen"
	"github.com/Yamashou/mockgenc/config"
)

// Plugin generates one TypeScript source containing a type declaration and a
// mock builder for every operation and fragment in the loaded documents.
type Plugin struct {
	schema    *ast.Schema
	documents []*ast.QueryDocument
	builder   *codegen.MockBuilder
	analyzer  *codegen.TypeAnalyzer
	collector *codegen.NestedTypeCollector
}

func New(cfg *config.Config) *Plugin {
	resolver := codegen.NewResolver(cfg.LoadedSchema, cfg.StrictFragments)
	scalars := codegen.NewScalarGenerator(cfg.Scalars)

	return &Plugin{
		schema:    cfg.LoadedSchema,
		documents: cfg.Documents,
		builder:   codegen.NewMockBuilder(cfg.LoadedSchema, scalars, resolver),
		analyzer:  codegen.NewTypeAnalyzer(cfg.LoadedSchema, resolver),
		collector: codegen.NewNestedTypeCollector(cfg.LoadedSchema, resolver),
	}
}

func (p *Plugin) Name() string {
	return "tsmockgen"
}

// Generate renders the combined source for all documents: the runtime
// boilerplate once, then one declaration block per operation and fragment in
// document order, separated by blank lines. The fragment registry spans all
// documents, so a fragment defined in one file resolves in every other.
// No definitions means no output at all, not even the boilerplate.
func (p *Plugin) Generate() (string, error) {
	registry := codegen.NewFragmentRegistry(p.documents...)

	var blocks []string
	for _, document := range p.documents {
		if document == nil {
			continue
		}
		for _, operation := range document.Operations {
			block, err := p.operationBlock(operation, registry)
			if err != nil {
				return "", err
			}
			if block != "" {
				blocks = append(blocks, block)
			}
		}
		for _, fragment := range document.Fragments {
			block, err := p.fragmentBlock(fragment, registry)
			if err != nil {
				return "", err
			}
			if block != "" {
				blocks = append(blocks, block)
			}
		}
	}

	if len(blocks) == 0 {
		return "", nil
	}

	var buf strings.Builder
	buf.WriteString(boilerplate)
	for _, block := range blocks {
		buf.WriteString("\n")
		buf.WriteString(block)
	}

	return buf.String(), nil
}

func (p *Plugin) operationBlock(operation *ast.OperationDefinition, registry codegen.FragmentRegistry) (string, error) {
	rootDef := p.rootDefinition(operation.Operation)
	if rootDef == nil {
		// The schema does not define this root operation type.
		return "", nil
	}

	return p.renderBlock(rootDef, operation.SelectionSet, operation.Name, string(operation.Operation), registry)
}

func (p *Plugin) fragmentBlock(fragment *ast.FragmentDefinition, registry codegen.FragmentRegistry) (string, error) {
	rootDef := p.schema.Types[fragment.TypeCondition]
	if rootDef == nil {
		return "", nil
	}

	return p.renderBlock(rootDef, fragment.SelectionSet, fragment.Name, "", registry)
}

// renderBlock builds and renders the declarations of one definition: nested
// builder-worthy shapes first, then the definition's own named mocks.
func (p *Plugin) renderBlock(rootDef *ast.Definition, selectionSet ast.SelectionSet, name, operationType string, registry codegen.FragmentRegistry) (string, error) {
	mocks, err := p.builder.BuildForType(rootDef, selectionSet, name, registry)
	if err != nil {
		return "", fmt.Errorf("%s: %w", describeDefinition(name, operationType), err)
	}
	if len(mocks) == 0 {
		return "", nil
	}

	nested := p.collector.Collect(rootDef, selectionSet, name, registry)
	formatter := NewCodeFormatter(nested)
	rootInfo := p.analyzer.AnalyzeDefinition(rootDef, selectionSet, registry)

	var decls []string
	for _, entry := range nested {
		nestedMocks, err := p.builder.BuildForType(entry.GraphQLType, entry.SelectionSet, name, registry)
		if err != nil {
			return "", fmt.Errorf("%s: nested type %s: %w", describeDefinition(name, operationType), entry.GraphQLType.Name, err)
		}
		if len(nestedMocks) == 0 {
			continue
		}
		value := nestedMocks[0].MockValue
		info := p.analyzer.AnalyzeDefinition(entry.GraphQLType, entry.SelectionSet, registry)
		decls = append(decls,
			formatter.FormatTypeDecl(entry.TypeName, formatter.TypeBody(value, info, entry.GraphQLType.Name))+
				formatter.FormatBuilder(entry.TypeName, formatter.ValueLiteral(value, entry.GraphQLType.Name)))
	}

	for _, mock := range mocks {
		typeName := mockTypeName(mock.Name, name, operationType)
		info := p.mockInfo(rootInfo, mock)
		decls = append(decls,
			formatter.FormatTypeDecl(typeName, formatter.TypeBody(mock.MockValue, info, rootDef.Name))+
				formatter.FormatBuilder(typeName, formatter.ValueLiteral(mock.MockValue, rootDef.Name)))
	}

	return strings.Join(decls, "\n"), nil
}

func (p *Plugin) rootDefinition(operationType ast.Operation) *ast.Definition {
	switch operationType {
	case ast.Query:
		return p.schema.Query
	case ast.Mutation:
		return p.schema.Mutation
	case ast.Subscription:
		return p.schema.Subscription
	default:
		return nil
	}
}

// mockInfo picks the semantic info for one named mock. Variant mocks built
// from a union-typed fragment describe themselves with the variant's own
// field list instead of the union's.
func (p *Plugin) mockInfo(rootInfo *codegen.TypeInfo, mock codegen.NamedMock) *codegen.TypeInfo {
	if rootInfo.UnionVariants == nil {
		return rootInfo
	}
	obj, ok := mock.MockValue.(*codegen.MockObject)
	if !ok {
		return rootInfo
	}
	if fields, ok := rootInfo.UnionVariants[obj.TypeName()]; ok {
		return &codegen.TypeInfo{ObjectFields: fields}
	}

	return rootInfo
}

func describeDefinition(name, operationType string) string {
	kind := operationType
	if kind == "" {
		kind = "fragment"
	}
	if name == "" {
		return kind
	}

	return kind + " " + name
}
