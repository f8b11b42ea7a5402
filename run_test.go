package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const integrationSchema = `type Query {
  todos: [Todo!]!
}

type Todo {
  id: ID!
  text: String!
  done: Boolean!
  due: Date
}

scalar Date
`

const integrationQuery = `query GetTodos {
  todos {
    ...TodoParts
    done
  }
}
`

const integrationFragment = `fragment TodoParts on Todo {
  id
  text
  due
}
`

const integrationConfig = `schema:
  - schema.graphql
query:
  - queries/*.graphql
mockgen:
  filename: generated/mocks.ts
scalars:
  Date:
    generator: date
    arguments: YYYY-MM-DD
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ".mockgenc.yml"), integrationConfig)
	writeTestFile(t, filepath.Join(dir, "schema.graphql"), integrationSchema)
	writeTestFile(t, filepath.Join(dir, "queries", "todos.graphql"), integrationQuery)
	writeTestFile(t, filepath.Join(dir, "queries", "fragments.graphql"), integrationFragment)
	t.Chdir(dir)

	if err := run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	generated, err := os.ReadFile(filepath.Join(dir, "generated", "mocks.ts"))
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	source := string(generated)

	// The Todo selection carries four fields, so it is extracted into its own
	// nested type and builder referenced from the operation mock.
	for _, want := range []string{
		"export const createBuilder",
		`export type GetTodosTodo = { "__typename": string, id: string, text: string, due: string, done: boolean };`,
		`export type GetTodosQuery = { "__typename": string, todos: Array<GetTodosTodo> };`,
		"export const aGetTodosQuery = createBuilder<GetTodosQuery>(",
		"todos: [aGetTodosTodo()]",
		`export type TodoParts = { "__typename": string, id: string, text: string, due: string };`,
		"export const aTodoParts = createBuilder<TodoParts>(",
	} {
		if !strings.Contains(source, want) {
			t.Errorf("generated source should contain %q\ngot:\n%s", want, source)
		}
	}
}

func TestRun_MissingConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	err := run()
	if err == nil || !strings.Contains(err.Error(), "failed to find config file") {
		t.Fatalf("want missing config error, got %v", err)
	}
}

func TestRun_UnconfiguredScalar(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, ".mockgenc.yml"), `schema:
  - schema.graphql
query:
  - queries/*.graphql
mockgen:
  filename: generated/mocks.ts
`)
	writeTestFile(t, filepath.Join(dir, "schema.graphql"), integrationSchema)
	writeTestFile(t, filepath.Join(dir, "queries", "todos.graphql"), integrationQuery)
	t.Chdir(dir)

	err := run()
	if err == nil || !strings.Contains(err.Error(), "missing mock generator configuration for scalars: Date") {
		t.Fatalf("want scalar validation error, got %v", err)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
