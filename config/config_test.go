package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	type args struct {
		file string
	}

	type want struct {
		config  *Config
		errPart string
	}

	tests := []struct {
		name string
		args args
		want want
	}{
		{
			name: "設定ファイルが存在しない場合はエラー",
			args: args{file: "testdata/cfg/doesnotexist.yml"},
			want: want{errPart: "unable to read config"},
		},
		{
			name: "不正な形式の設定ファイルはエラー",
			args: args{file: "testdata/cfg/malformed.yml"},
			want: want{errPart: "unable to parse config"},
		},
		{
			name: "schemaが未指定の場合はエラー",
			args: args{file: "testdata/cfg/missing_schema.yml"},
			want: want{errPart: "'schema' must specify at least one SDL file or glob"},
		},
		{
			name: "queryが未指定の場合はエラー",
			args: args{file: "testdata/cfg/missing_query.yml"},
			want: want{errPart: "'query' must specify at least one document file or glob"},
		},
		{
			name: "出力ファイル名が.tsでない場合はエラー",
			args: args{file: "testdata/cfg/bad_filename.yml"},
			want: want{errPart: "mockgen: filename should be a .ts file, got generated/mocks.go"},
		},
		{
			name: "出力ファイル名が未指定の場合はエラー",
			args: args{file: "testdata/cfg/no_filename.yml"},
			want: want{errPart: "mockgen: filename must be specified"},
		},
		{
			name: "nullのスカラー設定はエラー",
			args: args{file: "testdata/cfg/null_scalar.yml"},
			want: want{errPart: "scalars: scalar Date: config must not be null"},
		},
		{
			name: "スカラー設定の未知のキーはエラー",
			args: args{file: "testdata/cfg/bad_scalar_key.yml"},
			want: want{errPart: `scalar Date: unknown field "extra"`},
		},
		{
			name: "正しい設定は全フィールドを読み込める",
			args: args{file: "testdata/cfg/good.yml"},
			want: want{
				config: &Config{
					Schema:  []string{"testdata/schema/*.graphql"},
					Query:   []string{"testdata/queries/*.graphql"},
					MockGen: MockGenConfig{Filename: "generated/mocks.ts"},
					Scalars: map[string]*ScalarMockConfig{
						"Date": {Generator: "date", Arguments: "YYYY-MM-DD"},
						"UUID": {Generator: "uuid"},
					},
					StrictFragments: true,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadConfig(tt.args.file)
			if tt.want.errPart != "" {
				if err == nil || !strings.Contains(err.Error(), tt.want.errPart) {
					t.Fatalf("want error containing %q, got %v", tt.want.errPart, err)
				}

				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.want.config, got, cmpopts.IgnoreUnexported(ScalarMockConfig{})); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("MOCKGENC_TEST_OUT", "generated")

	got, err := LoadConfig("testdata/cfg/env.yml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MockGen.Filename != "generated/mocks.ts" {
		t.Errorf("want env-expanded filename, got %q", got.MockGen.Filename)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	child := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(root, ".mockgenc.yml")
	if err := os.WriteFile(configPath, []byte("schema: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindConfigFile(child, []string{".mockgenc.yml", "mockgenc.yml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != configPath {
		t.Errorf("want %s, got %s", configPath, got)
	}

	if _, err := FindConfigFile(t.TempDir(), []string{".mockgenc.yml"}); err == nil {
		t.Error("want error when no config file exists in any parent")
	}
}

func TestConfig_LoadSchema(t *testing.T) {
	t.Parallel()

	t.Run("globにマッチしたSDLを1つのスキーマに読み込む", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Schema: []string{"testdata/schema/*.graphql"}}
		if err := cfg.LoadSchema(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.LoadedSchema == nil || cfg.LoadedSchema.Query == nil {
			t.Fatal("schema with Query type should be loaded")
		}
		if cfg.LoadedSchema.Types["Todo"] == nil {
			t.Error("Todo type should be loaded")
		}
	})

	t.Run("globが何にもマッチしなければエラー", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Schema: []string{"testdata/schema/*.sdl"}}
		if err := cfg.LoadSchema(); err == nil || !strings.Contains(err.Error(), "no files matched") {
			t.Fatalf("want no files matched error, got %v", err)
		}
	})
}

func TestConfig_LoadQuery(t *testing.T) {
	t.Parallel()

	t.Run("ドキュメントはファイルごとに個別にパースされる", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Query: []string{"testdata/queries/*.graphql"}}
		if err := cfg.LoadQuery(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Documents) != 2 {
			t.Fatalf("want 2 documents, got %d", len(cfg.Documents))
		}
		// Files load in sorted order: fragments.graphql before todos.graphql.
		if len(cfg.Documents[0].Fragments) != 1 || cfg.Documents[0].Fragments[0].Name != "TodoParts" {
			t.Error("first document should hold the TodoParts fragment")
		}
		if len(cfg.Documents[1].Operations) != 1 || cfg.Documents[1].Operations[0].Name != "GetTodos" {
			t.Error("second document should hold the GetTodos operation")
		}
	})

	t.Run("パースできないドキュメントはエラー", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Query: []string{"testdata/broken/*.graphql"}}
		err := cfg.LoadQuery()
		if err == nil || !strings.Contains(err.Error(), "parse query file") {
			t.Fatalf("want parse error, got %v", err)
		}
	})
}
