package codegen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/Yamashou/mockgenc/config"
)

func TestScalarGenerator_Generate(t *testing.T) {
	t.Parallel()

	generator := NewScalarGenerator(map[string]*config.ScalarMockConfig{
		"UUID":   {Generator: "uuid"},
		"Date":   {Generator: "date", Arguments: "YYYY"},
		"Broken": {Generator: "nope"},
	})

	type args struct {
		scalarName string
	}

	tests := []struct {
		name    string
		args    args
		wantErr string
		check   func(t *testing.T, got any)
	}{
		{
			name: "IDはUUID形式の文字列を生成する",
			args: args{scalarName: "ID"},
			check: func(t *testing.T, got any) {
				t.Helper()
				s, ok := got.(string)
				if !ok {
					t.Fatalf("want string, got %T", got)
				}
				if _, err := uuid.Parse(s); err != nil {
					t.Errorf("want UUID string, got %q: %v", s, err)
				}
			},
		},
		{
			name: "Stringは空でない文字列を生成する",
			args: args{scalarName: "String"},
			check: func(t *testing.T, got any) {
				t.Helper()
				s, ok := got.(string)
				if !ok {
					t.Fatalf("want string, got %T", got)
				}
				if s == "" {
					t.Error("want non-empty string")
				}
			},
		},
		{
			name: "Intは範囲内の整数を生成する",
			args: args{scalarName: "Int"},
			check: func(t *testing.T, got any) {
				t.Helper()
				n, ok := got.(int)
				if !ok {
					t.Fatalf("want int, got %T", got)
				}
				if n < 0 || n >= 10000 {
					t.Errorf("want 0 <= n < 10000, got %d", n)
				}
			},
		},
		{
			name: "Floatは範囲内の浮動小数点数を生成する",
			args: args{scalarName: "Float"},
			check: func(t *testing.T, got any) {
				t.Helper()
				f, ok := got.(float64)
				if !ok {
					t.Fatalf("want float64, got %T", got)
				}
				if f < 0 || f >= 100 {
					t.Errorf("want 0 <= f < 100, got %f", f)
				}
			},
		},
		{
			name: "Booleanは真偽値を生成する",
			args: args{scalarName: "Boolean"},
			check: func(t *testing.T, got any) {
				t.Helper()
				if _, ok := got.(bool); !ok {
					t.Fatalf("want bool, got %T", got)
				}
			},
		},
		{
			name: "設定されたカスタムスカラーはジェネレーターを使う",
			args: args{scalarName: "UUID"},
			check: func(t *testing.T, got any) {
				t.Helper()
				s, ok := got.(string)
				if !ok {
					t.Fatalf("want string, got %T", got)
				}
				if _, err := uuid.Parse(s); err != nil {
					t.Errorf("want UUID string, got %q: %v", s, err)
				}
			},
		},
		{
			name: "引数付きジェネレーターは引数を渡して呼ばれる",
			args: args{scalarName: "Date"},
			check: func(t *testing.T, got any) {
				t.Helper()
				s, ok := got.(string)
				if !ok {
					t.Fatalf("want string, got %T", got)
				}
				if len(s) != 4 {
					t.Errorf("want 4-digit year for format YYYY, got %q", s)
				}
			},
		},
		{
			name: "未設定のカスタムスカラーはプレースホルダーを返す",
			args: args{scalarName: "Money"},
			check: func(t *testing.T, got any) {
				t.Helper()
				if got != "money-mock" {
					t.Errorf("want money-mock, got %v", got)
				}
			},
		},
		{
			name:    "未知のジェネレーター名はエラー",
			args:    args{scalarName: "Broken"},
			wantErr: `scalar Broken: unknown generator "nope"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := generator.Generate(tt.args.scalarName)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("want error %q, got %v", tt.wantErr, err)
				}

				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestValidateScalars(t *testing.T) {
	t.Parallel()

	schema := gqlparser.MustLoadSchema(&ast.Source{Input: `
		scalar Date
		scalar JSON

		type Query {
			id: ID!
		}
	`})

	type args struct {
		scalars map[string]*config.ScalarMockConfig
	}

	tests := []struct {
		name    string
		args    args
		wantErr string
	}{
		{
			name: "未設定のカスタムスカラーをまとめてエラーにする",
			args: args{scalars: nil},
			wantErr: "missing mock generator configuration for scalars: Date, JSON" +
				" (add entries under 'scalars' in your config)",
		},
		{
			name: "一部だけ設定されている場合は残りを報告する",
			args: args{scalars: map[string]*config.ScalarMockConfig{
				"Date": {Generator: "date"},
			}},
			wantErr: "missing mock generator configuration for scalars: JSON" +
				" (add entries under 'scalars' in your config)",
		},
		{
			name: "設定済みでもジェネレーターが未知ならエラー",
			args: args{scalars: map[string]*config.ScalarMockConfig{
				"Date": {Generator: "nope"},
				"JSON": {Generator: "uuid"},
			}},
			wantErr: `scalar Date: unknown generator "nope"`,
		},
		{
			name: "全て設定済みならエラーなし",
			args: args{scalars: map[string]*config.ScalarMockConfig{
				"Date": {Generator: "date"},
				"JSON": {Generator: "uuid"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateScalars(schema, tt.args.scalars)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("want error %q, got %v", tt.wantErr, err)
			}
		})
	}
}
