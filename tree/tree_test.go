package tree_test

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/patternlint/tree"
)

func parse(t *testing.T, code string) *tree.File {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())
	parsed, err := parser.ParseCtx(context.Background(), nil, []byte(code))
	require.NoError(t, err)
	return tree.NewFile("test.ts", []byte(code), parsed.RootNode())
}

func TestFindByKind_DocumentOrder(t *testing.T) {
	file := parse(t, `a(); b(c()); d();`)
	calls := tree.FindByKind(file.Root(), tree.KindCall)
	var names []string
	for _, call := range calls {
		names = append(names, tree.CalleeName(call))
	}
	assert.EqualValues(t, []string{"a", "b", "c", "d"}, names)
}

func TestFindWhere(t *testing.T) {
	file := parse(t, `function f(x) { return g(x); }
const h = (y) => y + 1;`)
	functions := tree.FindWhere(file.Root(), tree.IsFunction)
	require.Len(t, functions, 2)
	assert.Equal(t, "f", tree.FunctionName(functions[0]))
	assert.Equal(t, "h", tree.FunctionName(functions[1]))
}

func TestLocate(t *testing.T) {
	var testCases = []struct {
		description string
		code        string
		expect      tree.Location
	}{
		{
			description: "first line",
			code:        `foo();`,
			expect:      tree.Location{StartLine: 1, EndLine: 1, StartColumn: 1, EndColumn: 6},
		},
		{
			description: "indented third line",
			code:        "const a = 1;\n\n  foo(a);",
			expect:      tree.Location{StartLine: 3, EndLine: 3, StartColumn: 3, EndColumn: 9},
		},
		{
			description: "multi-line call",
			code:        "foo(\n  1,\n  2\n);",
			expect:      tree.Location{StartLine: 1, EndLine: 4, StartColumn: 1, EndColumn: 2},
		},
		{
			description: "multi-byte characters count as one column",
			code:        "const s = 'żółw'; foo();",
			expect:      tree.Location{StartLine: 1, EndLine: 1, StartColumn: 19, EndColumn: 24},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			file := parse(t, testCase.code)
			calls := tree.FindByKind(file.Root(), tree.KindCall)
			require.NotEmpty(t, calls)
			assert.EqualValues(t, testCase.expect, tree.Locate(calls[0]))
		})
	}
}

func TestSnippet(t *testing.T) {
	file := parse(t, `callSomething('abcdefghij');`)
	call := tree.FindByKind(file.Root(), tree.KindCall)[0]
	assert.Equal(t, `callSomething('abcdefghij')`, tree.Snippet(call, 200))
	assert.Equal(t, `callS...`, tree.Snippet(call, 5))
}

func TestNestingDepth(t *testing.T) {
	file := parse(t, `
function f(items) {
  top();
  if (items) {
    for (const i of items) {
      try {
        deep(i);
      } catch (e) {
        handle(e);
      }
    }
  }
}`)
	depths := map[string]int{}
	for _, call := range tree.FindByKind(file.Root(), tree.KindCall) {
		depths[tree.CalleeName(call)] = tree.NestingDepth(call)
	}
	assert.Equal(t, 0, depths["top"])
	assert.Equal(t, 3, depths["deep"])
	assert.Equal(t, 4, depths["handle"])
}

func TestCalleeChain(t *testing.T) {
	file := parse(t, `await supabase.from('users').select('*').eq('id', id);`)
	calls := tree.FindByKind(file.Root(), tree.KindCall)
	require.Len(t, calls, 3)
	assert.EqualValues(t, []string{"supabase", "from", "select", "eq"}, tree.CalleeChain(calls[0]))
	assert.Equal(t, "eq", tree.CalleeName(calls[0]))
	assert.Equal(t, "from", tree.CalleeName(calls[2]))
	assert.True(t, tree.OutermostChainCall(calls[2]).Same(calls[0]))
	assert.Len(t, tree.ChainCalls(calls[2]), 3)
	assert.True(t, tree.Receiver(calls[0]).Same(calls[1]))
}

func TestFunctionParams(t *testing.T) {
	var testCases = []struct {
		description string
		code        string
		expect      []string
	}{
		{description: "plain", code: `function f(a, b) {}`, expect: []string{"a", "b"}},
		{description: "typed and optional", code: `function f(a: string, b?: number) {}`, expect: []string{"a", "b"}},
		{description: "destructured", code: `function f({ id, name }: Row, ...rest) {}`, expect: []string{"id", "name", "rest"}},
		{description: "default value", code: `function f(limit = 10) {}`, expect: []string{"limit"}},
		{description: "single arrow param", code: `const f = x => g(x);`, expect: []string{"x"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			file := parse(t, testCase.code)
			functions := tree.Functions(file.Root())
			require.NotEmpty(t, functions)
			assert.EqualValues(t, testCase.expect, tree.FunctionParams(functions[0]))
		})
	}
}

func TestStatements(t *testing.T) {
	file := parse(t, `function f() {
  // comment
  a();
  return b();
}
const g = () => h();`)
	functions := tree.Functions(file.Root())
	require.Len(t, functions, 2)
	assert.Len(t, tree.Statements(tree.FunctionBody(functions[0])), 2)
	body := tree.Statements(tree.FunctionBody(functions[1]))
	require.Len(t, body, 1)
	assert.Equal(t, tree.KindCall, body[0].Kind())
}

func TestNextSiblings(t *testing.T) {
	file := parse(t, `function f() { const a = 1; b(); c(); }`)
	declaration := tree.FindByKind(file.Root(), tree.KindLexicalDeclaration)[0]
	siblings := declaration.NextSiblings()
	require.Len(t, siblings, 2)
	assert.Equal(t, "b();", siblings[0].Text())
}

func TestDeclaredType(t *testing.T) {
	file := parse(t, `const a: any = load(); let b = 2;`)
	declarators := tree.FindByKind(file.Root(), tree.KindVariableDeclarator)
	require.Len(t, declarators, 2)
	assert.Equal(t, "any", tree.DeclaredType(declarators[0]))
	assert.Equal(t, "", tree.DeclaredType(declarators[1]))
}

func TestUnwrap(t *testing.T) {
	file := parse(t, `async function f(rows) {
  const a = await (load()!);
  const b = (rows as any);
  const c = rows;
}`)
	declarators := tree.FindByKind(file.Root(), tree.KindVariableDeclarator)
	require.Len(t, declarators, 3)
	var testCases = []struct {
		description  string
		declarator   tree.Node
		expectKind   string
		expectAssert string
	}{
		{description: "await parentheses and non-null", declarator: declarators[0], expectKind: tree.KindCall},
		{description: "as expression kept", declarator: declarators[1], expectKind: tree.KindAs, expectAssert: "any"},
		{description: "identifier", declarator: declarators[2], expectKind: tree.KindIdentifier},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			unwrapped := tree.Unwrap(testCase.declarator.Field("value"))
			assert.Equal(t, testCase.expectKind, unwrapped.Kind())
			assert.Equal(t, testCase.expectAssert, tree.AssertedType(unwrapped))
		})
	}
}

func TestIsAsync(t *testing.T) {
	file := parse(t, `async function f() {}
function g() {}
const h = async () => 1;
class K { async m() {} n() {} }`)
	var actual []bool
	for _, fn := range tree.Functions(file.Root()) {
		actual = append(actual, tree.IsAsync(fn))
	}
	assert.EqualValues(t, []bool{true, false, true, true, false}, actual)
	assert.False(t, tree.IsAsync(file.Root()))
}
