package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/detector"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
	"github.com/viant/patternlint/variant"
)

func handlerIssues(t *testing.T, ctx *detector.Context) []issue.Issue {
	t.Helper()
	var result []issue.Issue
	for _, handler := range detector.Handlers(ctx.Root()) {
		for _, detect := range []func(*detector.Context, detector.Handler) (*issue.Issue, error){detector.EmptyHandler, detector.RethrowWithoutContext} {
			created, err := detect(ctx, handler)
			require.NoError(t, err)
			if created != nil {
				result = append(result, *created)
			}
		}
	}
	tries, err := detector.Each(ctx, tree.FindByKind(ctx.Root(), tree.KindTry), detector.TryWithoutCatch)
	require.NoError(t, err)
	result = append(result, tries...)
	bindings, err := detector.Each(ctx, tree.FindByKind(ctx.Root(), tree.KindVariableDeclarator), detector.UncheckedErrorBinding)
	require.NoError(t, err)
	result = append(result, bindings...)
	callbacks, err := detector.Each(ctx, tree.Functions(ctx.Root()), detector.UncheckedErrorCallback)
	require.NoError(t, err)
	return append(result, callbacks...)
}

func TestErrorHandlers(t *testing.T) {
	var testCases = []struct {
		description string
		code        string
		expect      []issue.Type
	}{
		{
			description: "empty catch",
			code:        "async function f() { try { await run(); } catch (e) {} }",
			expect:      []issue.Type{issue.MissingErrorHandling},
		},
		{
			description: "catch with comment only",
			code:        "async function f() { try { await run(); } catch (e) { /* ignore */ } }",
			expect:      []issue.Type{issue.MissingErrorHandling},
		},
		{
			description: "empty promise catch",
			code:        "run().catch(() => {});",
			expect:      []issue.Type{issue.MissingErrorHandling},
		},
		{
			description: "empty rejection handler",
			code:        "run().then((v) => use(v), () => {});",
			expect:      []issue.Type{issue.MissingErrorHandling},
		},
		{
			description: "logged catch",
			code:        "async function f() { try { await run(); } catch (e) { console.error(e); } }",
		},
		{
			description: "rethrow only",
			code:        "async function f() { try { await run(); } catch (e) { throw e; } }",
			expect:      []issue.Type{issue.ConfusingLogic},
		},
		{
			description: "rethrow with context",
			code:        "async function f() { try { await run(); } catch (e) { throw new Error('run failed: ' + e); } }",
		},
		{
			description: "try without catch",
			code:        "async function f() { try { await run(); } finally { done(); } }",
			expect:      []issue.Type{issue.MissingErrorHandling},
		},
		{
			description: "unchecked error binding",
			code:        "async function f() { const { data, error } = await load(); use(data); }",
			expect:      []issue.Type{issue.MissingErrorHandling},
		},
		{
			description: "returned error binding",
			code:        "async function f() { const { data, error } = await load(); return { data, error }; }",
		},
		{
			description: "unchecked callback error",
			code:        "fs.readFile(name, (err, data) => { use(data); });",
			expect:      []issue.Type{issue.MissingErrorHandling},
		},
		{
			description: "checked callback error",
			code:        "fs.readFile(name, (err, data) => { if (err) return; use(data); });",
		},
		{
			description: "ignored callback error",
			code:        "fs.readFile(name, (_err, data) => { use(data); });",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := newContext(t, "lib/utils/io.ts", testCase.code, detector.NewErrorHandlingDomain())
			issues := handlerIssues(t, ctx)
			assert.EqualValues(t, testCase.expect, types(issues))
			for _, item := range issues {
				assert.Equal(t, issue.ErrorHandling, item.Category)
				assert.GreaterOrEqual(t, len(item.Recommendation), issue.MinRecommendationLength)
			}
		})
	}
}

func TestHandler_IsTyped(t *testing.T) {
	var testCases = []struct {
		description string
		code        string
		expect      bool
	}{
		{description: "untyped", code: "try { run(); } catch (e) { log(e); }"},
		{description: "unknown", code: "try { run(); } catch (e: unknown) { log(e); }"},
		{description: "instanceof", code: "try { run(); } catch (e) { if (e instanceof ApiError) { log(e); } }", expect: true},
		{description: "other instanceof", code: "try { run(); } catch (e) { if (x instanceof ApiError) { log(e); } }"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := newContext(t, "lib/utils/io.ts", testCase.code, nil)
			handlers := detector.Handlers(ctx.Root())
			require.Len(t, handlers, 1)
			assert.Equal(t, testCase.expect, handlers[0].IsTyped())
			assert.Equal(t, "e", handlers[0].Param)
		})
	}
}

func TestTypedErrorAdoption(t *testing.T) {
	trend := variant.NewTrend("typed-errors")
	files := []struct {
		location string
		code     string
		expect   bool
	}{
		{location: "lib/utils/a.ts", code: "try { run(); } catch (e) { if (e instanceof ApiError) { retry(); } }"},
		{location: "lib/utils/b.ts", code: "try { run(); } catch (e) { log(e); }\ntry { run(); } catch (err) { log(err); }", expect: true},
		{location: "lib/utils/c.ts", code: "try { run(); } catch (e) { if (e instanceof DbError) { retry(); } }\ntry { run(); } catch (e) { log(e); }"},
	}
	for _, file := range files {
		ctx := newContext(t, file.location, file.code, detector.NewErrorHandlingDomain())
		created, err := detector.TypedErrorAdoption(ctx, trend, detector.Handlers(ctx.Root()))
		require.NoError(t, err)
		if !file.expect {
			assert.Nil(t, created, file.location)
			continue
		}
		require.NotNil(t, created, file.location)
		assert.Equal(t, issue.TypeSafety, created.Type)
		assert.Equal(t, issue.Low, created.Severity)
		assert.Equal(t, 1, created.Location.StartLine)
		assert.Contains(t, created.Description, "ApiError")
	}
	positive, total := trend.Counts()
	assert.Equal(t, 2, positive)
	assert.Equal(t, 5, total)
}

func TestLoggingAdoption(t *testing.T) {
	trend := variant.NewTrend("error-logging")
	ctx := newContext(t, "lib/utils/a.ts", "try { run(); } catch (e) { console.error(e); }\nrun().catch((e) => logger.error(e));", detector.NewErrorHandlingDomain())
	created, err := detector.LoggingAdoption(ctx, trend, detector.Handlers(ctx.Root()))
	require.NoError(t, err)
	assert.Nil(t, created)

	ctx = newContext(t, "lib/utils/b.ts", "try { run(); } catch (e) { retry(); }", detector.NewErrorHandlingDomain())
	created, err = detector.LoggingAdoption(ctx, trend, detector.Handlers(ctx.Root()))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Contains(t, created.Description, "67%")
}

func TestErrorResponseShape(t *testing.T) {
	var testCases = []struct {
		description string
		code        string
		expectLabel string
		expectOk    bool
	}{
		{
			description: "json error body",
			code:        "function GET() { return NextResponse.json({ error: 'Not found' }, { status: 404 }); }",
			expectLabel: `{ error: "..." }`,
			expectOk:    true,
		},
		{
			description: "status chain",
			code:        "function handler(req, res) { return res.status(500).json({ message: `failed ${id}`, code: 7 }); }",
			expectLabel: `{ message: "...", code: N }`,
			expectOk:    true,
		},
		{
			description: "response constructor",
			code:        "function GET() { return new Response(JSON.stringify({ errors: list }), { status: 400 }); }",
			expectLabel: "{ errors: list }",
			expectOk:    true,
		},
		{
			description: "success response",
			code:        "function GET() { return NextResponse.json({ data: rows }); }",
		},
		{
			description: "plain return",
			code:        "function GET() { return { error: 'x' }; }",
		},
	}
	classify := detector.ErrorResponseShape()
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := newContext(t, "app/api/items/route.ts", testCase.code, nil)
			returns := tree.FindByKind(ctx.Root(), tree.KindReturn)
			require.Len(t, returns, 1)
			label, ok := classify(returns[0])
			assert.Equal(t, testCase.expectOk, ok)
			assert.Equal(t, testCase.expectLabel, label)
		})
	}
}

func TestRecord(t *testing.T) {
	vocabulary := config.DefaultVocabulary()
	accumulator := variant.New("auth-client", variant.KeywordClassifier(variant.NameStyles(vocabulary.AuthClients...)))
	divergence := &detector.Divergence{
		Concern:        "auth client instantiation pattern",
		Variants:       "patterns",
		Severity:       issue.Medium,
		Effort:         issue.EffortMedium,
		Recommendation: "Standardize auth client creation to use a single pattern across the codebase.",
		Tags:           []string{"client-instantiation"},
	}
	files := []struct {
		location string
		code     string
		expect   string
	}{
		{location: "lib/services/a.ts", code: "const a = createClient(url, key);"},
		{location: "lib/services/b.ts", code: "const b = getAuthClient();", expect: "Found 2 different patterns: createClient, getAuthClient"},
		{location: "lib/services/c.ts", code: "const c = initAuth();"},
	}
	for _, file := range files {
		ctx := newContext(t, file.location, file.code, detector.NewAuthDomain(&vocabulary))
		var messages []string
		for _, call := range tree.FindByKind(ctx.Root(), tree.KindCall) {
			created, err := detector.Record(ctx, accumulator, divergence, call)
			require.NoError(t, err)
			if created != nil {
				messages = append(messages, created.Description)
				assert.EqualValues(t, []string{"auth", "inconsistency", "client-instantiation"}, created.Tags)
			}
		}
		if file.expect == "" {
			assert.Empty(t, messages, file.location)
			continue
		}
		require.Len(t, messages, 1, file.location)
		assert.Contains(t, messages[0], file.expect)
	}
}

func TestRedundantMiddleware(t *testing.T) {
	code := `export async function requireUser(req) {
  const user = await auth.getUser(req);
  return user;
}

export async function requireAdmin(req) {
  return checkRole(req, 'admin');
}

export function log(req) {
  console.log(req.url);
}`
	vocabulary := config.DefaultVocabulary()
	var testCases = []struct {
		description string
		location    string
		expect      int
	}{
		{description: "middleware file", location: "middleware.ts", expect: 2},
		{description: "utility file", location: "lib/utils/guards.ts"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := newContext(t, testCase.location, code, detector.NewAuthDomain(&vocabulary))
			issues, err := detector.RedundantMiddleware(ctx, vocabulary.AuthMiddlewareKeywords)
			require.NoError(t, err)
			require.Len(t, issues, testCase.expect)
			for _, item := range issues {
				assert.Equal(t, issue.CodeDuplication, item.Type)
				assert.Contains(t, item.Description, "Found 2 auth middleware functions")
			}
		})
	}
}

func TestClientImportSprawl(t *testing.T) {
	vocabulary := config.DefaultVocabulary()
	var testCases = []struct {
		description string
		code        string
		expect      bool
	}{
		{
			description: "single client",
			code:        "import { createServerClient } from '@supabase/ssr';",
		},
		{
			description: "many clients",
			code:        "import { createServerClient, createBrowserClient } from '@supabase/ssr';\nimport { getDB } from './db';\nimport { format } from 'date-fns';",
			expect:      true,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := newContext(t, "lib/utils/db.ts", testCase.code, detector.NewPersistenceDomain(&vocabulary))
			created, err := detector.ClientImportSprawl(ctx, vocabulary.DatabaseClients)
			require.NoError(t, err)
			if !testCase.expect {
				assert.Nil(t, created)
				return
			}
			require.NotNil(t, created)
			assert.Contains(t, created.Description, "createServerClient, createBrowserClient, getDB")
			assert.Equal(t, 1, created.Location.StartLine)
		})
	}
}

func TestHandler_Recovers(t *testing.T) {
	var testCases = []struct {
		description string
		code        string
		expect      bool
	}{
		{description: "return", code: "try { run(); } catch (e) { return null; }", expect: true},
		{description: "rethrow", code: "try { run(); } catch (e) { throw new ApiError(e); }", expect: true},
		{description: "fallback call", code: "try { run(); } catch (e) { useFallback(); }", expect: true},
		{description: "concise rejection handler", code: "run().catch(() => defaults);", expect: true},
		{description: "logging only", code: "try { run(); } catch (e) { console.error(e); }"},
		{description: "empty", code: "try { run(); } catch (e) {}"},
	}
	keywords := config.DefaultVocabulary().RecoveryKeywords
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := newContext(t, "lib/utils/io.ts", testCase.code, nil)
			handlers := detector.Handlers(ctx.Root())
			require.Len(t, handlers, 1)
			assert.Equal(t, testCase.expect, handlers[0].Recovers(keywords))
		})
	}
}

func TestRecoveryAdoption(t *testing.T) {
	trend := variant.NewTrend("error-recovery")
	keywords := config.DefaultVocabulary().RecoveryKeywords
	files := []struct {
		location string
		code     string
		expect   bool
	}{
		{
			location: "lib/utils/a.ts",
			code:     "try { a(); } catch (e) { return 1; }\ntry { b(); } catch (e) { return 2; }\ntry { c(); } catch (e) { retry(); }\ntry { d(); } catch (e) { throw e; }",
		},
		{
			location: "lib/utils/b.ts",
			code:     "try { a(); } catch (e) { log(e); }\ntry { b(); } catch (e) { log(e); }\ntry { c(); } catch (e) { log(e); }",
			expect:   true,
		},
		{
			location: "lib/utils/c.ts",
			code:     "try { a(); } catch (e) { log(e); }\ntry { b(); } catch (e) { log(e); }",
		},
	}
	for _, file := range files {
		ctx := newContext(t, file.location, file.code, detector.NewErrorHandlingDomain())
		created, err := detector.RecoveryAdoption(ctx, trend, detector.Handlers(ctx.Root()), keywords)
		require.NoError(t, err)
		if !file.expect {
			assert.Nil(t, created, file.location)
			continue
		}
		require.NotNil(t, created, file.location)
		assert.Equal(t, issue.MissingErrorHandling, created.Type)
		assert.Equal(t, issue.Medium, created.Severity)
		assert.Equal(t, 1, created.Location.StartLine)
		assert.Contains(t, created.Description, "3 error handlers without recovery")
		assert.Contains(t, created.Description, "57%")
		assert.True(t, created.HasTag("recovery"))
	}
	positive, total := trend.Counts()
	assert.Equal(t, 4, positive)
	assert.Equal(t, 9, total)
}

func TestUnhandledAsync(t *testing.T) {
	var testCases = []struct {
		description string
		code        string
		expectName  string
	}{
		{description: "fetch", code: "async function load(id) { const res = await fetch(url + id); return res.json(); }", expectName: "load"},
		{description: "anonymous", code: "export default async () => { await fs.promises.readFile(path); };", expectName: "anonymous"},
		{description: "try", code: "async function load() { try { return await fetch(url); } catch (e) { return null; } }"},
		{description: "chained catch", code: "async function load() { return fetch(url).catch(() => null); }"},
		{description: "error return", code: "async function load() { const { data, error } = await supabase.from('t').select(); return { data, error }; }"},
		{description: "not async", code: "function load() { return fetch(url); }"},
		{description: "safe", code: "async function load() { return compute(); }"},
	}
	risky := detector.NewMatcher(config.DefaultVocabulary().RiskyCalls...)
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := newContext(t, "lib/services/io.ts", testCase.code, detector.NewErrorHandlingDomain())
			functions := tree.Functions(ctx.Root())
			require.NotEmpty(t, functions)
			created, err := detector.UnhandledAsync(ctx, risky, functions[0])
			require.NoError(t, err)
			if testCase.expectName == "" {
				assert.Nil(t, created)
				return
			}
			require.NotNil(t, created)
			assert.Equal(t, issue.MissingErrorHandling, created.Type)
			assert.Equal(t, issue.Medium, created.Severity)
			assert.Contains(t, created.Description, "'"+testCase.expectName+"'")
			assert.True(t, created.HasTag("async"))
		})
	}
}
