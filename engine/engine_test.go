package engine_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/patternlint/analyzer"
	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/engine"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/source"
)

func fixedClock() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		location := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	return root
}

func withTag(issues []issue.Issue, tag string) []issue.Issue {
	var result []issue.Issue
	for _, item := range issues {
		if item.HasTag(tag) {
			result = append(result, item)
		}
	}
	return result
}

// faulty fails on selected files
type faulty struct{}

func (f *faulty) Name() string { return "faulty" }

func (f *faulty) Categories() []source.Category { return []source.Category{source.Service} }

func (f *faulty) Analyze(file *source.File) ([]issue.Issue, error) {
	switch filepath.Base(file.Path()) {
	case "boom.ts":
		panic("boom")
	case "fail.ts":
		return nil, errors.New("failed")
	}
	return nil, nil
}

func TestEngine_RunDir(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"package.json":                  `{"name": "shop"}`,
		"lib/services/a.ts":             "export const client = createClient(url, key);",
		"lib/services/b.ts":             "export const client = getAuthClient();",
		"lib/services/c.ts":             "export const client = initAuth();",
		"node_modules/auth/index.js":    "module.exports = initClient();",
		"lib/services/types/index.d.ts": "export type A = string;",
	})
	var results []*engine.Result
	for _, jobs := range []int{1, 4} {
		result, err := engine.New(engine.WithJobs(jobs), engine.WithClock(fixedClock)).RunDir(context.Background(), root)
		require.NoError(t, err)
		results = append(results, result)
	}
	result := results[0]
	assert.Equal(t, 3, result.Files)
	assert.Equal(t, 3, result.Analyzed)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Faults)
	clients := withTag(result.Issues, "client-instantiation")
	require.Len(t, clients, 1)
	assert.Equal(t, "lib/services/b.ts", clients[0].File)
	assert.Equal(t, analyzer.AuthName, clients[0].DetectedBy)
	assert.Equal(t, results[0].Issues, results[1].Issues)
	require.NotNil(t, result.Project)
	assert.Equal(t, "shop", result.Project.Name)
}

func TestEngine_Analyze_PartialConfig(t *testing.T) {
	code := "export async function currentSession(auth) {\n  return auth.getSession();\n}"
	run := func(cfg *config.Config) []issue.Issue {
		file, err := source.ParseSource(context.Background(), "lib/services/session.ts", code)
		require.NoError(t, err)
		result, err := engine.New(engine.WithConfig(cfg), engine.WithClock(fixedClock)).Analyze(context.Background(), []*source.File{file})
		require.NoError(t, err)
		return result.Issues
	}
	expect := run(config.Default())
	require.NotEmpty(t, withTag(expect, "adapter"))

	var testCases = []struct {
		description string
		cfg         *config.Config
	}{
		{description: "empty", cfg: &config.Config{}},
		{description: "thresholds only", cfg: &config.Config{Thresholds: config.DefaultThresholds()}},
		{description: "vocabulary only", cfg: &config.Config{Vocabulary: config.DefaultVocabulary()}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, expect, run(testCase.cfg))
		})
	}
}

func TestEngine_Run_Skipped(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"lib/services/ok.ts":     "export const client = createClient(url, key);",
		"lib/services/broken.ts": "export function f( { return ;",
		"lib/services/notes.py":  "print(1)",
	})
	unit := func(relative string) source.Unit {
		return source.NewUnit(filepath.Join(root, filepath.FromSlash(relative)), relative, 0)
	}
	units := []source.Unit{
		unit("lib/services/ok.ts"),
		unit("lib/services/missing.ts"),
		unit("lib/services/notes.py"),
		unit("lib/services/broken.ts"),
	}

	var testCases = []struct {
		description string
		skipSyntax  bool
		expect      map[string]error
	}{
		{
			description: "recovered syntax errors are analyzed",
			expect: map[string]error{
				"lib/services/missing.ts": engine.ErrUnreadableFile,
				"lib/services/notes.py":   engine.ErrUnparsableFile,
			},
		},
		{
			description: "recovered syntax errors are skipped",
			skipSyntax:  true,
			expect: map[string]error{
				"lib/services/missing.ts": engine.ErrUnreadableFile,
				"lib/services/notes.py":   engine.ErrUnparsableFile,
				"lib/services/broken.ts":  engine.ErrUnparsableFile,
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			result, err := engine.New(engine.WithSkipSyntaxErrors(testCase.skipSyntax)).Run(context.Background(), units)
			require.NoError(t, err)
			assert.Equal(t, len(units), result.Files)
			assert.Equal(t, len(units)-len(testCase.expect), result.Analyzed)
			require.Len(t, result.Skipped, len(testCase.expect))
			for _, skipped := range result.Skipped {
				expect, ok := testCase.expect[skipped.Path]
				require.True(t, ok, skipped.Path)
				assert.ErrorIs(t, skipped.Err, expect)
				assert.NotEmpty(t, skipped.Reason)
			}
		})
	}
}

func TestEngine_Analyze_Faults(t *testing.T) {
	var files []*source.File
	for _, location := range []string{"lib/services/boom.ts", "lib/services/fail.ts", "lib/services/session.ts"} {
		file, err := source.ParseSource(context.Background(), location, "export async function currentSession(auth) {\n  return auth.getSession();\n}")
		require.NoError(t, err)
		files = append(files, file)
	}
	factory := func(cfg *config.Config, options ...analyzer.Option) []analyzer.Analyzer {
		return []analyzer.Analyzer{&faulty{}, analyzer.NewAuth(cfg, options...)}
	}
	result, err := engine.New(engine.WithAnalyzers(factory), engine.WithClock(fixedClock)).Analyze(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Analyzed)
	require.Len(t, result.Faults, 2)
	for i, expect := range []string{"lib/services/boom.ts", "lib/services/fail.ts"} {
		assert.Equal(t, expect, result.Faults[i].Path)
		assert.Equal(t, "faulty", result.Faults[i].Analyzer)
		assert.ErrorIs(t, result.Faults[i].Err, engine.ErrAnalyzerFault)
	}
	byFile := issue.GroupBy(result.Issues, func(i *issue.Issue) string { return i.File })
	for _, file := range files {
		assert.Len(t, byFile[file.Path()], 2, file.Path())
	}
	assert.Equal(t, "lib/services/boom.ts", result.Issues[0].File)
	assert.Equal(t, "lib/services/session.ts", result.Issues[len(result.Issues)-1].File)
}

func TestEngine_Analyze_Cancelled(t *testing.T) {
	file, err := source.ParseSource(context.Background(), "lib/services/a.ts", "export const client = createClient(url, key);")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := engine.New().Analyze(ctx, []*source.File{file})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Analyzed)
	assert.Empty(t, result.Issues)
}

func TestEngine_Analyze_MaxErrors(t *testing.T) {
	var files []*source.File
	for _, location := range []string{"lib/services/boom.ts", "lib/services/fail.ts", "lib/services/session.ts"} {
		file, err := source.ParseSource(context.Background(), location, "export const client = createClient(url, key);")
		require.NoError(t, err)
		files = append(files, file)
	}
	factory := func(cfg *config.Config, options ...analyzer.Option) []analyzer.Analyzer {
		return []analyzer.Analyzer{&faulty{}}
	}
	var progress []engine.Progress
	result, err := engine.New(engine.WithAnalyzers(factory), engine.WithMaxErrors(2),
		engine.WithProgress(func(p engine.Progress) { progress = append(progress, p) })).Analyze(context.Background(), files)
	assert.ErrorIs(t, err, engine.ErrTooManyErrors)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Analyzed)
	assert.Len(t, result.Faults, 2)
	require.Len(t, progress, 1)
	assert.Equal(t, 1, progress[0].Current)
	assert.Equal(t, 3, progress[0].Total)
	assert.Equal(t, "lib/services/boom.ts", progress[0].File)
}
