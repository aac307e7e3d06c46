package config

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/viant/patternlint/variant"
)

// Config represents analysis configuration
type Config struct {
	Jobs             int        `json:"jobs,omitempty" yaml:"jobs,omitempty" toml:"jobs"`
	SkipSyntaxErrors bool       `json:"skipSyntaxErrors,omitempty" yaml:"skipSyntaxErrors,omitempty" toml:"skipSyntaxErrors"`
	SnippetLength    int        `json:"snippetLength,omitempty" yaml:"snippetLength,omitempty" toml:"snippetLength"`
	Scan             Scan       `json:"scan" yaml:"scan" toml:"scan"`
	Thresholds       Thresholds `json:"thresholds" yaml:"thresholds" toml:"thresholds"`
	Vocabulary       Vocabulary `json:"vocabulary" yaml:"vocabulary" toml:"vocabulary"`
}

// Scan controls source discovery
type Scan struct {
	Extensions   []string `json:"extensions,omitempty" yaml:"extensions,omitempty" toml:"extensions"`
	ExcludedDirs []string `json:"excludedDirs,omitempty" yaml:"excludedDirs,omitempty" toml:"excludedDirs"`
	Include      []string `json:"include,omitempty" yaml:"include,omitempty" toml:"include"`
	Exclude      []string `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude"`
	MaxDepth     int      `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty" toml:"maxDepth"`
}

// Thresholds holds detector tuning values
type Thresholds struct {
	// PassThroughRatio is the share of parameters a wrapper must forward to be reported
	PassThroughRatio float64 `json:"passThroughRatio" yaml:"passThroughRatio" toml:"passThroughRatio"`
	// PassThroughStatements is the maximum statement count of a wrapper body
	PassThroughStatements int `json:"passThroughStatements" yaml:"passThroughStatements" toml:"passThroughStatements"`
	// TypedErrorRatio is the run-wide share of typed catch clauses above which generic catches are reported
	TypedErrorRatio float64 `json:"typedErrorRatio" yaml:"typedErrorRatio" toml:"typedErrorRatio"`
	// LoggingRatio is the run-wide share of logging error handlers above which silent handlers are reported
	LoggingRatio float64 `json:"loggingRatio" yaml:"loggingRatio" toml:"loggingRatio"`
	// ServiceLayerLimit is the number of risky operations an endpoint may contain before a service layer is recommended
	ServiceLayerLimit int `json:"serviceLayerLimit" yaml:"serviceLayerLimit" toml:"serviceLayerLimit"`
	// EvidenceWindow is the number of statements following an error binding searched for a check
	EvidenceWindow int `json:"evidenceWindow" yaml:"evidenceWindow" toml:"evidenceWindow"`
	// ClientImportLimit is the number of client related imports a file may carry
	ClientImportLimit int `json:"clientImportLimit" yaml:"clientImportLimit" toml:"clientImportLimit"`
	// RecoveryRatio is the run-wide share of recovering error handlers above which a file without recovery is reported
	RecoveryRatio float64 `json:"recoveryRatio" yaml:"recoveryRatio" toml:"recoveryRatio"`
	// RecoveryHandlerLimit is the number of handlers without recovery a file may carry
	RecoveryHandlerLimit int `json:"recoveryHandlerLimit" yaml:"recoveryHandlerLimit" toml:"recoveryHandlerLimit"`
}

// Vocabulary holds keyword tables used by classifiers and detectors.
// Call patterns: name matches callee name, name* matches callee name prefix,
// root.* matches calls on root identifier, a.b matches callee path suffix.
type Vocabulary struct {
	AuthClients            []string        `json:"authClients" yaml:"authClients" toml:"authClients"`
	DatabaseClients        []string        `json:"databaseClients" yaml:"databaseClients" toml:"databaseClients"`
	PermissionStyles       []variant.Style `json:"permissionStyles" yaml:"permissionStyles" toml:"permissionStyles"`
	SessionStyles          []variant.Style `json:"sessionStyles" yaml:"sessionStyles" toml:"sessionStyles"`
	AuthKeywords           []string        `json:"authKeywords" yaml:"authKeywords" toml:"authKeywords"`
	DatabaseKeywords       []string        `json:"databaseKeywords" yaml:"databaseKeywords" toml:"databaseKeywords"`
	AuthMiddlewareKeywords []string        `json:"authMiddlewareKeywords" yaml:"authMiddlewareKeywords" toml:"authMiddlewareKeywords"`
	AuthOperations         []string        `json:"authOperations" yaml:"authOperations" toml:"authOperations"`
	DatabaseOperations     []string        `json:"databaseOperations" yaml:"databaseOperations" toml:"databaseOperations"`
	DatabaseMutations      []string        `json:"databaseMutations" yaml:"databaseMutations" toml:"databaseMutations"`
	LoggingCalls           []string        `json:"loggingCalls" yaml:"loggingCalls" toml:"loggingCalls"`
	TransformCalls         []string        `json:"transformCalls" yaml:"transformCalls" toml:"transformCalls"`
	RiskyCalls             []string        `json:"riskyCalls" yaml:"riskyCalls" toml:"riskyCalls"`
	RecoveryKeywords       []string        `json:"recoveryKeywords" yaml:"recoveryKeywords" toml:"recoveryKeywords"`
	Entities               []string        `json:"entities" yaml:"entities" toml:"entities"`
	SchemaModules          []string        `json:"schemaModules" yaml:"schemaModules" toml:"schemaModules"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Jobs:          runtime.NumCPU(),
		SnippetLength: 200,
		Scan: Scan{
			Extensions:   []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"},
			ExcludedDirs: []string{"node_modules", ".git", ".next", "dist", "build", "coverage", "out"},
		},
		Thresholds: DefaultThresholds(),
		Vocabulary: DefaultVocabulary(),
	}
}

// DefaultThresholds returns default thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		PassThroughRatio:      0.7,
		PassThroughStatements: 2,
		TypedErrorRatio:       0.3,
		LoggingRatio:          0.6,
		ServiceLayerLimit:     3,
		EvidenceWindow:        5,
		ClientImportLimit:     2,
		RecoveryRatio:         0.5,
		RecoveryHandlerLimit:  2,
	}
}

// DefaultVocabulary returns default keyword tables
func DefaultVocabulary() Vocabulary {
	authClients := []string{
		"createClient", "getSupabaseClient", "initSupabase", "createSupabaseClient", "getAuthClient",
		"initAuth", "createAuthClient", "supabaseClient", "getClient", "initClient",
	}
	return Vocabulary{
		AuthClients: authClients,
		DatabaseClients: []string{
			"createClient", "getSupabaseClient", "initSupabase", "createSupabaseClient", "supabaseClient",
			"getClient", "initClient", "createServerClient", "createBrowserClient", "createRouteHandlerClient",
			"createServerComponentClient", "createMiddlewareClient", "getDB", "initDB", "createDB",
			"getDatabaseClient", "initDatabase",
		},
		PermissionStyles: []variant.Style{
			{Label: "role", Calls: []string{"checkRole", "hasRole", "isRole"}},
			{Label: "permission", Calls: []string{"checkPermission", "hasPermission", "can"}, Receivers: []string{"permissions"}},
			{Label: "custom", Calls: []string{"checkAuth", "isAuthorized", "authorize", "verifyAccess"}},
		},
		SessionStyles: []variant.Style{
			{Label: "cookie", Calls: []string{"cookies", "getCookie", "setCookie"}, Receivers: []string{"cookie", "cookieStore"}},
			{Label: "token", Calls: []string{"getToken", "setToken"}, Receivers: []string{"jwt"}},
			{Label: "managed-session", Calls: []string{"getSession", "setSession", "getUser"}},
			{Label: "custom", Calls: []string{"getAuth", "setAuth", "authSession"}},
		},
		AuthKeywords: []string{
			"auth", "authenticate", "authorize", "login", "logout", "session", "user", "permission",
			"role", "access", "token", "credential",
		},
		DatabaseKeywords: []string{
			"db", "database", "supabase", "client", "query", "fetch", "get", "create", "update", "delete",
			"insert", "upsert", "select", "find", "save", "load", "user", "profile", "post", "comment",
			"session", "account", "data",
		},
		AuthMiddlewareKeywords: []string{
			"auth", "authenticate", "authorize", "checkAuth", "verifyAuth", "getUser", "getSession",
			"checkPermission", "checkRole",
		},
		AuthOperations:     []string{"signIn*", "signUp", "signOut", "getSession", "getUser"},
		DatabaseOperations: []string{"select", "insert", "update", "upsert", "delete", "rpc"},
		DatabaseMutations:  []string{"insert", "update", "upsert", "delete", "rpc"},
		LoggingCalls: []string{
			"console.*", "logger.*", "log.error", "log.warn", "captureException", "trackError", "logError",
		},
		TransformCalls: []string{"map", "filter", "reduce", "transform", "flatMap", "Object.assign"},
		RiskyCalls: []string{
			"fetch", "axios.*", "http.*", "https.*", "supabase.*", "db.*", "database.*", "fs.*", "readFile*",
			"writeFile*", "JSON.parse", "JSON.stringify", "parseInt", "parseFloat",
		},
		RecoveryKeywords: []string{"retry", "fallback", "default", "alternative", "recover"},
		Entities: []string{
			"user", "profile", "post", "comment", "session", "account", "organization", "team", "project",
			"task", "item", "entity", "record", "data",
		},
		SchemaModules: []string{"database.types", "supabase"},
	}
}

// Normalize replaces unset values with defaults
func (c *Config) Normalize() {
	defaults := Default()
	if c.Jobs <= 0 {
		c.Jobs = defaults.Jobs
	}
	if c.SnippetLength <= 0 {
		c.SnippetLength = defaults.SnippetLength
	}
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = defaults.Scan.Extensions
	}
	if c.Scan.ExcludedDirs == nil {
		c.Scan.ExcludedDirs = defaults.Scan.ExcludedDirs
	}
	c.Thresholds.normalize(defaults.Thresholds)
	c.Vocabulary.normalize(defaults.Vocabulary)
}

// Normalized returns a normalized copy of cfg, nil yields the default configuration
func Normalized(cfg *Config) *Config {
	if cfg == nil {
		return Default()
	}
	ret := *cfg
	ret.Normalize()
	return &ret
}

func (t *Thresholds) normalize(defaults Thresholds) {
	if t.PassThroughRatio <= 0 {
		t.PassThroughRatio = defaults.PassThroughRatio
	}
	if t.PassThroughStatements <= 0 {
		t.PassThroughStatements = defaults.PassThroughStatements
	}
	if t.TypedErrorRatio <= 0 {
		t.TypedErrorRatio = defaults.TypedErrorRatio
	}
	if t.LoggingRatio <= 0 {
		t.LoggingRatio = defaults.LoggingRatio
	}
	if t.ServiceLayerLimit <= 0 {
		t.ServiceLayerLimit = defaults.ServiceLayerLimit
	}
	if t.EvidenceWindow <= 0 {
		t.EvidenceWindow = defaults.EvidenceWindow
	}
	if t.ClientImportLimit <= 0 {
		t.ClientImportLimit = defaults.ClientImportLimit
	}
	if t.RecoveryRatio <= 0 {
		t.RecoveryRatio = defaults.RecoveryRatio
	}
	if t.RecoveryHandlerLimit <= 0 {
		t.RecoveryHandlerLimit = defaults.RecoveryHandlerLimit
	}
}

func (v *Vocabulary) normalize(defaults Vocabulary) {
	fill := func(target *[]string, fallback []string) {
		if len(*target) == 0 {
			*target = fallback
		}
	}
	fill(&v.AuthClients, defaults.AuthClients)
	fill(&v.DatabaseClients, defaults.DatabaseClients)
	fill(&v.AuthKeywords, defaults.AuthKeywords)
	fill(&v.DatabaseKeywords, defaults.DatabaseKeywords)
	fill(&v.AuthMiddlewareKeywords, defaults.AuthMiddlewareKeywords)
	fill(&v.AuthOperations, defaults.AuthOperations)
	fill(&v.DatabaseOperations, defaults.DatabaseOperations)
	fill(&v.DatabaseMutations, defaults.DatabaseMutations)
	fill(&v.LoggingCalls, defaults.LoggingCalls)
	fill(&v.TransformCalls, defaults.TransformCalls)
	fill(&v.RiskyCalls, defaults.RiskyCalls)
	fill(&v.RecoveryKeywords, defaults.RecoveryKeywords)
	fill(&v.Entities, defaults.Entities)
	fill(&v.SchemaModules, defaults.SchemaModules)
	if len(v.PermissionStyles) == 0 {
		v.PermissionStyles = defaults.PermissionStyles
	}
	if len(v.SessionStyles) == 0 {
		v.SessionStyles = defaults.SessionStyles
	}
}

// Validate checks threshold ranges
func (c *Config) Validate() error {
	ratios := map[string]float64{
		"passThroughRatio": c.Thresholds.PassThroughRatio,
		"typedErrorRatio":  c.Thresholds.TypedErrorRatio,
		"loggingRatio":     c.Thresholds.LoggingRatio,
		"recoveryRatio":    c.Thresholds.RecoveryRatio,
	}
	for _, name := range []string{"passThroughRatio", "typedErrorRatio", "loggingRatio", "recoveryRatio"} {
		if value := ratios[name]; value < 0 || value > 1 {
			return fmt.Errorf("invalid %v: %v, expected value in [0,1]", name, value)
		}
	}
	if c.Thresholds.ServiceLayerLimit < 0 {
		return fmt.Errorf("invalid serviceLayerLimit: %v", c.Thresholds.ServiceLayerLimit)
	}
	for _, style := range append(append([]variant.Style{}, c.Vocabulary.PermissionStyles...), c.Vocabulary.SessionStyles...) {
		if style.Label == "" {
			return fmt.Errorf("invalid style: missing label")
		}
	}
	return nil
}

// LogValue implements [slog.LogValuer].
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("jobs", c.Jobs),
		slog.Bool("skipSyntaxErrors", c.SkipSyntaxErrors),
		slog.Float64("passThroughRatio", c.Thresholds.PassThroughRatio),
		slog.Float64("typedErrorRatio", c.Thresholds.TypedErrorRatio),
		slog.Int("serviceLayerLimit", c.Thresholds.ServiceLayerLimit),
	)
}
