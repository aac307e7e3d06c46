package analyzer

import (
	"fmt"

	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/detector"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/source"
	"github.com/viant/patternlint/tree"
	"github.com/viant/patternlint/variant"
)

// PersistenceName is the persistence analyzer name
const PersistenceName = "database-pattern"

var databaseClientDivergence = &detector.Divergence{
	Concern:        "database client instantiation pattern",
	Variants:       "patterns",
	Severity:       issue.Medium,
	Effort:         issue.EffortMedium,
	Recommendation: "Standardize database client creation to use a single pattern across the codebase, choosing the client factory that matches the runtime context (server, browser or route handler).",
	Tags:           []string{"client-instantiation"},
}

// Persistence detects database access issues: divergent client creation, unhandled or untyped operations,
// divergent entity types, manual schema types, injection prone rpc calls, layering violations and
// pass-through data wrappers
type Persistence struct {
	*base
	clients  *variant.Accumulator[string]
	entities map[string]*variant.Accumulator[string]
}

// NewPersistence creates persistence analyzer
func NewPersistence(cfg *config.Config, options ...Option) *Persistence {
	cfg = config.Normalized(cfg)
	vocabulary := &cfg.Vocabulary
	return &Persistence{
		base: newBase(PersistenceName, cfg, detector.NewPersistenceDomain(vocabulary),
			[]source.Category{source.Endpoint, source.Service, source.Utility, source.UIComponent}, options),
		clients:  variant.New("database-client", variant.KeywordClassifier(variant.NameStyles(vocabulary.DatabaseClients...))),
		entities: map[string]*variant.Accumulator[string]{},
	}
}

// Analyze analyzes file
func (p *Persistence) Analyze(file *source.File) ([]issue.Issue, error) {
	operations := p.domain.Operations(file.Root())
	return p.run(p.context(file),
		record(p.clients, databaseClientDivergence, isCall),
		over(operations, detector.MissingErrorHandling),
		overOne(operations, detector.MixedErrorHandling),
		typeSafety,
		p.entityTypes,
		p.manualSchemaTypes,
		over(operations, detector.ComponentAccess),
		injection,
		overOne(operations, detector.ServiceLayer),
		one(p.clientImportSprawl),
		passThrough,
	)
}

func (p *Persistence) clientImportSprawl(ctx *detector.Context) (*issue.Issue, error) {
	return detector.ClientImportSprawl(ctx, p.config.Vocabulary.DatabaseClients)
}

// entityTypes feeds typed entity declarators into per entity accumulators shared by the run
func (p *Persistence) entityTypes(ctx *detector.Context) ([]issue.Issue, error) {
	entities := p.config.Vocabulary.Entities
	return detector.Each(ctx, tree.FindByKind(ctx.Root(), tree.KindVariableDeclarator), func(ctx *detector.Context, declarator tree.Node) (*issue.Issue, error) {
		name := detector.EntityName(declarator, entities)
		if name == "" {
			return nil, nil
		}
		accumulator, ok := p.entities[name]
		if !ok {
			accumulator = variant.New("entity-type:"+name, detector.EntityType())
			p.entities[name] = accumulator
		}
		return detector.Record(ctx, accumulator, entityDivergence(name), declarator)
	})
}

func (p *Persistence) manualSchemaTypes(ctx *detector.Context) ([]issue.Issue, error) {
	vocabulary := &p.config.Vocabulary
	return detector.Each(ctx, tree.FindByKind(ctx.Root(), tree.KindTypeAlias, tree.KindInterface), func(ctx *detector.Context, declaration tree.Node) (*issue.Issue, error) {
		return detector.ManualSchemaType(ctx, declaration, vocabulary.Entities, vocabulary.SchemaModules)
	})
}

func entityDivergence(name string) *detector.Divergence {
	return &detector.Divergence{
		Concern:        fmt.Sprintf("type usage for entity '%v'", name),
		Variants:       "type definitions",
		Severity:       issue.Medium,
		Effort:         issue.EffortMedium,
		Recommendation: "Standardize type definitions for database entities. Use the generated schema types consistently or define a single canonical type for each entity in a shared types module.",
		Tags:           []string{"type-safety"},
	}
}

func typeSafety(ctx *detector.Context) ([]issue.Issue, error) {
	return detector.Each(ctx, tree.FindByKind(ctx.Root(), tree.KindVariableDeclarator), detector.TypeSafety)
}

func injection(ctx *detector.Context) ([]issue.Issue, error) {
	return detector.Each(ctx, tree.FindByKind(ctx.Root(), tree.KindCall), detector.Injection)
}
