package detector

import (
	"github.com/viant/patternlint/config"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/source"
	"github.com/viant/patternlint/tree"
)

// Context carries per file detector inputs
type Context struct {
	File       *source.File
	Factory    *issue.Factory
	Domain     *Domain
	Thresholds config.Thresholds
	Logging    *Matcher
	Transforms *Matcher
}

// Func detects an issue anchored at node
type Func func(ctx *Context, node tree.Node) (*issue.Issue, error)

// Path returns reported file path
func (c *Context) Path() string {
	return c.File.Path()
}

// Root returns file root node
func (c *Context) Root() tree.Node {
	return c.File.Root()
}

// Create creates an issue for the current file, category defaults to the domain category
func (c *Context) Create(spec issue.Spec) (*issue.Issue, error) {
	spec.File = c.Path()
	if spec.Category == "" && c.Domain != nil {
		spec.Category = c.Domain.Category
	}
	created, err := c.Factory.Create(spec)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Each runs detect for every node, collecting issues in node order
func Each(ctx *Context, nodes []tree.Node, detect Func) ([]issue.Issue, error) {
	var result []issue.Issue
	for _, node := range nodes {
		detected, err := detect(ctx, node)
		if err != nil {
			return result, err
		}
		if detected != nil {
			result = append(result, *detected)
		}
	}
	return result, nil
}

// tags prefixes tags with the domain name
func (c *Context) tags(tags ...string) []string {
	if c.Domain == nil || c.Domain.Name == "" {
		return tags
	}
	return append([]string{c.Domain.Name}, tags...)
}
