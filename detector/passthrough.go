package detector

import (
	"fmt"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
)

var comparisonOperators = map[string]bool{
	"==": true, "===": true, "!=": true, "!==": true,
	"<": true, "<=": true, ">": true, ">=": true,
}

// PassThrough reports a named function that only forwards its parameters to another call
func PassThrough(ctx *Context, fn tree.Node) (*issue.Issue, error) {
	name := tree.FunctionName(fn)
	if name == "" || !ctx.Domain.Relevant(fn) {
		return nil, nil
	}
	body := tree.FunctionBody(fn)
	statements := tree.Statements(body)
	if len(statements) == 0 || len(statements) > ctx.Thresholds.PassThroughStatements {
		return nil, nil
	}
	if hasValidation(body) || ctx.Logging.Contains(body) || tree.Contains(body, isTry) {
		return nil, nil
	}
	delegated, exact := delegatedCall(body, statements)
	if delegated.IsZero() || !forwards(body, statements) {
		return nil, nil
	}
	if ctx.Transforms.Contains(body) {
		if len(statements) != 1 || !exact {
			return nil, nil
		}
		if _, ok := ctx.Transforms.Match(delegated); ok {
			return nil, nil
		}
	}
	if !exact && !coversParams(delegated, tree.FunctionParams(fn), ctx.Thresholds.PassThroughRatio) {
		return nil, nil
	}
	target := tree.CalleePath(delegated)
	return ctx.Create(issue.Spec{
		Type:           issue.UnnecessaryAdapter,
		Severity:       ctx.Domain.AdapterSeverity,
		Node:           fn,
		Description:    fmt.Sprintf("Unnecessary %v adapter detected: '%v'. This function is a simple pass-through wrapper delegating to '%v' without adding error handling, validation, transformation, or other logic.", ctx.Domain.Name, name, target),
		Recommendation: fmt.Sprintf("Remove the '%v' wrapper and call '%v' directly. This reduces code complexity and improves maintainability.", name, target),
		Effort:         ctx.Domain.AdapterEffort,
		Tags:           ctx.tags("adapter", "unnecessary", "wrapper"),
	})
}

// hasValidation returns true if body throws or holds a conditional testing a negation or comparison
func hasValidation(body tree.Node) bool {
	return tree.Contains(body, func(n tree.Node) bool {
		switch n.Kind() {
		case tree.KindThrow:
			return true
		case tree.KindIf:
			return tree.Contains(n.Field("condition"), isCheck)
		}
		return false
	})
}

func isCheck(n tree.Node) bool {
	switch n.Kind() {
	case tree.KindUnary:
		return n.Field("operator").Text() == "!"
	case tree.KindBinary:
		return comparisonOperators[n.Field("operator").Text()]
	}
	return false
}

func isTry(n tree.Node) bool {
	return n.Kind() == tree.KindTry
}

// forwards returns true if body is a concise expression, a single expression statement or returns a value
func forwards(body tree.Node, statements []tree.Node) bool {
	if body.Kind() != tree.KindStatementBlock {
		return true
	}
	if len(statements) == 1 && statements[0].Kind() == tree.KindExpressionStatement {
		return true
	}
	for _, statement := range statements {
		if statement.Kind() == tree.KindReturn {
			return true
		}
	}
	return false
}

// delegatedCall returns the forwarded call; exact is set when the body is a single statement that is exactly that call
func delegatedCall(body tree.Node, statements []tree.Node) (tree.Node, bool) {
	for _, statement := range statements {
		expression := statementExpression(statement)
		if tree.IsCall(expression) {
			return expression, len(statements) == 1
		}
	}
	calls := tree.FindByKind(body, tree.KindCall)
	if len(calls) == 0 {
		return tree.Node{}, false
	}
	return calls[0], false
}

// statementExpression returns the call like expression a statement evaluates, with await and parentheses removed
func statementExpression(statement tree.Node) tree.Node {
	switch statement.Kind() {
	case tree.KindReturn, tree.KindExpressionStatement:
		return tree.Unwrap(statement.FirstChild())
	case tree.KindStatementBlock:
		return tree.Node{}
	}
	return tree.Unwrap(statement)
}

// coversParams returns true if at least ratio of params appear as identifiers inside the call arguments
func coversParams(call tree.Node, params []string, ratio float64) bool {
	if len(params) == 0 {
		return false
	}
	args := call.Field("arguments")
	referenced := 0
	for _, param := range params {
		if tree.Contains(args, func(n tree.Node) bool {
			return (n.Kind() == tree.KindIdentifier || n.Kind() == tree.KindShorthandProperty) && n.Text() == param
		}) {
			referenced++
		}
	}
	return float64(referenced)/float64(len(params)) >= ratio
}
