package detector

import (
	"strconv"
	"strings"

	"github.com/viant/patternlint/tree"
	"github.com/viant/patternlint/variant"
)

const (
	stringPlaceholder = `"..."`
	numberPlaceholder = "N"
	minErrorStatus    = 400
)

var responseConstructors = map[string]bool{"Response": true, "NextResponse": true}

// ErrorResponseShape classifies return statements producing an error response by the shape of the response body
func ErrorResponseShape() variant.Classifier[string] {
	return func(node tree.Node) (string, bool) {
		if node.Kind() != tree.KindReturn {
			return "", false
		}
		body, options, chain, ok := responseParts(tree.Unwrap(node.FirstChild()))
		if !ok || body.IsZero() {
			return "", false
		}
		if !hasErrorKey(body) && !hasErrorStatus(options) && !hasErrorStatusCall(chain) {
			return "", false
		}
		return Shape(body), true
	}
}

// responseParts returns response body, init options and the call chain building the response
func responseParts(expression tree.Node) (body tree.Node, options tree.Node, chain tree.Node, ok bool) {
	switch expression.Kind() {
	case tree.KindCall:
		if tree.CalleeName(expression) != "json" {
			return body, options, chain, false
		}
		chain = expression
	case tree.KindNew:
		if !responseConstructors[expression.Field("constructor").Text()] {
			return body, options, chain, false
		}
	default:
		return body, options, chain, false
	}
	args := tree.Arguments(expression)
	if len(args) > 0 {
		body = tree.Unwrap(args[0])
		if tree.IsCall(body) && tree.CalleePath(body) == "JSON.stringify" {
			if inner := tree.Arguments(body); len(inner) > 0 {
				body = tree.Unwrap(inner[0])
			}
		}
	}
	if len(args) > 1 {
		options = tree.Unwrap(args[1])
	}
	return body, options, chain, true
}

func hasErrorKey(body tree.Node) bool {
	if body.Kind() != tree.KindObject {
		return false
	}
	for _, child := range body.Children() {
		key := child.Text()
		if child.Kind() == tree.KindPair {
			key = child.Field("key").Text()
		}
		if key == "error" || key == "errors" {
			return true
		}
	}
	return false
}

func hasErrorStatus(options tree.Node) bool {
	if options.Kind() != tree.KindObject {
		return false
	}
	for _, child := range options.Children() {
		if child.Kind() == tree.KindPair && child.Field("key").Text() == "status" && isErrorStatus(child.Field("value")) {
			return true
		}
	}
	return false
}

// hasErrorStatusCall returns true if the response chain sets an error status, i.e. res.status(500).json(...)
func hasErrorStatusCall(call tree.Node) bool {
	for current := call; tree.IsCall(current); current = tree.Receiver(current) {
		if tree.CalleeName(current) != "status" {
			continue
		}
		if args := tree.Arguments(current); len(args) > 0 && isErrorStatus(args[0]) {
			return true
		}
	}
	return false
}

func isErrorStatus(n tree.Node) bool {
	if n.Kind() != tree.KindNumber {
		return false
	}
	status, err := strconv.Atoi(n.Text())
	return err == nil && status >= minErrorStatus
}

// Shape returns node text with string and number literals replaced by placeholders and whitespace collapsed
func Shape(n tree.Node) string {
	text := n.Text()
	offset := n.Start()
	builder := strings.Builder{}
	position := 0
	tree.Walk(n, func(child tree.Node) bool {
		placeholder := ""
		switch child.Kind() {
		case tree.KindString, tree.KindTemplateString:
			placeholder = stringPlaceholder
		case tree.KindNumber:
			placeholder = numberPlaceholder
		default:
			return true
		}
		start, end := child.Start()-offset, child.End()-offset
		if start < position || end > len(text) {
			return false
		}
		builder.WriteString(text[position:start])
		builder.WriteString(placeholder)
		position = end
		return false
	})
	builder.WriteString(text[position:])
	return strings.Join(strings.Fields(builder.String()), " ")
}
