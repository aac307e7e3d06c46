package tree

// FunctionName returns declared function name or the name of the binding a function expression is assigned to
func FunctionName(fn Node) string {
	if name := fn.Field("name"); !name.IsZero() {
		return name.Text()
	}
	parent := fn.Parent()
	switch parent.Kind() {
	case KindVariableDeclarator:
		if name := parent.Field("name"); name.Kind() == KindIdentifier {
			return name.Text()
		}
	case KindPair:
		return parent.Field("key").Text()
	case KindPublicField:
		return parent.Field("name").Text()
	case KindAssignment:
		left := parent.Field("left")
		if left.Kind() == KindMember {
			return left.Field("property").Text()
		}
		return left.Text()
	}
	return ""
}

// FunctionParams returns parameter names; destructured parameters contribute each bound name
func FunctionParams(fn Node) []string {
	if single := fn.Field("parameter"); !single.IsZero() {
		return []string{single.Text()}
	}
	params := fn.Field("parameters")
	if params.IsZero() {
		return nil
	}
	var result []string
	for _, param := range params.Children() {
		pattern := param
		switch param.Kind() {
		case KindRequiredParameter, KindOptionalParameter:
			pattern = param.Field("pattern")
		case KindAssignmentPattern:
			pattern = param.Field("left")
		}
		result = append(result, boundNames(pattern)...)
	}
	return result
}

func boundNames(pattern Node) []string {
	switch pattern.Kind() {
	case KindIdentifier:
		return []string{pattern.Text()}
	case KindObjectPattern, "array_pattern":
		var result []string
		for _, child := range pattern.Children() {
			switch child.Kind() {
			case KindShorthandPattern, KindIdentifier:
				result = append(result, child.Text())
			case KindPairPattern:
				result = append(result, boundNames(child.Field("value"))...)
			default:
				result = append(result, boundNames(child)...)
			}
		}
		return result
	case KindRestPattern:
		return boundNames(pattern.FirstChild())
	case KindAssignmentPattern, "object_assignment_pattern":
		return boundNames(pattern.Field("left"))
	}
	return nil
}

// FunctionBody returns function body: a statement block or an expression for concise arrow functions
func FunctionBody(fn Node) Node {
	return fn.Field("body")
}

// Statements returns statements of a block, a non-block node is treated as a single statement
func Statements(body Node) []Node {
	if body.IsZero() {
		return nil
	}
	if body.Kind() != KindStatementBlock {
		return []Node{body}
	}
	var result []Node
	for _, child := range body.Children() {
		if child.Kind() == KindComment {
			continue
		}
		result = append(result, child)
	}
	return result
}

// IsEmptyBlock returns true if block has no statements (comments do not count)
func IsEmptyBlock(block Node) bool {
	return block.Kind() == KindStatementBlock && len(Statements(block)) == 0
}

// Functions returns every function-like node under root, in document order
func Functions(root Node) []Node {
	return FindWhere(root, IsFunction)
}

// DeclaredType returns the type text of a declarator or parameter type annotation
func DeclaredType(n Node) string {
	annotation := n.Field("type")
	if annotation.IsZero() {
		return ""
	}
	if annotation.Kind() == KindTypeAnnotation {
		if inner := annotation.FirstChild(); !inner.IsZero() {
			return inner.Text()
		}
	}
	return annotation.Text()
}

// AssertedType returns the type text of an as expression, i.e. any for data as any
func AssertedType(n Node) string {
	if n.Kind() != KindAs {
		return ""
	}
	children := n.Children()
	if len(children) < 2 {
		return ""
	}
	return children[len(children)-1].Text()
}

// IsAsync returns true if fn carries the async modifier
func IsAsync(fn Node) bool {
	if !IsFunction(fn) {
		return false
	}
	for _, child := range fn.AllChildren() {
		if child.Kind() == KindAsync {
			return true
		}
	}
	return false
}
