package tree

// TypeScript/JavaScript grammar node kinds used across detectors
const (
	KindComment                 = "comment"
	KindProgram                 = "program"
	KindIdentifier              = "identifier"
	KindPropertyIdentifier      = "property_identifier"
	KindCall                    = "call_expression"
	KindNew                     = "new_expression"
	KindMember                  = "member_expression"
	KindArguments               = "arguments"
	KindAwait                   = "await_expression"
	KindParenthesized           = "parenthesized_expression"
	KindNonNull                 = "non_null_expression"
	KindBinary                  = "binary_expression"
	KindUnary                   = "unary_expression"
	KindString                  = "string"
	KindTemplateString          = "template_string"
	KindTemplateSubstitution    = "template_substitution"
	KindNumber                  = "number"
	KindObject                  = "object"
	KindPair                    = "pair"
	KindSpread                  = "spread_element"
	KindStatementBlock          = "statement_block"
	KindExpressionStatement     = "expression_statement"
	KindReturn                  = "return_statement"
	KindThrow                   = "throw_statement"
	KindIf                      = "if_statement"
	KindFor                     = "for_statement"
	KindForIn                   = "for_in_statement"
	KindWhile                   = "while_statement"
	KindDo                      = "do_statement"
	KindSwitch                  = "switch_statement"
	KindSwitchCase              = "switch_case"
	KindSwitchDefault           = "switch_default"
	KindTry                     = "try_statement"
	KindCatch                   = "catch_clause"
	KindLexicalDeclaration      = "lexical_declaration"
	KindVariableDeclaration     = "variable_declaration"
	KindVariableDeclarator      = "variable_declarator"
	KindObjectPattern           = "object_pattern"
	KindShorthandPattern        = "shorthand_property_identifier_pattern"
	KindPairPattern             = "pair_pattern"
	KindTypeAnnotation          = "type_annotation"
	KindPredefinedType          = "predefined_type"
	KindFunctionDeclaration     = "function_declaration"
	KindGeneratorDeclaration    = "generator_function_declaration"
	KindFunctionExpression      = "function_expression"
	KindFunction                = "function" // older grammar name of function_expression
	KindArrowFunction           = "arrow_function"
	KindMethodDefinition        = "method_definition"
	KindPublicField             = "public_field_definition"
	KindAssignment              = "assignment_expression"
	KindRequiredParameter       = "required_parameter"
	KindOptionalParameter       = "optional_parameter"
	KindRestPattern             = "rest_pattern"
	KindAssignmentPattern       = "assignment_pattern"
	KindObjectAssignmentPattern = "object_assignment_pattern"
	KindAs                      = "as_expression"
	KindSatisfies               = "satisfies_expression"
	KindTernary                 = "ternary_expression"
	KindImport                  = "import_statement"
	KindImportSpecifier         = "import_specifier"
	KindShorthandProperty       = "shorthand_property_identifier"
	KindTypeAlias               = "type_alias_declaration"
	KindInterface               = "interface_declaration"
	KindAsync                   = "async"
)

var functionKinds = map[string]bool{
	KindFunctionDeclaration:  true,
	KindGeneratorDeclaration: true,
	KindFunctionExpression:   true,
	KindFunction:             true,
	KindArrowFunction:        true,
	KindMethodDefinition:     true,
}

// nestingKinds lists constructs that contribute to nesting depth
var nestingKinds = map[string]bool{
	KindIf:            true,
	KindFor:           true,
	KindForIn:         true,
	KindWhile:         true,
	KindDo:            true,
	KindSwitch:        true,
	KindSwitchCase:    true,
	KindSwitchDefault: true,
	KindTry:           true,
	KindCatch:         true,
}

// IsFunction returns true if node is any function-like construct
func IsFunction(n Node) bool {
	return functionKinds[n.Kind()]
}
