package javascript

// tree-sitter JavaScript 语法里本包关心的节点类型名, 保持统一
const (
	KindProgram             = "program"
	KindCallExpression      = "call_expression"
	KindIdentifier          = "identifier"
	KindString              = "string"
	KindTemplateString      = "template_string"
	KindTemplateSub         = "template_substitution"
	KindBinaryExpression    = "binary_expression"
	KindParenExpression     = "parenthesized_expression"
	KindMemberExpression    = "member_expression"
	KindSubscriptExpression = "subscript_expression"
	KindVariableDeclarator  = "variable_declarator"
	KindLexicalDeclaration  = "lexical_declaration"
	KindVariableDeclaration = "variable_declaration"
	KindExpressionStatement = "expression_statement"
	KindComment             = "comment"
)

// RequireIdentifier 是被识别为 CommonJS 加载调用的被调名
const RequireIdentifier = "require"
