package javascript

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/require-lens/core"
)

// Analyzer 从 JavaScript 语法树中收集 require 调用点。
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// ==========================================
// 1. 核心生命周期 (Core Workflow)
// ==========================================

// Analyze 先序遍历整棵树, 按源码顺序返回全部 require 调用点。
func (a *Analyzer) Analyze(rootNode *sitter.Node, source []byte, filePath string) ([]*core.CallSite, error) {
	var sites []*core.CallSite
	a.collectCallSites(rootNode, source, &sites)
	return sites, nil
}

func (a *Analyzer) collectCallSites(node *sitter.Node, source []byte, out *[]*core.CallSite) {
	if node.Kind() == KindCallExpression {
		if site := a.identifyCallSite(node, source); site != nil {
			*out = append(*out, site)
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			a.collectCallSites(child, source, out)
		}
	}
}

// ==========================================
// 2. 调用点识别 (Call Site Identification)
// ==========================================

func (a *Analyzer) identifyCallSite(call *sitter.Node, source []byte) *core.CallSite {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Kind() != KindIdentifier || callee.Utf8Text(source) != RequireIdentifier {
		return nil
	}

	site := &core.CallSite{
		Call:     call,
		Callee:   callee,
		TopScope: a.detectTopScope(call),
	}

	if arg := firstArgument(call); arg != nil {
		site.Arg = arg
		site.Dynamism = classifyDynamism(arg, source)
	}
	return site
}

// firstArgument 返回实参列表中的第一个表达式, 无参调用返回 nil
func firstArgument(call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := uint(0); i < args.NamedChildCount(); i++ {
		if child := args.NamedChild(i); child.Kind() != KindComment {
			return child
		}
	}
	return nil
}

// ==========================================
// 3. 动态性分类 (Dynamism Classification)
// ==========================================

// classifyDynamism 给实参表达式打动态性标签:
//   - 字符串字面量 / 无插值模板       -> StaticID
//   - 带插值模板或拼接, 有字面量头部   -> TemplateHead
//   - 其余 (标识符、无头部拼接等)      -> FullyDynamic
func classifyDynamism(arg *sitter.Node, source []byte) core.Dynamism {
	switch arg.Kind() {
	case KindString:
		raw := arg.Utf8Text(source)
		return &core.StaticID{ID: stringContent(raw), Raw: raw}

	case KindTemplateString:
		if head, whole, static := templateParts(arg, source); static {
			return &core.StaticID{ID: whole, Raw: "'" + whole + "'"}
		} else if head != "" {
			return &core.TemplateHead{Head: head}
		}
		return &core.FullyDynamic{}

	case KindParenExpression:
		if inner := firstNamedNonComment(arg); inner != nil {
			return classifyDynamism(inner, source)
		}
		return &core.FullyDynamic{}

	case KindBinaryExpression:
		if head := concatHead(arg, source); head != "" {
			return &core.TemplateHead{Head: head}
		}
		return &core.FullyDynamic{}

	default:
		return &core.FullyDynamic{}
	}
}

// stringContent 去掉字面量 token 两侧的引号
func stringContent(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// templateParts 返回模板字符串第一个插值之前的字面量头部。
// static 为 true 表示模板不含插值, whole 即完整内容。
func templateParts(tpl *sitter.Node, source []byte) (head, whole string, static bool) {
	raw := tpl.Utf8Text(source)
	whole = stringContent(raw) // 去掉反引号

	for i := uint(0); i < tpl.NamedChildCount(); i++ {
		if child := tpl.NamedChild(i); child.Kind() == KindTemplateSub {
			head = string(source[tpl.StartByte()+1 : child.StartByte()])
			return head, whole, false
		}
	}
	return whole, whole, true
}

// concatHead 返回字符串拼接链 ('./a/' + x + ...) 最左端的字面量头部
func concatHead(expr *sitter.Node, source []byte) string {
	if expr.Kind() != KindBinaryExpression {
		return ""
	}
	op := expr.ChildByFieldName("operator")
	if op == nil || op.Utf8Text(source) != "+" {
		return ""
	}

	left := expr.ChildByFieldName("left")
	for left != nil {
		switch left.Kind() {
		case KindString:
			return stringContent(left.Utf8Text(source))
		case KindTemplateString:
			head, whole, static := templateParts(left, source)
			if static {
				return whole
			}
			return head
		case KindBinaryExpression:
			left = left.ChildByFieldName("left")
		case KindParenExpression:
			left = firstNamedNonComment(left)
		default:
			return ""
		}
	}
	return ""
}

func firstNamedNonComment(node *sitter.Node) *sitter.Node {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(i); child.Kind() != KindComment {
			return child
		}
	}
	return nil
}

// ==========================================
// 4. 顶层绑定检测 (Top-scope Binding Detection)
// ==========================================

// detectTopScope 判断调用是否结构上是某条顶层语句唯一的右值:
// 允许穿过成员/下标/括号包装, 随后要求落在 program 直接子级的
// 变量声明或表达式语句上。嵌套在条件、循环或函数体内的一律返回 nil。
func (a *Analyzer) detectTopScope(call *sitter.Node) *core.TopScopeBinding {
	wrap := call
unwrap:
	for {
		p := wrap.Parent()
		if p == nil {
			return nil
		}
		switch p.Kind() {
		case KindMemberExpression, KindSubscriptExpression:
			obj := p.ChildByFieldName("object")
			if obj == nil || !sameSpan(obj, wrap) {
				return nil
			}
			wrap = p
		case KindParenExpression:
			wrap = p
		default:
			break unwrap
		}
	}

	p := wrap.Parent()
	switch p.Kind() {
	case KindVariableDeclarator:
		value := p.ChildByFieldName("value")
		if value == nil || !sameSpan(value, wrap) {
			return nil
		}
		decl := p.Parent()
		if decl == nil {
			return nil
		}
		if k := decl.Kind(); k != KindLexicalDeclaration && k != KindVariableDeclaration {
			return nil
		}
		if gp := decl.Parent(); gp == nil || gp.Kind() != KindProgram {
			return nil
		}
		return &core.TopScopeBinding{Kind: core.TopScopeDeclaration, Statement: decl, Declarator: p}

	case KindExpressionStatement:
		// 仅裸调用语句整体提升; require('x').foo; 这类留给内联引擎
		if !sameSpan(wrap, call) {
			return nil
		}
		if gp := p.Parent(); gp == nil || gp.Kind() != KindProgram {
			return nil
		}
		return &core.TopScopeBinding{Kind: core.TopScopeExpression, Statement: p}
	}
	return nil
}

// sameSpan 通过字节区间判断两个节点是否为同一节点
func sameSpan(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}
