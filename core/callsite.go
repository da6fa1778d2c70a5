package core

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// --- 动态性分类 (Dynamism) ---

// Dynamism 是调用点模块 id 动态性的标签变体。
// 每个变体只携带对应引擎需要的数据, 不暴露通用节点引用。
type Dynamism interface {
	dynamism()
}

// StaticID 模块 id 静态可知: 字符串字面量, 或不含插值的模板字符串。
type StaticID struct {
	ID  string // 求值后的模块 id (不含引号)
	Raw string // 可直接嵌入 import 声明的字面量 token (含引号, 保持原引号风格)
}

// TemplateHead 模块 id 运行期求值, 但存在字面量头部 (模板插值或字符串拼接)。
// 头部用于 glob 推导与别名判定。
type TemplateHead struct {
	Head string // 第一个动态片段之前的字面量前缀
}

// FullyDynamic 模块 id 完全动态, 没有任何字面量头部。
type FullyDynamic struct{}

func (*StaticID) dynamism()     {}
func (*TemplateHead) dynamism() {}
func (*FullyDynamic) dynamism() {}

// --- 顶层绑定 (Top-scope binding) ---

// TopScopeKind 区分顶层绑定的两种语句形态
type TopScopeKind int

const (
	TopScopeExpression  TopScopeKind = iota // require('x'); 独立成句
	TopScopeDeclaration                     // const a = require('x')
)

// TopScopeBinding 表示调用点是某条顶层语句结构上唯一的右值:
// 顶层变量声明的初始化表达式, 或顶层表达式语句的整个表达式,
// 且不嵌套在任何条件、循环或函数体内。
// Statement 的字节区间就是静态提升引擎覆写的精确范围。
type TopScopeBinding struct {
	Kind       TopScopeKind
	Statement  *sitter.Node // 整条语句 (lexical_declaration / variable_declaration / expression_statement)
	Declarator *sitter.Node // variable_declarator, 仅 TopScopeDeclaration
}

// CallSite 表示分析器识别出的一个 require 调用点
type CallSite struct {
	Call     *sitter.Node     // call_expression 节点
	Callee   *sitter.Node     // 被调标识符 `require`, 动态引擎只替换这一段
	Arg      *sitter.Node     // 第一个实参表达式, 无参调用时为 nil
	Dynamism Dynamism         // 模块 id 动态性分类, Arg 为 nil 时为 nil
	TopScope *TopScopeBinding // 非顶层绑定时为 nil
}
