package model

// --- 重写策略类型 (Rewrite Kinds) ---

// RewriteKind 是表示单个 require 调用点重写策略的字符串常量
type RewriteKind string

const (
	// StaticPromotion 顶层提升: 顶层 require 绑定原地改写为 import 声明
	// e.g., [const a = require('x') -> import * as a from 'x']
	StaticPromotion RewriteKind = "STATIC_PROMOTION"

	// InlinePromotion 内联提升: 嵌套的静态 require 替换为提升后的命名空间导入引用
	// e.g., [fn(require('x')) -> fn(__cjsImport0) + 头部 import * as __cjsImport0]
	InlinePromotion RewriteKind = "INLINE_PROMOTION"

	// DynamicPromotion 动态提升: 运行期才可知的模块 id 转为 glob 发现 + 闭世界分发函数
	// e.g., [require(`./views/${name}`) -> __cjsDynamicRequire0(`./views/${name}`)]
	DynamicPromotion RewriteKind = "DYNAMIC_PROMOTION"

	// Skip 静默跳过: 内建模块、无参调用、glob 不可推导或零匹配
	Skip RewriteKind = "SKIP"
)

// Location 描述了调用点或语句在源码中的位置
type Location struct {
	FilePath    string `json:"FilePath"`
	StartLine   int    `json:"StartLine"`
	EndLine     int    `json:"EndLine"`
	StartColumn int    `json:"StartColumn"`
	EndColumn   int    `json:"EndColumn"`
}

// Rewrite 描述了对单个 require 调用点的一次处理结果
type Rewrite struct {
	// Kind: 路由到的重写策略 (STATIC_PROMOTION / INLINE_PROMOTION / DYNAMIC_PROMOTION / SKIP)
	Kind RewriteKind `json:"Kind"`

	// Specifier: 调用点的模块 id。静态时为字面量, 动态时为推导出的 glob, 跳过时可能为空
	Specifier string `json:"Specifier,omitempty"`

	// Location: 调用点位置
	Location *Location `json:"Location,omitempty"`

	// Details: 附加描述 (如跳过原因、分发函数名)
	Details string `json:"Details,omitempty"`
}

// HoistedImport 描述了一条提升到文件头部的 import 声明
type HoistedImport struct {
	// LocalName: 生成的命名空间绑定名 (e.g., "__cjsImport0")
	LocalName string `json:"LocalName"`

	// Source: import 的模块说明符, 保持调用方书写形式 (含别名前缀)
	Source string `json:"Source"`

	// Kind: 产生该导入的引擎 (INLINE_PROMOTION 或 DYNAMIC_PROMOTION)
	Kind RewriteKind `json:"Kind"`
}

// TransformRecord 是单个文件一次转换的核心输出结构, 供导出器使用
type TransformRecord struct {
	// FilePath: 被转换文件路径 (相对于项目根目录)
	FilePath string `json:"FilePath"`

	// Changed: 转换后文本是否与输入不同。false 表示 "unchanged" 哨兵
	Changed bool `json:"Changed"`

	// Rewrites: 按源码顺序记录的每个调用点处理结果
	Rewrites []*Rewrite `json:"Rewrites,omitempty"`

	// Imports: 本次转换提升的全部 import
	Imports []*HoistedImport `json:"Imports,omitempty"`

	// Error: 致命 Diagnostic 的文本形式。非空时仅该文件转换被放弃
	Error string `json:"Error,omitempty"`
}
