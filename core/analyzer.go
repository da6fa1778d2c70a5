package core

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Analyzer 用于从语法树中收集 require 调用点。
type Analyzer interface {
	// Analyze 遍历 AST, 按源码顺序返回全部 require 调用点及其作用域/动态性分类。
	Analyze(rootNode *sitter.Node, source []byte, filePath string) ([]*CallSite, error)
}

var analyzerMap = make(map[Language]Analyzer)

// RegisterAnalyzer 注册一个语言与其对应的 Analyzer
func RegisterAnalyzer(lang Language, analyzer Analyzer) {
	analyzerMap[lang] = analyzer
}

// GetAnalyzer 根据语言类型获取对应的 Analyzer 实例。
func GetAnalyzer(lang Language) (Analyzer, error) {
	analyzer, ok := analyzerMap[lang]
	if !ok {
		return nil, fmt.Errorf("no analyzer registered for language: %s", lang)
	}

	return analyzer, nil
}
