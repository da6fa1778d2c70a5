package parser

import (
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"github.com/CodMac/require-lens/core"
)

// GetLanguage 返回语言对应的 tree-sitter 语法
func GetLanguage(lang core.Language) (*sitter.Language, error) {
	switch lang {
	case core.LangJavaScript:
		return sitter.NewLanguage(tree_sitter_javascript.Language()), nil
	}
	return nil, fmt.Errorf("unsupported language: %s", lang)
}

// TreeSitterParser 包装一个 tree-sitter 解析器实例。
// 解析器不是线程安全的: 并发处理时每个 worker 持有自己的实例。
// 语法树在 Close 前保持存活, 期间返回的节点始终有效。
type TreeSitterParser struct {
	parser *sitter.Parser
	trees  []*sitter.Tree
}

// NewParser 创建指定语言的解析器
func NewParser(lang core.Language) (*TreeSitterParser, error) {
	tsLang, err := GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("set language %s: %w", lang, err)
	}
	return &TreeSitterParser{parser: p}, nil
}

// Parse 解析源码并返回语法树根节点
func (p *TreeSitterParser) Parse(source []byte) (*sitter.Node, error) {
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter failed to parse %d bytes", len(source))
	}
	p.trees = append(p.trees, tree)
	return tree.RootNode(), nil
}

// ParseFile 读取并解析一个源文件, 返回根节点与源码内容
func (p *TreeSitterParser) ParseFile(path string) (*sitter.Node, []byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	root, err := p.Parse(source)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return root, source, nil
}

// Close 释放解析器与全部语法树
func (p *TreeSitterParser) Close() {
	for _, t := range p.trees {
		t.Close()
	}
	p.trees = nil
	p.parser.Close()
}
