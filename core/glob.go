package core

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/require-lens/model"
)

// --- Glob 推导 (GlobDeriver) ---

// AliasResolve 是 GlobDeriver 回调: 对形如裸说明符的字面量头部做一次别名解析。
type AliasResolve func(ctx context.Context, head string) (*model.ResolvedAlias, error)

// DerivedGlob 是动态表达式推导出的 glob。
// Glob 保持源码书写形式 (可含别名前缀); Alias 非 nil 时记录头部的别名解析结果。
type DerivedGlob struct {
	Glob  string
	Alias *model.ResolvedAlias
}

// GlobDeriver 把动态 require 的实参表达式转换为等价的文件系统 glob,
// 与动态 import() 表达式使用同一套转换规则。
// 无法推导时返回 (nil, nil), 调用方静默跳过该调用点。
type GlobDeriver interface {
	DeriveGlob(ctx context.Context, arg *sitter.Node, source []byte, resolveAlias AliasResolve) (*DerivedGlob, error)
}

var globDeriverMap = make(map[Language]GlobDeriver)

// RegisterGlobDeriver 注册一个语言与其对应的 GlobDeriver
func RegisterGlobDeriver(lang Language, deriver GlobDeriver) {
	globDeriverMap[lang] = deriver
}

// GetGlobDeriver 根据语言类型获取对应的 GlobDeriver 实例。
func GetGlobDeriver(lang Language) (GlobDeriver, error) {
	deriver, ok := globDeriverMap[lang]
	if !ok {
		return nil, fmt.Errorf("no GlobDeriver for language: %s", lang)
	}

	return deriver, nil
}

// --- Glob 展开 (GlobExpander) ---

// GlobExpander 在 baseDir 下展开 glob, 返回匹配文件的相对路径列表。
// 枚举顺序即文件系统顺序, 不额外排序。
type GlobExpander interface {
	Expand(pattern, baseDir string) ([]string, error)
}

// DoubleStarExpander 是默认实现, 支持 ** 与 {a,b} 花括号集合, 仅匹配文件。
type DoubleStarExpander struct{}

func (DoubleStarExpander) Expand(pattern, baseDir string) ([]string, error) {
	return doublestar.Glob(os.DirFS(baseDir), pattern, doublestar.WithFilesOnly())
}

// --- Glob 归一化 (动态引擎使用) ---

// NormalizeGlob 按两条规则归一化推导出的 glob:
//  1. 通配符前若无路径分隔符则补一个 (./foo* -> ./foo/*)
//  2. loose 时把尾段的单层通配符放宽为任意深度 (./foo/* -> ./foo/**/*)
func NormalizeGlob(glob string, loose bool) string {
	var b strings.Builder
	prev := rune(0)
	for _, c := range glob {
		if c == '*' && prev != '/' && prev != '*' && prev != 0 {
			b.WriteByte('/')
		}
		b.WriteRune(c)
		prev = c
	}
	glob = b.String()

	if loose && !strings.Contains(glob, "**") {
		if i := strings.LastIndex(glob, "/"); i >= 0 && strings.Contains(glob[i+1:], "*") {
			glob = glob[:i+1] + "**/" + glob[i+1:]
		}
	}
	return glob
}

// HasExtension 判断 glob 尾段是否带文件扩展名 (如 *.json)
func HasExtension(glob string) bool {
	return path.Ext(glob) != ""
}

// ExtensionBraces 把扩展名集合变成花括号展开后缀: [".js",".vue"] -> ".{js,vue}"
func ExtensionBraces(exts []string) string {
	trimmed := make([]string, 0, len(exts))
	for _, e := range exts {
		trimmed = append(trimmed, strings.TrimPrefix(e, "."))
	}
	return ".{" + strings.Join(trimmed, ",") + "}"
}

// SplitGlobBase 把 glob 拆成不含通配符的前导目录与剩余模式。
// "./views/**/*.vue" -> ("./views", "**/*.vue")
// 首段即含通配符时前导目录为 "."。
func SplitGlobBase(glob string) (base, pattern string) {
	segs := strings.Split(glob, "/")
	i := 0
	for ; i < len(segs); i++ {
		if strings.ContainsAny(segs[i], "*?{[") {
			break
		}
	}
	base = strings.Join(segs[:i], "/")
	pattern = strings.Join(segs[i:], "/")
	if base == "" {
		base = "."
	}
	return base, pattern
}
