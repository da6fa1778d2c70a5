package core

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/CodMac/require-lens/model"
)

// dispatchCase 是分发函数里一个文件对应的全部运行期 key 与其绑定名
type dispatchCase struct {
	keys    []string
	binding string
}

// runDynamicPromotion 处理模块 id 运行期才可知的 require 调用:
//  1. 经 GlobDeriver 从实参表达式推导 glob (裸头部先走别名解析)
//  2. 归一化 glob 并按配置做深度放宽
//  3. 无扩展名时补全识别扩展名的花括号展开
//  4. 相对导入文件目录展开 glob, 零匹配则放弃
//  5. 为每个匹配文件推导运行期可能求值出的全部 key (无扩展名/带扩展名/index 目录)
//  6. 同文件复用早先动态调用点的绑定, 否则提升新的命名空间导入
//  7. 生成一个闭世界分发函数, 未知 key 运行期抛错
//  8. 只替换调用点的被调标识符, 原实参表达式原样保留
//
// 推导失败、别名解析失败或零匹配都是静默跳过, 不产生编辑。
func (t *Transformer) runDynamicPromotion(ctx context.Context, tc *TransformContext, site *CallSite) error {
	callLoc := nodeLocation(tc.FilePath, site.Call)

	// 1. glob 推导 (第一处挂起点)
	derived, err := t.Deriver.DeriveGlob(ctx, site.Arg, tc.Source, t.aliasResolver(tc))
	if err != nil {
		return err
	}
	if derived == nil {
		tc.AddRewrite(&model.Rewrite{Kind: model.Skip, Location: callLoc, Details: "glob not derivable"})
		return nil
	}

	// 2. 归一化
	glob := NormalizeGlob(derived.Glob, tc.Config.Loose)

	// 3. 扩展名补全
	if !HasExtension(glob) {
		glob += ExtensionBraces(tc.Config.Extensions)
	}

	// 4. 展开 (第二处挂起点)
	srcBase, pattern := SplitGlobBase(glob)
	fsDir, ok := t.globBaseDir(tc, srcBase, derived.Alias)
	if !ok {
		tc.AddRewrite(&model.Rewrite{Kind: model.Skip, Specifier: glob, Location: callLoc, Details: "alias prefix mismatch"})
		return nil
	}
	matches, err := t.Expander.Expand(pattern, fsDir)
	if err != nil || len(matches) == 0 {
		tc.AddRewrite(&model.Rewrite{Kind: model.Skip, Specifier: glob, Location: callLoc, Details: "glob matched no files"})
		return nil
	}

	// 5-6. key 推导与绑定去重
	srcPrefix := strings.TrimSuffix(srcBase, "/")
	seen := make(map[string]bool)
	var cases []dispatchCase
	for _, m := range matches {
		resolved := filepath.Join(fsDir, filepath.FromSlash(m))
		binding, cached := tc.CachedBinding(resolved)
		if !cached {
			binding = tc.NextImportName()
			tc.CacheBinding(resolved, binding)
			source := srcPrefix + "/" + m
			tc.Buffer.Prepend(fmt.Sprintf("import * as %s from '%s';", binding, source))
			tc.AddImport(&model.HoistedImport{LocalName: binding, Source: source, Kind: model.DynamicPromotion})
		}

		var keys []string
		for _, k := range runtimeKeys(srcPrefix, m) {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
		if len(keys) > 0 {
			cases = append(cases, dispatchCase{keys: keys, binding: binding})
		}
	}

	// 7. 分发函数
	fnName := tc.NextDispatchName()
	var fn strings.Builder
	fmt.Fprintf(&fn, "function %s(path) {\n  switch (path) {\n", fnName)
	for _, c := range cases {
		for _, k := range c.keys {
			fmt.Fprintf(&fn, "    case '%s':\n", k)
		}
		fmt.Fprintf(&fn, "      return %s;\n", c.binding)
	}
	fn.WriteString("    default:\n")
	fn.WriteString("      throw new Error(\"Cannot find module '\" + path + \"'\");\n")
	fn.WriteString("  }\n}")
	tc.Buffer.Append(fn.String())

	// 8. 只替换被调标识符, 实参表达式在运行期照常求值后传入
	tc.Buffer.Replace(site.Callee.StartByte(), site.Callee.EndByte(), fnName)

	tc.AddRewrite(&model.Rewrite{
		Kind:      model.DynamicPromotion,
		Specifier: glob,
		Location:  callLoc,
		Details:   fnName,
	})
	return nil
}

// aliasResolver 把 SpecifierResolver 包装成 GlobDeriver 的回调形态
func (t *Transformer) aliasResolver(tc *TransformContext) AliasResolve {
	return func(ctx context.Context, head string) (*model.ResolvedAlias, error) {
		return t.Resolver.Resolve(ctx, head, tc.FilePath)
	}
}

// globBaseDir 计算 glob 展开的绝对基目录。
// 别名头部把源码前缀翻译为解析出的文件系统前缀, 相对头部挂在导入文件目录下。
func (t *Transformer) globBaseDir(tc *TransformContext, srcBase string, alias *model.ResolvedAlias) (string, bool) {
	if alias != nil {
		if !strings.HasPrefix(srcBase, alias.Find) {
			return "", false
		}
		return filepath.Join(alias.Replacement, filepath.FromSlash(strings.TrimPrefix(srcBase, alias.Find))), true
	}
	return filepath.Join(filepath.Dir(tc.FilePath), filepath.FromSlash(srcBase)), true
}

// runtimeKeys 返回原动态表达式对一个匹配文件可能求值出的全部字符串:
// 无扩展名路径、带扩展名路径, index 文件额外加所在目录
// (对齐无扩展名/index 解析语义)。
func runtimeKeys(srcPrefix, match string) []string {
	ext := path.Ext(match)
	noExt := strings.TrimSuffix(match, ext)

	var keys []string
	if path.Base(noExt) == "index" {
		if dir := path.Dir(match); dir == "." {
			keys = append(keys, srcPrefix)
		} else {
			keys = append(keys, srcPrefix+"/"+dir)
		}
	}
	keys = append(keys, srcPrefix+"/"+noExt, srcPrefix+"/"+match)
	return keys
}
