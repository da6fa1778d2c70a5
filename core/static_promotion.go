package core

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/require-lens/model"
)

// runStaticPromotion 把整条顶层绑定语句覆写为 import 声明。
// 绑定形态 -> 产物:
//
//	require('x');                       -> import 'x';
//	const a = require('x')              -> import * as a from 'x'
//	const { a, b: c } = require('x')    -> import { a, b as c } from 'x'
//	const a = require('x').default      -> import a from 'x'
//	const a = require('x').prop         -> import { prop as a } from 'x' (prop==a 时省略 as)
//	const { ... } = require('x').default -> import __cjsImportN from 'x' + const { ... } = __cjsImportN
//	const { ... } = require('x').prop    -> import { prop as __cjsImportN } from 'x' + const { ... } = __cjsImportN
//
// 只检查调用的第一个 MemberExpression 祖先, 更深的链式访问不支持。
// 多 declarator 或表外形态是致命 Diagnostic: 放弃当前文件。
func (t *Transformer) runStaticPromotion(tc *TransformContext, site *CallSite, d *StaticID) error {
	ts := site.TopScope
	stmt := ts.Statement

	// 表达式语句: 只保留副作用导入
	if ts.Kind == TopScopeExpression {
		tc.Buffer.Replace(stmt.StartByte(), stmt.EndByte(), fmt.Sprintf("import %s;", d.Raw))
		tc.AddRewrite(&model.Rewrite{
			Kind:      model.StaticPromotion,
			Specifier: d.ID,
			Location:  nodeLocation(tc.FilePath, stmt),
		})
		return nil
	}

	if countDeclarators(stmt) != 1 {
		return NewDiagnostic(tc.FilePath,
			"multiple declarators in a require binding are not supported", stmt, tc.Source)
	}

	name := ts.Declarator.ChildByFieldName("name")
	value := ts.Declarator.ChildByFieldName("value")
	if name == nil || value == nil {
		return NewDiagnostic(tc.FilePath, "malformed require binding", stmt, tc.Source)
	}

	var text string
	switch {
	// 右侧是 require 调用本身
	case sameNode(value, site.Call):
		switch name.Kind() {
		case "identifier":
			text = fmt.Sprintf("import * as %s from %s;", name.Utf8Text(tc.Source), d.Raw)
		case "object_pattern":
			specs, err := importSpecifiersFromPattern(name, tc.Source)
			if err != nil {
				return NewDiagnostic(tc.FilePath, err.Error(), stmt, tc.Source)
			}
			text = fmt.Sprintf("import { %s } from %s;", strings.Join(specs, ", "), d.Raw)
		default:
			return NewDiagnostic(tc.FilePath,
				fmt.Sprintf("unsupported binding pattern %q for a require call", name.Kind()), stmt, tc.Source)
		}

	// 右侧是 require(...).prop 形式的单层成员访问
	case value.Kind() == "member_expression":
		obj := value.ChildByFieldName("object")
		if obj == nil || !sameNode(obj, site.Call) {
			return NewDiagnostic(tc.FilePath,
				"chained member access on a require call is not supported", stmt, tc.Source)
		}
		propNode := value.ChildByFieldName("property")
		if propNode == nil || propNode.Kind() != "property_identifier" {
			return NewDiagnostic(tc.FilePath,
				"computed member access on a require call is not supported", stmt, tc.Source)
		}
		prop := propNode.Utf8Text(tc.Source)

		switch name.Kind() {
		case "identifier":
			local := name.Utf8Text(tc.Source)
			switch {
			case prop == "default":
				text = fmt.Sprintf("import %s from %s;", local, d.Raw)
			case prop == local:
				text = fmt.Sprintf("import { %s } from %s;", prop, d.Raw)
			default:
				text = fmt.Sprintf("import { %s as %s } from %s;", prop, local, d.Raw)
			}
		case "object_pattern":
			// 解构 + 成员访问需要一个辅助绑定, 每个调用点独占一个
			syn := tc.NextImportName()
			pattern := name.Utf8Text(tc.Source)
			if prop == "default" {
				text = fmt.Sprintf("import %s from %s;\nconst %s = %s;", syn, d.Raw, pattern, syn)
			} else {
				text = fmt.Sprintf("import { %s as %s } from %s;\nconst %s = %s;", prop, syn, d.Raw, pattern, syn)
			}
		default:
			return NewDiagnostic(tc.FilePath,
				fmt.Sprintf("unsupported binding pattern %q for a require member access", name.Kind()), stmt, tc.Source)
		}

	default:
		return NewDiagnostic(tc.FilePath,
			fmt.Sprintf("unsupported right-hand shape %q for a require binding", value.Kind()), stmt, tc.Source)
	}

	tc.Buffer.Replace(stmt.StartByte(), stmt.EndByte(), text)
	tc.AddRewrite(&model.Rewrite{
		Kind:      model.StaticPromotion,
		Specifier: d.ID,
		Location:  nodeLocation(tc.FilePath, stmt),
	})
	return nil
}

// importSpecifiersFromPattern 把对象解构模式翻译为 import 说明符列表。
// {a, b: c} -> ["a", "b as c"]。嵌套解构、默认值与 rest 不支持。
func importSpecifiersFromPattern(pattern *sitter.Node, source []byte) ([]string, error) {
	var specs []string
	for i := uint(0); i < pattern.NamedChildCount(); i++ {
		entry := pattern.NamedChild(i)
		switch entry.Kind() {
		case "shorthand_property_identifier_pattern":
			specs = append(specs, entry.Utf8Text(source))
		case "pair_pattern":
			key := entry.ChildByFieldName("key")
			val := entry.ChildByFieldName("value")
			if key == nil || val == nil || val.Kind() != "identifier" {
				return nil, fmt.Errorf("unsupported destructuring entry %q in require binding", entry.Utf8Text(source))
			}
			specs = append(specs, fmt.Sprintf("%s as %s", key.Utf8Text(source), val.Utf8Text(source)))
		case "comment":
			continue
		default:
			return nil, fmt.Errorf("unsupported destructuring entry %q in require binding", entry.Utf8Text(source))
		}
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("empty destructuring pattern in require binding")
	}
	return specs, nil
}

// countDeclarators 统计声明语句中的 variable_declarator 个数
func countDeclarators(stmt *sitter.Node) int {
	count := 0
	for i := uint(0); i < stmt.NamedChildCount(); i++ {
		if stmt.NamedChild(i).Kind() == "variable_declarator" {
			count++
		}
	}
	return count
}

// sameNode 通过字节区间判断两个节点是否为同一节点
func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}
