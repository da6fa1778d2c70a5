package core

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/require-lens/model"
)

// Diagnostic 是当前文件转换的致命错误: 不受支持的顶层提升形态,
// 或无法确定字面量 id 的顶层 require。
// 携带精确的源码片段与 caret 下划线标记, 只放弃当前文件。
type Diagnostic struct {
	FilePath string
	Message  string
	Snippet  string // 违规语句的原始源码
	Marker   string // 与 Snippet 首行对齐的 ^^^ 标记
	Location *model.Location
}

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d:%d: %s\n", d.FilePath, d.Location.StartLine, d.Location.StartColumn, d.Message)
	for _, line := range strings.Split(d.Snippet, "\n") {
		fmt.Fprintf(&sb, "  %s\n", line)
	}
	fmt.Fprintf(&sb, "  %s", d.Marker)
	return sb.String()
}

// NewDiagnostic 用违规节点构造 Diagnostic。
// 标记对齐节点在其首行内的列范围, 多行节点只标记首行。
func NewDiagnostic(filePath, message string, node *sitter.Node, source []byte) *Diagnostic {
	start := node.StartPosition()
	end := node.EndPosition()

	snippet := node.Utf8Text(source)
	firstLine := snippet
	if i := strings.IndexByte(snippet, '\n'); i >= 0 {
		firstLine = snippet[:i]
	}

	marker := strings.Repeat("^", len(firstLine))

	return &Diagnostic{
		FilePath: filePath,
		Message:  message,
		Snippet:  snippet,
		Marker:   marker,
		Location: &model.Location{
			FilePath:    filePath,
			StartLine:   int(start.Row) + 1,
			EndLine:     int(end.Row) + 1,
			StartColumn: int(start.Column) + 1,
			EndColumn:   int(end.Column) + 1,
		},
	}
}
