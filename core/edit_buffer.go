package core

import (
	"fmt"
	"sort"
	"strings"
)

// Edit 是一段 [Start, End) 字节区间到替换文本的映射
type Edit struct {
	Start uint
	End   uint
	Text  string
}

// EditBuffer 收集全部区间替换与两个固定插入点 (文件头/文件尾),
// 最终一次性渲染出结果文本。
// 不变量: 区间互不重叠 —— 每个调用点只被路由到一个引擎,
// 每个引擎只触碰该调用点自身 (或其顶层绑定) 的区间。
type EditBuffer struct {
	edits    []Edit
	prepends []string // 提升的 import 行, 渲染在最前
	appends  []string // 生成的分发函数, 渲染在最后
}

func NewEditBuffer() *EditBuffer {
	return &EditBuffer{}
}

// Replace 记录一次区间替换
func (b *EditBuffer) Replace(start, end uint, text string) {
	b.edits = append(b.edits, Edit{Start: start, End: end, Text: text})
}

// Prepend 追加一行到文件头部插入块
func (b *EditBuffer) Prepend(line string) {
	b.prepends = append(b.prepends, line)
}

// Append 追加一个代码块到文件尾部插入块
func (b *EditBuffer) Append(block string) {
	b.appends = append(b.appends, block)
}

// Empty 报告缓冲区是否未记录任何编辑
func (b *EditBuffer) Empty() bool {
	return len(b.edits) == 0 && len(b.prepends) == 0 && len(b.appends) == 0
}

// Render 渲染最终文本: 头部插入块、应用全部区间替换后的源码、尾部插入块。
// 第二个返回值为 false 表示结果与输入一致 ("unchanged" 哨兵),
// 调用方可跳过后续处理。区间重叠返回错误。
func (b *EditBuffer) Render(source []byte) (string, bool, error) {
	edits := make([]Edit, len(b.edits))
	copy(edits, b.edits)
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].Start < edits[j].Start })

	var sb strings.Builder
	for _, line := range b.prepends {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	cursor := uint(0)
	for _, e := range edits {
		if e.Start < cursor {
			return "", false, fmt.Errorf("overlapping edit at byte %d (cursor %d)", e.Start, cursor)
		}
		if e.End > uint(len(source)) {
			return "", false, fmt.Errorf("edit range [%d,%d) exceeds source length %d", e.Start, e.End, len(source))
		}
		sb.Write(source[cursor:e.Start])
		sb.WriteString(e.Text)
		cursor = e.End
	}
	sb.Write(source[cursor:])

	for _, block := range b.appends {
		sb.WriteByte('\n')
		sb.WriteString(block)
		sb.WriteByte('\n')
	}

	out := sb.String()
	return out, out != string(source), nil
}
