package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodMac/require-lens/model"
)

// ExportMermaidHTML 把转换结果渲染成文件 -> 模块说明符的 Mermaid 依赖图。
// 节点: 被转换文件与其引用的模块; 边: 重写策略。
// 返回 (节点数, 边数)。
func (p *Exporter) ExportMermaidHTML(records []*model.TransformRecord) (int, int, error) {
	htmlPath := filepath.Join(p.outputDir, "visualization.html")

	f, err := os.Create(htmlPath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	fmt.Fprintln(f, `<!DOCTYPE html><html><head><meta charset="UTF-8"><script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script></head>
<body><div class="mermaid">graph LR`)

	nodes := make(map[string]bool)
	nodeCount := 0
	emitNode := func(id, label, shape string) {
		if nodes[id] {
			return
		}
		nodes[id] = true
		nodeCount++
		switch shape {
		case "file":
			fmt.Fprintf(f, "  %s[\"📄 %s\"]\n", id, label)
		default:
			fmt.Fprintf(f, "  %s([\"%s\"])\n", id, label)
		}
	}

	edgeCount := 0
	for _, rec := range records {
		fileID := safeID(rec.FilePath)
		emitNode(fileID, rec.FilePath, "file")

		for _, rw := range rec.Rewrites {
			if rw.Kind == model.Skip || rw.Specifier == "" {
				continue
			}
			tgtID := safeID(rw.Specifier)
			emitNode(tgtID, rw.Specifier, "module")
			fmt.Fprintf(f, "  %s -- %s --> %s\n", fileID, rw.Kind, tgtID)
			edgeCount++
		}
	}

	fmt.Fprintln(f, `</div><script>mermaid.initialize({startOnLoad:true, maxTextSize:1000000});</script></body></html>`)

	return nodeCount, edgeCount, nil
}

// 辅助函数

func safeID(id string) string {
	r := strings.NewReplacer(".", "_", "(", "_", ")", "_", "[", "_", "]", "_", " ", "_", "/", "_", "*", "_", "{", "_", "}", "_", ",", "_", "@", "at", "$", "_", "`", "_")
	return "n_" + r.Replace(id)
}
