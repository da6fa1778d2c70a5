package output

import (
	"path/filepath"

	"github.com/CodMac/require-lens/model"
)

type OutType string

const (
	JsonL   OutType = "jsonl"
	Mermaid OutType = "mermaid"
)

type Exporter struct {
	outputDir  string
	outputType OutType
}

func NewExporter(outputDir string, outputType OutType) *Exporter {
	return &Exporter{outputDir: outputDir, outputType: outputType}
}

// ExportJsonL 导出两个 JSONL 文件: 每个调用点的重写结果与提升的导入。
// 返回 (重写条数, 导入条数)。
func (p *Exporter) ExportJsonL(records []*model.TransformRecord) (int, int, error) {
	rewritePath := filepath.Join(p.outputDir, "rewrite.jsonl")
	importPath := filepath.Join(p.outputDir, "import.jsonl")

	rewriteCount, err := ExportRewrites(rewritePath, records)
	if err != nil {
		return 0, 0, err
	}

	importCount, err := ExportImports(importPath, records)
	if err != nil {
		return rewriteCount, 0, err
	}

	return rewriteCount, importCount, nil
}
