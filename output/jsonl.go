package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/CodMac/require-lens/model"
)

type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{encoder: json.NewEncoder(w)}
}

func (w *JSONLWriter) Write(v interface{}) error { return w.encoder.Encode(v) }

// rewriteRow 给每条重写补上所属文件, 方便下游按行消费
type rewriteRow struct {
	FilePath string `json:"FilePath"`
	*model.Rewrite
}

type importRow struct {
	FilePath string `json:"FilePath"`
	*model.HoistedImport
}

// ExportRewrites 把全部文件的调用点重写结果写成 JSONL
func ExportRewrites(path string, records []*model.TransformRecord) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	writer := NewJSONLWriter(f)
	count := 0
	for _, rec := range records {
		for _, rw := range rec.Rewrites {
			if err := writer.Write(&rewriteRow{FilePath: rec.FilePath, Rewrite: rw}); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// ExportImports 把全部文件的提升导入写成 JSONL
func ExportImports(path string, records []*model.TransformRecord) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	writer := NewJSONLWriter(f)
	count := 0
	for _, rec := range records {
		for _, imp := range rec.Imports {
			if err := writer.Write(&importRow{FilePath: rec.FilePath, HoistedImport: imp}); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
