package output

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodMac/require-lens/model"
)

func sampleRecords() []*model.TransformRecord {
	return []*model.TransformRecord{
		{
			FilePath: "src/app.js",
			Changed:  true,
			Rewrites: []*model.Rewrite{
				{Kind: model.StaticPromotion, Specifier: "vue"},
				{Kind: model.DynamicPromotion, Specifier: "./views/**/*", Details: "__cjsDynamicRequire0"},
				{Kind: model.Skip, Details: "builtin module", Specifier: "fs"},
			},
			Imports: []*model.HoistedImport{
				{LocalName: "__cjsImport1", Source: "./views/Home.vue", Kind: model.DynamicPromotion},
			},
		},
		{
			FilePath: "src/util.js",
			Changed:  false,
		},
	}
}

func TestExporter_ExportJsonL(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter(dir, JsonL)

	rewriteCount, importCount, err := exporter.ExportJsonL(sampleRecords())
	if err != nil {
		t.Fatalf("ExportJsonL failed: %v", err)
	}
	if rewriteCount != 3 || importCount != 1 {
		t.Errorf("Expected counts (3, 1), got (%d, %d)", rewriteCount, importCount)
	}

	// 1. rewrite.jsonl: 每行一个 JSON 对象, 携带所属文件
	lines := readLines(t, filepath.Join(dir, "rewrite.jsonl"))
	if len(lines) != 3 {
		t.Fatalf("Expected 3 rewrite rows, got %d", len(lines))
	}
	var row map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &row); err != nil {
		t.Fatalf("Invalid JSONL row: %v", err)
	}
	if row["FilePath"] != "src/app.js" || row["Kind"] != "STATIC_PROMOTION" {
		t.Errorf("Unexpected first row: %v", row)
	}

	// 2. import.jsonl
	lines = readLines(t, filepath.Join(dir, "import.jsonl"))
	if len(lines) != 1 {
		t.Fatalf("Expected 1 import row, got %d", len(lines))
	}
	if err := json.Unmarshal([]byte(lines[0]), &row); err != nil {
		t.Fatalf("Invalid JSONL row: %v", err)
	}
	if row["LocalName"] != "__cjsImport1" || row["Source"] != "./views/Home.vue" {
		t.Errorf("Unexpected import row: %v", row)
	}
}

func TestExporter_ExportMermaidHTML(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter(dir, Mermaid)

	nodes, edges, err := exporter.ExportMermaidHTML(sampleRecords())
	if err != nil {
		t.Fatalf("ExportMermaidHTML failed: %v", err)
	}
	// 2 个文件节点 + 2 个模块节点; SKIP 不产生边
	if nodes != 4 {
		t.Errorf("Expected 4 nodes, got %d", nodes)
	}
	if edges != 2 {
		t.Errorf("Expected 2 edges, got %d", edges)
	}

	data, err := os.ReadFile(filepath.Join(dir, "visualization.html"))
	if err != nil {
		t.Fatalf("Missing visualization.html: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "graph LR") {
		t.Errorf("Expected mermaid graph header")
	}
	if !strings.Contains(html, "STATIC_PROMOTION") || !strings.Contains(html, "DYNAMIC_PROMOTION") {
		t.Errorf("Expected edges labeled by rewrite kind:\n%s", html)
	}
	if strings.Contains(html, "SKIP") {
		t.Errorf("Skipped call sites must not appear in the graph")
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
