package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CodMac/require-lens/core"
	"github.com/CodMac/require-lens/model"
	"github.com/CodMac/require-lens/output"
	_ "github.com/CodMac/require-lens/x/javascript"
)

const (
	MaxMermaidNodes = 200
	MaxMermaidEdges = 400
)

type Config struct {
	SourcePath string
	Filter     string
	Jobs       int
	OutDir     string
	Format     string
	ConfigFile string
	Write      bool
	Loose      bool
}

func main() {
	cfg := parseFlags()
	startTime := time.Now()

	// 1. 加载转换配置
	tCfg, err := loadTransformConfig(cfg)
	if err != nil {
		exitWithError("加载配置失败", err)
	}

	// 2. 扫描文件
	fmt.Fprintf(os.Stderr, "[1/4] 🔍 正在扫描目录: %s\n", cfg.SourcePath)
	files, err := scanFiles(cfg.SourcePath, cfg.Filter)
	if err != nil {
		exitWithError("扫描文件失败", err)
	}
	fmt.Fprintf(os.Stderr, "    找到 %d 个候选文件\n", len(files))

	// 3. 执行转换 (内部按文件并发)
	fmt.Fprintf(os.Stderr, "[2/4] ⚙️  正在重写 require 调用 (loose=%v, jobs=%d)...\n", tCfg.Loose, cfg.Jobs)
	_ = os.MkdirAll(cfg.OutDir, 0755)

	rewrittenDir := ""
	if !cfg.Write {
		rewrittenDir = filepath.Join(cfg.OutDir, "rewritten")
	}

	proc := NewFileProcessor(core.LangJavaScript, tCfg, cfg.Jobs, rewrittenDir, cfg.Write)
	records, err := proc.ProcessFiles(context.Background(), cfg.SourcePath, files)
	if err != nil {
		exitWithError("转换执行失败", err)
	}

	changed, failed := 0, 0
	for _, rec := range records {
		if rec.Error != "" {
			failed++
			fmt.Fprintf(os.Stderr, "    ⚠️  %s\n%s\n", rec.FilePath, rec.Error)
			continue
		}
		if rec.Changed {
			changed++
		}
	}

	// 4. 导出报告
	fmt.Fprintf(os.Stderr, "[3/4] 💾 正在写入结果文件...\n")
	rc, ic, err := runExport(cfg, records)
	if err != nil {
		exitWithError("导出失败", err)
	}

	fmt.Fprintf(os.Stderr, "    ✅ 完成: 改写文件=%d, 重写记录=%d, 提升导入=%d, 失败=%d\n", changed, rc, ic, failed)
	fmt.Fprintf(os.Stderr, "\n[4/4] ✨ 转换结束! 总耗时: %v\n", time.Since(startTime).Round(time.Millisecond))

	if failed > 0 {
		os.Exit(1)
	}
}

func parseFlags() Config {
	c := Config{}
	flag.StringVar(&c.SourcePath, "path", ".", "源码根路径")
	flag.StringVar(&c.Filter, "filter", "", "文件过滤正则")
	flag.IntVar(&c.Jobs, "jobs", 4, "并发数")
	flag.StringVar(&c.OutDir, "out-dir", "./output", "输出目录")
	flag.StringVar(&c.Format, "format", "jsonl", "报告格式: jsonl, mermaid")
	flag.StringVar(&c.ConfigFile, "config", "", "YAML 配置文件 (aliases/extensions/loose)")
	flag.BoolVar(&c.Write, "write", false, "原地覆写源文件 (默认写入 out-dir/rewritten)")
	flag.BoolVar(&c.Loose, "loose", true, "动态 glob 深度放宽 (webpack 式宽匹配)")
	flag.Parse()
	return c
}

// fileConfig 是 -config YAML 文件的结构
type fileConfig struct {
	Aliases    map[string]string `yaml:"aliases"`
	Extensions []string          `yaml:"extensions"`
	Loose      *bool             `yaml:"loose"`
}

func loadTransformConfig(cfg Config) (*model.Config, error) {
	tCfg := model.NewConfig()
	tCfg.Root = cfg.SourcePath
	tCfg.Loose = cfg.Loose

	if cfg.ConfigFile == "" {
		return tCfg, nil
	}

	data, err := os.ReadFile(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("解析 %s: %w", cfg.ConfigFile, err)
	}

	if len(fc.Aliases) > 0 {
		tCfg.Aliases = fc.Aliases
	}
	// 用户扩展名追加在内建集合之后
	tCfg.Extensions = append(tCfg.Extensions, fc.Extensions...)
	if fc.Loose != nil {
		tCfg.Loose = *fc.Loose
	}
	return tCfg, nil
}

func runExport(cfg Config, records []*model.TransformRecord) (int, int, error) {
	format := cfg.Format
	if format == "mermaid" {
		nodes, edges := estimateGraphSize(records)
		if nodes > MaxMermaidNodes || edges > MaxMermaidEdges {
			fmt.Fprintf(os.Stderr, "    ⚠️  规模过大(%d 节点)，Mermaid 渲染可能失败，自动降级为 jsonl\n", nodes)
			format = "jsonl"
		}
	}

	exporter := output.NewExporter(cfg.OutDir, output.OutType(format))

	if format == "mermaid" {
		return exporter.ExportMermaidHTML(records)
	}
	return exporter.ExportJsonL(records)
}

func estimateGraphSize(records []*model.TransformRecord) (int, int) {
	nodes, edges := len(records), 0
	for _, rec := range records {
		for _, rw := range rec.Rewrites {
			if rw.Kind != model.Skip && rw.Specifier != "" {
				nodes++
				edges++
			}
		}
	}
	return nodes, edges
}

func scanFiles(root, filter string) ([]string, error) {
	if filter == "" {
		filter = `.*\.(js|mjs|cjs|jsx)$`
	}
	re, err := regexp.Compile(filter)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && re.MatchString(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func exitWithError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}
