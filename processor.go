package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/CodMac/require-lens/core"
	"github.com/CodMac/require-lens/model"
	"github.com/CodMac/require-lens/parser"
)

type FileProcessor struct {
	Language    core.Language
	Config      *model.Config
	Concurrency int
	OutDir      string // 非空: 改写结果按相对路径镜像写入该目录
	InPlace     bool   // 原地覆写源文件
}

func NewFileProcessor(lang core.Language, cfg *model.Config, concurrency int, outDir string, inPlace bool) *FileProcessor {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &FileProcessor{
		Language:    lang,
		Config:      cfg,
		Concurrency: concurrency,
		OutDir:      outDir,
		InPlace:     inPlace,
	}
}

// ProcessFiles 并发转换所有文件。文件之间完全独立 (核心状态全部按转换新建),
// 只有 SpecifierResolver 的只读缓存被共享。
// 单个文件的 Diagnostic 记录在该文件的 TransformRecord 里, 不影响其他文件。
func (fp *FileProcessor) ProcessFiles(ctx context.Context, rootPath string, filePaths []string) ([]*model.TransformRecord, error) {
	transformer, err := core.NewTransformer(fp.Language, fp.Config)
	if err != nil {
		return nil, err
	}

	absRoot, _ := filepath.Abs(rootPath)

	var mu sync.Mutex
	var records []*model.TransformRecord

	err = fp.runParallel(filePaths, func(path string, p *parser.TreeSitterParser) error {
		absPath, _ := filepath.Abs(path)
		root, source, err := p.ParseFile(absPath)
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(absRoot, absPath)

		var rec *model.TransformRecord
		res, terr := transformer.TransformFile(ctx, root, source, absPath)
		if terr != nil {
			rec = &model.TransformRecord{FilePath: relPath, Error: terr.Error()}
		} else {
			rec = res.Record
			rec.FilePath = relPath
			if res.Changed {
				if werr := fp.writeResult(absPath, relPath, res.Code); werr != nil {
					return werr
				}
			}
		}

		mu.Lock()
		records = append(records, rec)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 并发收集后恢复稳定顺序
	sort.Slice(records, func(i, j int) bool { return records[i].FilePath < records[j].FilePath })
	return records, nil
}

// writeResult 落盘一个改写后的文件
func (fp *FileProcessor) writeResult(absPath, relPath, code string) error {
	switch {
	case fp.InPlace:
		return os.WriteFile(absPath, []byte(code), 0644)
	case fp.OutDir != "":
		target := filepath.Join(fp.OutDir, relPath)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		return os.WriteFile(target, []byte(code), 0644)
	default:
		// 干跑: 只产出报告
		return nil
	}
}

// runParallel 内部并发调度器, 每个 worker 独享一个解析器实例
func (fp *FileProcessor) runParallel(paths []string, task func(string, *parser.TreeSitterParser) error) error {
	pathChan := make(chan string, len(paths))
	for _, p := range paths {
		pathChan <- p
	}
	close(pathChan)

	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for i := 0; i < fp.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := parser.NewParser(fp.Language)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			defer p.Close()

			for path := range pathChan {
				if err := task(path, p); err != nil {
					errOnce.Do(func() { firstErr = fmt.Errorf("%s: %w", path, err) })
					return
				}
			}
		}()
	}
	wg.Wait()
	return firstErr
}
