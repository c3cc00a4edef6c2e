package source

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"calbank/internal/model"
)

// ImportResult holds the output of scanning and parsing an export directory.
type ImportResult struct {
	Meals       []model.MealEntry
	Targets     map[string]float64
	TotalFiles  int
	ParsedFiles int
	ParseErrors int
	FileErrors  int
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and parses all JSONL exports under dir.
// Files are parsed on a bounded worker pool; meal order within each
// file is preserved and files are collected in discovery order.
func Load(dir string, progressFn ProgressFunc) (*ImportResult, error) {
	files, err := ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &ImportResult{
		Targets:    make(map[string]float64),
		TotalFiles: len(files),
	}
	if len(files) == 0 {
		return result, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = ParseFile(files[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}

	wg.Wait()

	for _, pr := range results {
		if pr.Err != nil {
			result.FileErrors++
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += pr.ParseErrors
		result.Meals = append(result.Meals, pr.Meals...)
		for date, target := range pr.Targets {
			result.Targets[date] = target
		}
	}

	return result, nil
}
