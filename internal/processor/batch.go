package processor

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Run processes files with Config.Threads workers and returns the aggregate
// outcome counts. Duplicate paths are processed once. With a single thread
// every file is handled in the calling goroutine; otherwise files are dealt
// round-robin into one chunk per thread and each non-empty chunk is run
// sequentially by its own worker. Per-file failures never stop the run; the
// error is only set when the worker pool cannot be used.
func (p *Processor) Run(files []string) (Summary, error) {
	files = dedupe(files)
	threads := p.Config.Threads

	p.Log.Debug().Int("files", len(files)).Int("threads", threads).Msg("starting batch")

	if threads <= 1 {
		return p.runChunk(files), nil
	}

	pool, err := ants.NewPool(threads)
	if err != nil {
		return Summary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	chunks := Partition(files, threads)
	summaries := make([]Summary, len(chunks))

	var wg sync.WaitGroup
	var submitErr error
	for i, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		i, chunk := i, chunk
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			summaries[i] = p.runChunk(chunk)
		}); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit chunk %d: %w", i, err)
			break
		}
	}
	wg.Wait()

	var total Summary
	for _, s := range summaries {
		total.Merge(s)
	}
	return total, submitErr
}

func (p *Processor) runChunk(files []string) Summary {
	var s Summary
	for _, path := range files {
		s.Add(p.ProcessFile(path).Outcome)
	}
	return s
}

// Partition deals files into n chunks round-robin: chunk i holds the files at
// positions i, i+n, i+2n, ... Chunk sizes differ by at most one and some
// chunks are empty when there are fewer files than chunks.
func Partition(files []string, n int) [][]string {
	if n < 1 {
		n = 1
	}
	chunks := make([][]string, n)
	for i, path := range files {
		chunks[i%n] = append(chunks[i%n], path)
	}
	return chunks
}

func dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, path := range files {
		if seen[path] {
			continue
		}
		seen[path] = true
		out = append(out, path)
	}
	return out
}
