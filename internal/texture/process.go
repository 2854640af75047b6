package texture

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/HugoSmits86/nativewebp"
)

// Options configure the texture pass.
type Options struct {
	MaxSize int // longest allowed side in pixels
	Workers int // worker goroutines; NumCPU when <= 0
}

// Result holds the outcome of processing one texture file.
type Result struct {
	Source  string `json:"source"`
	Output  string `json:"output,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Resized bool   `json:"resized,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Process converts every texture to WebP in outDir, downscaling any image
// over the size budget. Files are independent, so they run on a worker
// pool; a failed file never stops the others.
func Process(paths []string, outDir string, opts Options) []Result {
	if len(paths) == 0 {
		return nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		results := make([]Result, len(paths))
		for i, p := range paths {
			results[i] = Result{Source: p, Error: err.Error()}
		}
		return results
	}

	results := make([]Result, len(paths))
	idxChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxChan {
				results[idx] = processOne(paths[idx], outDir, opts.MaxSize)
			}
		}()
	}

	for i := range paths {
		idxChan <- i
	}
	close(idxChan)
	wg.Wait()

	return results
}

func processOne(path, outDir string, maxSize int) Result {
	img, err := Load(path)
	if err != nil {
		return Result{Source: path, Error: err.Error()}
	}

	b := img.Bounds()
	origLong := b.Dx()
	if b.Dy() > origLong {
		origLong = b.Dy()
	}

	resized := maxSize > 0 && origLong > maxSize
	if resized {
		img = Downscale(img, maxSize)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(outDir, stem+".webp")

	f, err := os.Create(outPath)
	if err != nil {
		return Result{Source: path, Error: err.Error()}
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return Result{Source: path, Error: fmt.Sprintf("WebP encode: %v", err)}
	}

	out := img.Bounds()
	return Result{
		Source:  path,
		Output:  outPath,
		Width:   out.Dx(),
		Height:  out.Dy(),
		Resized: resized,
	}
}
