package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"github.com/tacusci/logging"

	"github.com/tacusci/rawforge/internal/config"
)

func newBatchCommand() *cobra.Command {
	opts := config.Default()
	var recursive bool
	var workers int
	var timed bool

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Decode every raw file under a directory concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args[0], opts, recursive, workers, timed)
		},
	}
	bindCommonFlags(cmd, &opts)
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().IntVarP(&workers, "workers", "j", 4, "number of files to decode concurrently")
	cmd.Flags().BoolVarP(&timed, "timed", "t", false, "report elapsed wall time")
	return cmd
}

// runBatch walks dir for raw files and decodes them with a bounded pool
// of workers. It generalizes the teacher's single find/convert
// goroutine pair into an N-wide worker pool over a buffered job
// channel: one goroutine walks the tree and feeds jobsChan, workers
// goroutines drain it and each run a full, non-concurrent A-H pipeline
// per file.
func runBatch(dir string, opts config.Options, recursive bool, workers int, timed bool) error {
	if workers < 1 {
		workers = 1
	}

	var startedAt time.Time
	if timed {
		startedAt = time.Now()
	}

	jobsChan := make(chan string, 32)
	var walkWG sync.WaitGroup
	var workersWG sync.WaitGroup
	var decoded, failed uint32

	walkWG.Add(1)
	go func() {
		defer walkWG.Done()
		if err := walkRawFiles(dir, recursive, jobsChan); err != nil {
			logging.Error(err.Error())
		}
	}()

	for i := 0; i < workers; i++ {
		workersWG.Add(1)
		go func() {
			defer workersWG.Done()
			for path := range jobsChan {
				if err := runDecode(path, opts); err != nil {
					logging.Error(err.Error())
					atomic.AddUint32(&failed, 1)
					continue
				}
				atomic.AddUint32(&decoded, 1)
			}
		}()
	}

	walkWG.Wait()
	close(jobsChan)
	workersWG.Wait()

	logging.Info(fmt.Sprintf("decoded %d file(s), %d failed", decoded, failed))
	if timed {
		logging.Info(fmt.Sprintf("time taken: %d ms", time.Since(startedAt).Milliseconds()))
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to decode", failed)
	}
	return nil
}

var rawExtensions = []string{".nef", ".cr2", ".cr3", ".arw", ".rw2", ".orf", ".dng", ".pef", ".srw", ".raf", ".3fr", ".iiq"}

func walkRawFiles(dir string, recursive bool, jobsChan chan<- string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if recursive {
				if err := walkRawFiles(full, recursive, jobsChan); err != nil {
					logging.Error(err.Error())
				}
			}
			continue
		}
		if isRawExtension(entry.Name()) {
			jobsChan <- full
		}
	}
	return nil
}

func isRawExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range rawExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
