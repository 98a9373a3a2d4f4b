package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"carerag/internal/adapter/memstore"
	"carerag/internal/domain"
	"carerag/internal/port"
)

// ErrNoSources is returned when no knowledge document matches the configured sources.
var ErrNoSources = errors.New("no knowledge sources found")

// ProgressFunc is called after each knowledge file is chunked.
type ProgressFunc func(processed, total int, currentFile string)

// LoadResult summarizes a knowledge load.
type LoadResult struct {
	Files      []string
	Chunks     int
	Generation uint64
	Duration   time.Duration
}

// LoadUseCase reads the knowledge documents, chunks them and swaps the result
// into the index. A failed load leaves the index as it was, so the first
// failure at startup leaves it empty and retrieval returns no hits.
type LoadUseCase struct {
	root    string
	index   *memstore.KnowledgeIndex
	walker  port.FileWalker
	reader  port.FileReader
	chunker port.Chunker
	logger  *zap.Logger

	mu sync.Mutex
}

func NewLoadUseCase(
	root string,
	index *memstore.KnowledgeIndex,
	walker port.FileWalker,
	reader port.FileReader,
	chunker port.Chunker,
	logger *zap.Logger,
) *LoadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoadUseCase{
		root:    root,
		index:   index,
		walker:  walker,
		reader:  reader,
		chunker: chunker,
		logger:  logger,
	}
}

// Load (re)builds the index from every matching source, in path order.
// Loads are serialized; concurrent readers keep seeing the old snapshot
// until the new one is complete.
func (u *LoadUseCase) Load(ctx context.Context, progress ProgressFunc) (*LoadResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	start := time.Now()
	result, err := u.load(ctx, progress)
	if err != nil {
		u.logger.Warn("knowledge load failed, keeping current index",
			zap.String("root", u.root),
			zap.Int("current_chunks", u.index.Len()),
			zap.Error(err))
		return nil, err
	}
	result.Duration = time.Since(start)

	u.logger.Info("knowledge loaded",
		zap.Strings("files", result.Files),
		zap.Int("chunks", result.Chunks),
		zap.Uint64("generation", result.Generation),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (u *LoadUseCase) load(ctx context.Context, progress ProgressFunc) (*LoadResult, error) {
	files, err := u.walker.Walk(u.root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk knowledge root: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoSources, u.root)
	}

	result := &LoadResult{}
	var chunks []domain.KnowledgeChunk

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := u.reader.ReadFile(file.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Path, err)
		}
		chunks = append(chunks, u.chunker.Chunk(content)...)
		result.Files = append(result.Files, file.Path)

		if progress != nil {
			progress(i+1, len(files), file.Path)
		}
	}

	u.index.Replace(chunks)
	result.Chunks = len(chunks)
	result.Generation = u.index.Generation()
	return result, nil
}

// LoadContent replaces the index with the chunks of a single in-memory document.
func (u *LoadUseCase) LoadContent(content string) *LoadResult {
	u.mu.Lock()
	defer u.mu.Unlock()

	chunks := u.chunker.Chunk(content)
	u.index.Replace(chunks)
	return &LoadResult{Chunks: len(chunks), Generation: u.index.Generation()}
}

// LoadAsync starts Load in the background. Queries issued before it finishes
// see the previous (initially empty) index. The returned channel is closed
// when the load is done.
func (u *LoadUseCase) LoadAsync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = u.Load(ctx, nil)
	}()
	return done
}
