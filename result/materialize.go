package result

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/CrystallineCore/biscuit/bitmap"
	"github.com/CrystallineCore/biscuit/query"
)

// materialize converts result's set rows into tids: below
// opts.ParallelMaterializeMin rows it runs serially; at or above it, rows
// are split into disjoint chunks and resolved by a bounded worker pool
// (each worker owns a disjoint slice of the input and writes a disjoint
// slice of the output, so no synchronization is needed beyond the final
// join).
func (p Pipeline) materialize(ctx context.Context, result bitmap.Bitmap, lookup TIDLookup) []query.TID {
	rows := result.ToSlice()
	if len(rows) == 0 {
		return nil
	}
	if len(rows) < p.opts.ParallelMaterializeMin || ctx.Err() != nil {
		return materializeSerial(rows, lookup)
	}

	workers := workerCount(len(rows))
	chunks := splitChunks(rows, workers)
	tids := make([]query.TID, len(rows))

	eg, groupCtx := errgroup.WithContext(ctx)
	offset := 0
	for _, chunk := range chunks {
		chunk := chunk
		out := tids[offset : offset+len(chunk)]
		offset += len(chunk)
		eg.Go(func() error {
			// One cancellation checkpoint per chunk: a worker notices
			// cancellation before starting its chunk and bails out
			// immediately rather than materializing rows nobody will use.
			if err := groupCtx.Err(); err != nil {
				return err
			}
			for i, row := range chunk {
				out[i] = lookup(row)
			}
			return nil
		})
	}
	_ = eg.Wait()

	return tids
}

func materializeSerial(rows []uint32, lookup TIDLookup) []query.TID {
	tids := make([]query.TID, len(rows))
	for i, row := range rows {
		tids[i] = lookup(row)
	}
	return tids
}

// workerCount picks a small, bounded pool size: 2 workers under 100,000
// rows, 4 beyond that.
func workerCount(n int) int {
	switch {
	case n < 100_000:
		return 2
	default:
		return 4
	}
}

func splitChunks(rows []uint32, workers int) [][]uint32 {
	if workers < 1 {
		workers = 1
	}
	chunkSize := (len(rows) + workers - 1) / workers
	if chunkSize == 0 {
		chunkSize = len(rows)
	}
	chunks := make([][]uint32, 0, workers)
	for start := 0; start < len(rows); start += chunkSize {
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}
