package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// ContiguousIndexedBlocks counts the consecutive indexed heights starting at from. Blocks
// indexed above a gap are not counted, so a resume never skips a block whose insert failed.
func (r *Repository) ContiguousIndexedBlocks(ctx context.Context, from uint64) (count uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("contiguous_indexed_blocks", r.network, err, start)
	}()

	const query = `
WITH heights AS (
	SELECT DISTINCT block_height
	FROM utxo_block_transactions
	WHERE network = ? AND block_height >= ?
),
ranked AS (
	SELECT
		block_height,
		row_number() OVER (ORDER BY block_height) - 1 AS rn
	FROM heights
)
SELECT count() AS contiguous
FROM ranked
WHERE block_height - ? = rn`

	rows, err := r.conn.Query(ctx, query, string(r.network), from, from)
	if err != nil {
		return 0, fmt.Errorf("query contiguous indexed blocks: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return 0, fmt.Errorf("contiguous indexed blocks not found")
	}
	if err = rows.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan contiguous indexed blocks: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate contiguous indexed blocks: %w", err)
	}

	return count, nil
}
