// Package duckdb loads SEAREV simulation traces stored in a DuckDB
// database, one table per sea state with columns (t, elevation, angle,
// speed, torque).
package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/wavegrid/searev/pkg/searev"
)

type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

// LoadDataset reads one trace table in time order and assembles the
// dataset, regenerating the time vector on the dt grid.
func (r *Reader) LoadDataset(ctx context.Context, table string, dt float64) (*searev.Dataset, error) {
	query := fmt.Sprintf(`SELECT t, elevation, angle, speed, torque FROM %s ORDER BY t`, table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying trace table %s: %w", table, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var timeCol, elev, angle, speed, torque []float64
	for rows.Next() {
		var t, e, a, s, tq float64
		if err := rows.Scan(&t, &e, &a, &s, &tq); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		timeCol = append(timeCol, t)
		elev = append(elev, e)
		angle = append(angle, a)
		speed = append(speed, s)
		torque = append(torque, tq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning rows: %w", err)
	}

	return searev.NewDataset(timeCol, elev, angle, speed, torque, dt)
}
