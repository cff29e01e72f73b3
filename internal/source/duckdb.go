package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/paulmach/orb/geojson"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	instance *sql.DB
	once     sync.Once
	initErr  error
)

// DBConfig holds database configuration.
type DBConfig struct {
	DataDir string
	DBName  string
}

// OpenDB returns the singleton DuckDB connection with the spatial and
// parquet extensions loaded.
func OpenDB(cfg DBConfig) (*sql.DB, error) {
	once.Do(func() {
		duckdbDir := filepath.Join(cfg.DataDir, "duckdb")
		if err := os.MkdirAll(duckdbDir, 0755); err != nil {
			initErr = fmt.Errorf("creating duckdb directory: %w", err)
			return
		}

		dbPath := filepath.Join(duckdbDir, cfg.DBName+".duckdb")
		instance, initErr = sql.Open("duckdb", dbPath)
		if initErr != nil {
			return
		}

		// Extensions might already be installed; ignore individual failures.
		for _, ext := range []string{"spatial", "parquet"} {
			instance.Exec(fmt.Sprintf("INSTALL %s; LOAD %s;", ext, ext))
		}
	})
	return instance, initErr
}

// CloseDB closes the database connection.
func CloseDB() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// geomColumn is the result column QueryCollection reads geometry from.
const geomColumn = "geom"

// QueryCollection runs a SQL query and assembles a feature collection from
// the result. The query must yield a column named "geom" holding GeoJSON
// geometry text (e.g. via ST_AsGeoJSON); every other column becomes a
// feature property under its column name.
func QueryCollection(ctx context.Context, db *sql.DB, query string) (*geojson.FeatureCollection, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying features: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}
	geomIdx := -1
	for i, col := range columns {
		if col == geomColumn {
			geomIdx = i
		}
	}
	if geomIdx < 0 {
		return nil, fmt.Errorf("query result has no %q column", geomColumn)
	}

	fc := geojson.NewFeatureCollection()
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		geomText, err := cellText(values[geomIdx])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", geomColumn, err)
		}
		geometry, err := geojson.UnmarshalGeometry([]byte(geomText))
		if err != nil {
			return nil, fmt.Errorf("parsing geometry: %w", err)
		}

		f := geojson.NewFeature(geometry.Geometry())
		for i, col := range columns {
			if i == geomIdx {
				continue
			}
			f.Properties[col] = values[i]
		}
		fc.Append(f)
	}
	return fc, rows.Err()
}

func cellText(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	default:
		return "", fmt.Errorf("unexpected type %T, want GeoJSON text", v)
	}
}
