// Package shapecache memoises font.Shape results across CLI
// invocations, keyed by (font id, variation id, text, size), in a
// single-file SQLite database.
package shapecache

import (
	"encoding/json"
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"typeset/font"
	"typeset/unit"
)

// Cache is a handle to the on-disk shape cache.
type Cache struct {
	conn *sqlite.Conn
}

const schema = `
CREATE TABLE IF NOT EXISTS shape_cache (
	font_id      INTEGER NOT NULL,
	variation_id INTEGER NOT NULL,
	text         TEXT    NOT NULL,
	size_mm      REAL    NOT NULL,
	width_mm     REAL    NOT NULL,
	glyphs_json  TEXT    NOT NULL,
	PRIMARY KEY (font_id, variation_id, text, size_mm)
);
`

// Open opens (creating if necessary) the cache database at path. Pass
// ":memory:" for a process-local, non-persistent cache.
func Open(path string) (*Cache, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return nil, fmt.Errorf("opening shape cache %q: %w", path, err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialising shape cache schema: %w", err)
	}
	return &Cache{conn: conn}, nil
}

func (c *Cache) Close() error { return c.conn.Close() }

type glyphRow struct {
	Codepoint    rune    `json:"cp"`
	Cluster      int     `json:"cl"`
	XAdvanceMM   float64 `json:"xa"`
	FontXAdvance float64 `json:"fxa"`
}

// Get returns a cached shape result for (fontID, variationID, text,
// size), if present.
func (c *Cache) Get(fontID uint64, variationID uint64, text string, size unit.Distance) (font.Result, bool, error) {
	var result font.Result
	found := false

	err := sqlitex.Execute(c.conn,
		`SELECT width_mm, glyphs_json FROM shape_cache
		 WHERE font_id = ? AND variation_id = ? AND text = ? AND size_mm = ?`,
		&sqlitex.ExecOptions{
			Args: []any{int64(fontID), int64(variationID), text, size.MM()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				widthMM := stmt.ColumnFloat(0)
				glyphsJSON := stmt.ColumnText(1)

				var rows []glyphRow
				if err := json.Unmarshal([]byte(glyphsJSON), &rows); err != nil {
					return fmt.Errorf("decoding cached glyphs: %w", err)
				}
				width, err := unit.New(widthMM, unit.MM)
				if err != nil {
					return err
				}
				glyphs := make([]font.Glyph, 0, len(rows))
				for _, r := range rows {
					xa, err := unit.New(r.XAdvanceMM, unit.MM)
					if err != nil {
						return err
					}
					fxa, err := unit.New(r.FontXAdvance, unit.MM)
					if err != nil {
						return err
					}
					glyphs = append(glyphs, font.Glyph{
						Codepoint:    r.Codepoint,
						Cluster:      r.Cluster,
						XAdvance:     xa,
						FontXAdvance: fxa,
					})
				}
				result = font.Result{Width: width, Glyphs: glyphs}
				found = true
				return nil
			},
		})
	if err != nil {
		return font.Result{}, false, fmt.Errorf("querying shape cache: %w", err)
	}
	return result, found, nil
}

// Put stores a shape result under (fontID, variationID, text, size),
// replacing any existing entry for the same key.
func (c *Cache) Put(fontID uint64, variationID uint64, text string, size unit.Distance, result font.Result) error {
	rows := make([]glyphRow, 0, len(result.Glyphs))
	for _, g := range result.Glyphs {
		rows = append(rows, glyphRow{
			Codepoint:    g.Codepoint,
			Cluster:      g.Cluster,
			XAdvanceMM:   g.XAdvance.MM(),
			FontXAdvance: g.FontXAdvance.MM(),
		})
	}
	glyphsJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encoding glyphs for shape cache: %w", err)
	}

	return sqlitex.Execute(c.conn,
		`INSERT OR REPLACE INTO shape_cache (font_id, variation_id, text, size_mm, width_mm, glyphs_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{int64(fontID), int64(variationID), text, size.MM(), result.Width.MM(), string(glyphsJSON)},
		})
}
