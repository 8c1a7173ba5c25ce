package pbmlabel

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ResultDB is a SQLite database of labelled images.
type ResultDB struct {
	db *sql.DB
}

// ImageRecord is an image stored in the database.
type ImageRecord struct {
	ID         int64
	SHA1       string
	Width      int
	Height     int
	Components int
}

// NewResultDB opens or creates the database in file.
func NewResultDB(file string) (*ResultDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	// Workers record concurrently, SQLite only wants one writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS scan (id TEXT PRIMARY KEY NOT NULL, root TEXT NOT NULL, started INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, components INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS scan_image (scan_id TEXT NOT NULL, image_id INTEGER NOT NULL, path TEXT NOT NULL, UNIQUE(scan_id, path), FOREIGN KEY(scan_id) REFERENCES scan(id), FOREIGN KEY(image_id) REFERENCES image(id))"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS component (image_id INTEGER NOT NULL, label INTEGER NOT NULL, pixels INTEGER NOT NULL, min_x INTEGER NOT NULL, min_y INTEGER NOT NULL, max_x INTEGER NOT NULL, max_y INTEGER NOT NULL, UNIQUE(image_id, label), FOREIGN KEY(image_id) REFERENCES image(id))"); err != nil {
		return nil, err
	}

	return &ResultDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *ResultDB) Close() error {
	return db.db.Close()
}

// NewScan records the start of a scan of root and returns its id.
func (db *ResultDB) NewScan(root string) (string, error) {
	id := uuid.New().String()
	if _, err := db.db.Exec("INSERT INTO scan (id, root, started) VALUES (?, ?, ?)", id, root, time.Now().Unix()); err != nil {
		return "", err
	}
	return id, nil
}

// Record stores r as part of scan. Images are deduplicated by content so the
// same image under several paths is only stored once.
func (db *ResultDB) Record(scan string, r *Result) (err error) {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	var id int64
	switch err = tx.QueryRow("SELECT id FROM image WHERE sha1 = ?", r.SHA1).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO image (sha1, width, height, components) VALUES (?, ?, ?, ?)", r.SHA1, r.Config.Width, r.Config.Height, r.Count)
		if err != nil {
			return err
		}
		if id, err = result.LastInsertId(); err != nil {
			return err
		}

		for _, c := range r.Components {
			if _, err := tx.Exec("INSERT INTO component (image_id, label, pixels, min_x, min_y, max_x, max_y) VALUES (?, ?, ?, ?, ?, ?, ?)", id, c.Label, c.Pixels, c.Bounds.Min.X, c.Bounds.Min.Y, c.Bounds.Max.X, c.Bounds.Max.Y); err != nil {
				return err
			}
		}
	case nil:
	default:
		return err
	}

	_, err = tx.Exec("INSERT OR REPLACE INTO scan_image (scan_id, image_id, path) VALUES (?, ?, ?)", scan, id, r.Path)
	return err
}

// FindBySHA1 returns the image with the given digest, or nil if there isn't
// one.
func (db *ResultDB) FindBySHA1(sha string) (*ImageRecord, error) {
	var r ImageRecord
	switch err := db.db.QueryRow("SELECT id, sha1, width, height, components FROM image WHERE sha1 = ?", sha).Scan(&r.ID, &r.SHA1, &r.Width, &r.Height, &r.Components); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &r, nil
	default:
		return nil, err
	}
}

// Summarize summarizes the images recorded by scan.
func (db *ResultDB) Summarize(scan string) (Summary, error) {
	var images int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM scan_image WHERE scan_id = ?", scan).Scan(&images); err != nil {
		return Summary{}, err
	}

	rows, err := db.db.Query("SELECT c.pixels FROM scan_image AS s JOIN component AS c ON c.image_id = s.image_id WHERE s.scan_id = ?", scan)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	var areas []float64
	for rows.Next() {
		var pixels int
		if err := rows.Scan(&pixels); err != nil {
			return Summary{}, err
		}
		areas = append(areas, float64(pixels))
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}

	return summarize(images, areas), nil
}
