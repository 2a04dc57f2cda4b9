package records

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var ErrNotFound = errors.New("record not found")

func (s *Store) Insert(ctx context.Context, rec *Record) error {
	const q = `
		INSERT INTO records (sap_id, product_name, leaflet_date, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, created_at, updated_at
	`
	row := s.db.QueryRowContext(ctx, q,
		rec.SAPID,
		rec.ProductName,
		rec.Date,
		rec.Document,
		time.Now().UTC(),
	)
	return row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (s *Store) Get(ctx context.Context, id int64) (*Record, error) {
	const q = `
		SELECT id, sap_id, product_name, to_char(leaflet_date, 'YYYY-MM-DD'), document, created_at, updated_at
		FROM records WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, q, id)
	rec := &Record{}
	if err := row.Scan(&rec.ID, &rec.SAPID, &rec.ProductName, &rec.Date,
		&rec.Document, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *Store) List(ctx context.Context) ([]Record, error) {
	const q = `
		SELECT id, sap_id, product_name, to_char(leaflet_date, 'YYYY-MM-DD'), document, created_at, updated_at
		FROM records ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.SAPID, &rec.ProductName, &rec.Date,
			&rec.Document, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update replaces all four business fields of the matching row. Zero
// affected rows means the id does not exist.
func (s *Store) Update(ctx context.Context, rec *Record) error {
	const q = `
		UPDATE records
		SET sap_id = $1, product_name = $2, leaflet_date = $3, document = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := s.db.ExecContext(ctx, q,
		rec.SAPID,
		rec.ProductName,
		rec.Date,
		rec.Document,
		time.Now().UTC(),
		rec.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
