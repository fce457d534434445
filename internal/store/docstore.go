package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qrhunt/scavenger/internal/migrations"
)

// DocStore implements Backend on libSQL: one table per collection, each row
// an id plus a JSONB document.
type DocStore struct {
	db *sql.DB
}

func NewDocStore(ctx context.Context, db *sql.DB) (*DocStore, error) {
	if err := migrations.Run(ctx, db); err != nil {
		return nil, err
	}
	return &DocStore{db: db}, nil
}

// Collection and field names are interpolated into SQL, so they are
// restricted to identifiers.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdent(kind, name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid %s name %q", kind, name)
	}
	return nil
}

// where builds a WHERE clause matching filter against the JSON document.
func where(filter Filter) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	var (
		conds []string
		args  []any
	)
	for field, v := range filter {
		if err := checkIdent("field", field); err != nil {
			return "", nil, err
		}
		conds = append(conds, fmt.Sprintf("json_extract(data, '$.%s') = ?", field))
		args = append(args, sqlValue(v))
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// sqlValue converts v to what json_extract yields for the same JSON value.
func sqlValue(v any) any {
	switch v := v.(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	}
	return v
}

func decode(data string) (Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocStore) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	if err := checkIdent("collection", collection); err != nil {
		return nil, err
	}
	clause, args, err := where(filter)
	if err != nil {
		return nil, err
	}

	var data string
	err = s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT json(data) FROM %s%s ORDER BY rowid LIMIT 1`, collection, clause), args...,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func (s *DocStore) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	if err := checkIdent("collection", collection); err != nil {
		return nil, err
	}
	clause, args, err := where(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT json(data) FROM %s%s ORDER BY rowid`, collection, clause), args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		doc, err := decode(data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *DocStore) Count(ctx context.Context, collection string) (int, error) {
	if err := checkIdent("collection", collection); err != nil {
		return 0, err
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, collection),
	).Scan(&n)
	return n, err
}

func (s *DocStore) InsertIfAbsent(ctx context.Context, collection, key string, doc Document) (bool, error) {
	if err := checkIdent("collection", collection); err != nil {
		return false, err
	}
	if key == "" {
		key = uuid.NewString()
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, data) VALUES (?, jsonb(?)) ON CONFLICT(id) DO NOTHING`, collection),
		key, string(data),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n == 1, nil
}

// Update loads the first matching document, merges set, and saves it in a
// transaction.
func (s *DocStore) Update(ctx context.Context, collection string, filter Filter, set Document) error {
	if err := checkIdent("collection", collection); err != nil {
		return err
	}
	clause, args, err := where(filter)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id, data string
	err = tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, json(data) FROM %s%s ORDER BY rowid LIMIT 1`, collection, clause), args...,
	).Scan(&id, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	doc, err := decode(data)
	if err != nil {
		return err
	}
	merged, err := json.Marshal(doc.clone(set))
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET data = jsonb(?) WHERE id = ?`, collection),
		string(merged), id,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *DocStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *DocStore) Close() error { return s.db.Close() }
