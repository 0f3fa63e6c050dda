package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, ErrReferenced},
		{"pg unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ErrDuplicate},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), ErrReferenced},
		{"sqlite unique", errors.New("UNIQUE constraint failed: criteria.internal_name"), ErrDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.err)
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if !errors.Is(got, tc.err) && got.Error() != tc.err.Error() {
				t.Fatalf("original error lost: %v", got)
			}
		})
	}

	plain := errors.New("connection reset")
	if got := Classify(plain); got != plain {
		t.Fatalf("unrelated errors must pass through, got %v", got)
	}
	if Classify(nil) != nil {
		t.Fatal("nil should stay nil")
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := sqliteDSN("file::memory:"); got != "file::memory:?_foreign_keys=on" {
		t.Fatalf("unexpected dsn %q", got)
	}
	if got := sqliteDSN("file:x?mode=memory"); got != "file:x?mode=memory&_foreign_keys=on" {
		t.Fatalf("unexpected dsn %q", got)
	}
	if got := sqliteDSN("x.db?_foreign_keys=1"); got != "x.db?_foreign_keys=1" {
		t.Fatalf("unexpected dsn %q", got)
	}
}
