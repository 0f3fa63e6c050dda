package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrReferenced means a row is still referenced through a RESTRICT foreign key,
	// or a referenced row does not exist.
	ErrReferenced = errors.New("referenced row constraint")
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate row")
)

const (
	pgForeignKeyViolation = "23503"
	pgRestrictViolation   = "23001"
	pgUniqueViolation     = "23505"
)

// Classify maps driver specific constraint failures onto ErrReferenced or
// ErrDuplicate, wrapping the original error. Other errors pass through.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation, pgRestrictViolation:
			return &classified{kind: ErrReferenced, err: err}
		case pgUniqueViolation:
			return &classified{kind: ErrDuplicate, err: err}
		}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &classified{kind: ErrReferenced, err: err}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &classified{kind: ErrDuplicate, err: err}
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "foreign key constraint failed"):
		return &classified{kind: ErrReferenced, err: err}
	case strings.Contains(msg, "unique constraint failed"):
		return &classified{kind: ErrDuplicate, err: err}
	}
	return err
}

type classified struct {
	kind error
	err  error
}

func (c *classified) Error() string { return c.err.Error() }

func (c *classified) Is(target error) bool { return target == c.kind }

func (c *classified) Unwrap() error { return c.err }
