package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// whereBuilder collects AND-ed conditions with positional arguments.
// List and count queries share one builder so their filters cannot drift.
type whereBuilder struct {
	conds []string
	args  []any
}

// arg registers v and returns its placeholder.
func (w *whereBuilder) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) raw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) eq(col string, v any) {
	w.conds = append(w.conds, col+" = "+w.arg(v))
}

func (w *whereBuilder) gte(col string, v any) {
	w.conds = append(w.conds, col+" >= "+w.arg(v))
}

func (w *whereBuilder) lte(col string, v any) {
	w.conds = append(w.conds, col+" <= "+w.arg(v))
}

// ilike matches a substring of a single column, case-insensitively.
func (w *whereBuilder) ilike(col, term string) {
	w.conds = append(w.conds, col+" ILIKE "+w.arg(likePattern(term)))
}

// ilikeAny matches term against any of cols using one shared argument.
func (w *whereBuilder) ilikeAny(cols []string, term string) {
	p := w.arg(likePattern(term))
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " ILIKE " + p
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT and OFFSET placeholders after the filter arguments.
func (w *whereBuilder) page(p domain.PageRequest) string {
	return fmt.Sprintf(" LIMIT %s OFFSET %s", w.arg(p.Limit), w.arg(p.Offset()))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// mapWriteError turns constraint violations into client errors and wraps the rest.
func mapWriteError(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.Conflict(conflictMsg)
		case pgForeignKeyViolation:
			return apperror.BadRequest("Referenced record does not exist")
		case pgCheckViolation:
			return apperror.Validation("Validation failed", pgErr.Message)
		}
	}
	return apperror.Internal(err)
}

// mapReadError converts pgx.ErrNoRows into domain.ErrNotFound.
func mapReadError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
