package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
)

// collectOne scans exactly one row into R and converts it. It returns
// pgx.ErrNoRows when the result is empty.
func collectOne[R any, M any](rows pgx.Rows, toModel func(R) (M, error)) (M, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[R])
	if err != nil {
		var zero M
		return zero, err
	}
	return toModel(row)
}

func collectAll[R any, M any](rows pgx.Rows, toModel func(R) (M, error)) ([]M, error) {
	rs, err := pgx.CollectRows(rows, pgx.RowToStructByName[R])
	if err != nil {
		return nil, err
	}

	out := make([]M, 0, len(rs))
	for _, row := range rs {
		m, err := toModel(row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// referenceErr maps foreign key violations to a validation error naming the
// offending reference.
func referenceErr(err error, action string) error {
	if db.IsForeignKeyViolation(err) {
		return apperr.ValidationErr.WrapParent(err).WithMsg("referenced record does not exist")
	}
	return fmt.Errorf("%s: %w", action, err)
}

// numeric converts d for binary encoding, which COPY requires.
func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func nullNumeric(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}
	return numeric(*d)
}
