package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// translateConstraint maps Postgres constraint violations onto domain
// errors: the unique index on lower(email) becomes the email conflict, any
// foreign key violation becomes the invalid reference error.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return domerrors.ErrEmailTaken
	case pgerrcode.ForeignKeyViolation:
		return domerrors.ErrInvalidReference
	}
	return err
}
