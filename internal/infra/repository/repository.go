package repository

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration

	"venuebook/internal/pkg/errs"
)

var dialect = goqu.Dialect("postgres")

func wrapDBErr(msg string, err error) error {
	return errs.WrapKind(err, errs.KindStorageFault, msg)
}

func notFoundErr(msg string) error {
	return errs.NewKind(errs.KindNotFound, msg)
}

func conflictErr(msg string) error {
	return errs.NewKind(errs.KindConflict, msg)
}
