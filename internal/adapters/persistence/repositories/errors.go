package repositories

import (
	"errors"
	"strings"

	"hrm-location/internal/core/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	mysqlDuplicateEntry    = 1062
	postgresUniqueViolated = "23505"
)

// translateDuplicate maps unique-constraint violations to domain.ErrDuplicateEntry
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateKey(err) {
		return domain.ErrDuplicateEntry
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.Code == postgresUniqueViolated
	}

	// sqlite reports constraint failures only in the message
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
