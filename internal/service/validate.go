package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/NabsK/hr-admin-system/internal/apperror"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func normalizeRequiredString(value string, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperror.New(apperror.CodeValidation, field+" is required")
	}
	return trimmed, nil
}

func normalizeEmail(value string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	if !emailPattern.MatchString(email) {
		return "", apperror.New(apperror.CodeValidation, "invalid email address")
	}
	return email, nil
}

const mysqlDuplicateEntry = 1062

// mapDatabaseError turns driver-level failures into application codes. The
// unique-email race between check and insert lands here.
func mapDatabaseError(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return apperror.New(apperror.CodeConflict, "record violates a unique constraint")
	}
	return err
}
