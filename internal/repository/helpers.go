package repository

import "strings"

// isForeignKeyViolation checks if the error is a foreign key constraint violation
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "23503") ||
		strings.Contains(errMsg, "foreign key")
}
