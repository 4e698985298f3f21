package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/google/uuid"
)

const csvDateLayout = "2006-01-02"

// parseDate accepts a bare calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: all fields are required", common.ErrorValidation)
	}
	if t, err := time.Parse(csvDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", common.ErrorValidation, s)
	}
	return t, nil
}

// csvText keeps a user-supplied cell from being read as a spreadsheet
// formula by prefixing it with a quote.
func csvText(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

func validateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", common.ErrorValidation)
	}
	return nil
}

// checkID rejects ids that cannot exist so they never reach the uuid column.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	return nil
}
