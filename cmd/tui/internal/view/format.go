package view

import (
	"context"
	"fmt"
	"time"
)

const svcTimeout = 5 * time.Second

// FormatAmount renders a monetary amount with two decimals.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// SvcCtx returns a context with a standard timeout for service calls.
func SvcCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), svcTimeout)
}
