package errors

import (
	"context"

	"github.com/m-mizutani/ctxlog"
)

// Handle logs an error with the logger bound to the context. It is the
// terminal sink for errors that cannot be returned to a caller.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	ctxlog.From(ctx).Error("error occurred", "error", err)
}
