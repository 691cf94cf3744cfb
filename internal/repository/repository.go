// Package repository defines the stores the engine reads from and writes to,
// with MySQL implementations built on sqlx.
package repository

import (
	"fmt"

	"github.com/at-ishikawa/adaptlearn/internal/model"
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, model.ErrNotFound)
}
