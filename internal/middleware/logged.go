package middleware

import (
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/listsite/internal/logger"
)

var ErrLogged = errors.New("already logged")

// Logged reports err through log and marks it so the entry point does not
// print it a second time. errors.Is still matches the original error.
func Logged(log *logger.Logger, err error) error {
	if err == nil || errors.Is(err, ErrLogged) {
		return err
	}
	log.LogError("%v", err)
	return fmt.Errorf("%w: %w", ErrLogged, err)
}
