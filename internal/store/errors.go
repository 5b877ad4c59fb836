package store

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Error taxonomy shared by every service. Repositories return raw adapter
// errors; services run them through Classify and decide what propagates.
var (
	ErrAuthRequired     = errors.New("authentication required")
	ErrUnauthorized     = errors.New("not authorized")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrAccessDenied     = errors.New("access denied")
	ErrTransport        = errors.New("transport failure")
)

const mysqlDuplicateEntry = 1062

// Classify maps adapter errors onto the taxonomy. Errors that fit no
// category are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return err
}

func IsNotFound(err error) bool { return errors.Is(Classify(err), ErrNotFound) }

func IsConflict(err error) bool { return errors.Is(Classify(err), ErrConflict) }
