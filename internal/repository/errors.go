package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	pkgerrors "uece-planner/pkg/errors"
)

// Backend messages that mean the store is out of room.
var quotaMessages = []string{
	"database or disk is full", // sqlite SQLITE_FULL
	"SQLSTATE 53100",           // postgres disk_full
	"SQLSTATE 53200",           // postgres out_of_memory
	"OOM command not allowed",  // redis maxmemory
}

// classify maps backend errors onto the pkg/errors sentinels, keeping the
// original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, m := range quotaMessages {
		if strings.Contains(msg, m) {
			return fmt.Errorf("%w: %v", pkgerrors.ErrQuotaExceeded, err)
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %w", pkgerrors.ErrStorageUnavailable, err)
	}
	return err
}
