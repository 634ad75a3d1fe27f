// Package repository holds the MySQL-backed stores.  Sentinel errors below
// let handlers map storage outcomes to HTTP responses without inspecting
// driver errors themselves.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound is returned when a row does not exist or is not owned by
	// the caller (for example deleting another user's journal entry).
	ErrNotFound = errors.New("not found")

	// ErrEmailExists is returned by UserRepo.Create when the UNIQUE index on
	// users.email rejects the insert.
	ErrEmailExists = errors.New("email already exists")

	// ErrFriendRequestExists is returned when the same requester asks the
	// same user twice.
	ErrFriendRequestExists = errors.New("friend request already sent")
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlForeignKeyChild = 1452
)

func isMySQLError(err error, number uint16) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == number
}

func isDuplicateKey(err error) bool { return isMySQLError(err, mysqlDuplicateEntry) }

func isMissingParent(err error) bool { return isMySQLError(err, mysqlForeignKeyChild) }
