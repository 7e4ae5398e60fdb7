// Package service implements the application workflows on top of the ledger
// engine and a storage.Store: authentication, group administration, expense
// recording, balance queries, and settlement recording. Services resolve
// emails to user ids and enforce membership; the ledger package does the
// arithmetic.
package service

import "errors"

// Code identifies an authorization or lookup failure at the service layer.
// Engine failures carry ledger.Code instead; together the two enumerations
// cover every non-5xx error the API returns.
type Code string

const (
	CodeNotGroupMember    Code = "NOT_GROUP_MEMBER"
	CodeNotGroupAdmin     Code = "NOT_GROUP_ADMIN"
	CodeUserNotFound      Code = "USER_NOT_FOUND"
	CodeGroupNotFound     Code = "GROUP_NOT_FOUND"
	CodeUserAlreadyMember Code = "USER_ALREADY_MEMBER"
	CodeUserNotMember     Code = "USER_NOT_GROUP_MEMBER"
	CodeLastAdminRemove   Code = "CANNOT_REMOVE_LAST_ADMIN"
	CodeLastAdminLeave    Code = "CANNOT_LEAVE_LAST_ADMIN"
	CodePayerNotFound     Code = "PAYER_NOT_FOUND"
	CodePayerNotMember    Code = "PAYER_NOT_GROUP_MEMBER"
	CodeInvalidSplitUser  Code = "INVALID_SPLIT_USER"
)

// Error is a typed service failure. Detail names the offending email or id
// where known; it is for logs, not for clients.
type Error struct {
	Code   Code
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return string(e.Code) + ": " + e.Detail
	}
	return string(e.Code)
}

// CodeOf extracts the service code from err, or "" if err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
