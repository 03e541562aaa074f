package repository

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrEditConflict      = errors.New("edit conflict")
	ErrDuplicateRecord   = errors.New("duplicate record")
	ErrUnknownReference  = errors.New("unknown reference")
	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrOverReturn        = errors.New("return exceeds borrowed quantity")
)
