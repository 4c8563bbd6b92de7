package service

import "errors"

var (
	ErrStoreNil = errors.New("schedule store is nil")
)
