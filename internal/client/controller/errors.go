package controller

import (
	"errors"

	"github.com/dmitrijs2005/prepaidmate/internal/common"
)

var (
	ErrValidation    = common.ErrValidation
	ErrNotLoggedIn   = common.ErrNotLoggedIn
	ErrStaleResponse = errors.New("stale response discarded")
	ErrNoProduct     = errors.New("transaction has no product")
)
