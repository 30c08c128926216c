package storage

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrWalletExists = errors.New("wallet address already exists")
	ErrCodeExists   = errors.New("referral code already exists")
)
