package entity

import "errors"

var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInvalidAddress    = errors.New("invalid wallet address")
	ErrUnknownBlockchain = errors.New("unknown blockchain")
	ErrUnknownCurrency   = errors.New("unknown currency")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidSwapSide   = errors.New("invalid swap side")
	ErrSameCurrency      = errors.New("cannot swap a currency into itself")
	ErrNoPrices          = errors.New("no token prices available")
)
