package model

import "golang.org/x/xerrors"

var (
	ErrShapeMismatch    = xerrors.New("tensor shape mismatch")
	ErrInvalidVariant   = xerrors.New("invalid model variant")
	ErrInvalidRefiner   = xerrors.New("invalid model refiner")
	ErrInvalidSignature = xerrors.New("invalid graph signature")
	ErrInvalidSchedule  = xerrors.New("invalid downsampling schedule")
)
