package qrcode

import "errors"

var (
	ErrQRCodeNotFound = errors.New("qr code not found")
	ErrQRCodeExpired  = errors.New("qr code has expired or been deactivated")
)
