package apperrors

import "errors"

var (
	ErrQRNotFound          = errors.New("qr code not found")
	ErrQRAlreadyScanned    = errors.New("qr code already scanned")
	ErrQRExpired           = errors.New("qr code expired")
	ErrMalformedCode       = errors.New("malformed qr code")
	ErrOrderNotFound       = errors.New("order not found")
	ErrScanInProgress      = errors.New("scan validation in progress")
	ErrCameraBusy          = errors.New("camera session already running")
	ErrNoVideoDevice       = errors.New("no video input device available")
	ErrUnreadableImage     = errors.New("unable to scan image")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
