package services

import "errors"

// Export errors
var (
	ErrExportFailed = errors.New("export failed")
)
