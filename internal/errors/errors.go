// Package errors provides the error taxonomy for apache2-vhost.
//
// Every failure the tool can report is a *VHostError carrying an ErrorCode.
// The code decides the process exit status (see ExitCode), while the message,
// path and wrapped error make up the single diagnostic line printed on stderr.
//
// # Error Codes
//
//	USAGE                bad command line input              exit 64
//	NAME_TOO_LONG        <host><suffix> exceeds NAME_MAX     exit 70
//	PATH_TOO_LONG        composed path exceeds PATH_MAX      exit 70
//	CREATE_FAILED        config file could not be written    exit 70
//	LINK_FAILED          symlink could not be created        exit 70
//	DELETE_FAILED        file or symlink could not be removed exit 70
//	ACCESS_DENIED        directory could not be listed       exit 70
//	HOSTS                hosts file could not be edited      exit 70
//	CONFIG               configuration could not be loaded   exit 70
//	LOCATOR_UNAVAILABLE  apache2 -V could not be queried     exit 72
//
// # Usage
//
//	return errors.CreateFailed(path, err)
//
//	if errors.Is(err, errors.ErrLinkFailed) {
//	    // roll back
//	}
//
//	os.Exit(errors.ExitCode(err))
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeUsage       ErrorCode = "USAGE"
	ErrCodeNameTooLong ErrorCode = "NAME_TOO_LONG"
	ErrCodePathTooLong ErrorCode = "PATH_TOO_LONG"
	ErrCodeCreate      ErrorCode = "CREATE_FAILED"
	ErrCodeLink        ErrorCode = "LINK_FAILED"
	ErrCodeDelete      ErrorCode = "DELETE_FAILED"
	ErrCodeAccess      ErrorCode = "ACCESS_DENIED"
	ErrCodeLocator     ErrorCode = "LOCATOR_UNAVAILABLE"
	ErrCodeHosts       ErrorCode = "HOSTS"
	ErrCodeConfig      ErrorCode = "CONFIG"
	ErrCodeInternal    ErrorCode = "INTERNAL"
)

// Exit statuses, as defined by sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64 // EX_USAGE
	ExitSoftware = 70 // EX_SOFTWARE
	ExitOSFile   = 72 // EX_OSFILE
)

// VHostError represents a structured error with context about the operation.
type VHostError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Host name (if applicable)
	Path    string    // Offending filesystem path (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *VHostError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s `%s'", msg, e.Path)
	} else if e.Domain != "" {
		if msg == "" {
			msg = fmt.Sprintf("vhost %s", e.Domain)
		} else {
			msg = fmt.Sprintf("vhost %s: %s", e.Domain, msg)
		}
	}
	if e.Err != nil {
		if msg == "" {
			return reason(e.Err)
		}
		return fmt.Sprintf("%s: %s", msg, reason(e.Err))
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *VHostError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *VHostError) Is(target error) bool {
	t, ok := target.(*VHostError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// reason strips the path decoration os adds so the path is not printed twice.
func reason(err error) string {
	switch e := err.(type) {
	case *fs.PathError:
		return e.Err.Error()
	case *os.LinkError:
		return e.Err.Error()
	default:
		return err.Error()
	}
}

// Sentinel errors for use with errors.Is.
var (
	ErrUsage              = &VHostError{Code: ErrCodeUsage, Message: "usage error"}
	ErrNameTooLong        = &VHostError{Code: ErrCodeNameTooLong, Message: "file name too long"}
	ErrPathTooLong        = &VHostError{Code: ErrCodePathTooLong, Message: "file path too long"}
	ErrCreateFailed       = &VHostError{Code: ErrCodeCreate, Message: "cannot create regular file"}
	ErrLinkFailed         = &VHostError{Code: ErrCodeLink, Message: "cannot create symbolic link"}
	ErrDeleteFailed       = &VHostError{Code: ErrCodeDelete, Message: "failed to remove"}
	ErrAccessDenied       = &VHostError{Code: ErrCodeAccess, Message: "failed to access"}
	ErrLocatorUnavailable = &VHostError{Code: ErrCodeLocator, Message: "unable to locate apache2"}
	ErrHosts              = &VHostError{Code: ErrCodeHosts, Message: "hosts file error"}
	ErrConfigInvalid      = &VHostError{Code: ErrCodeConfig, Message: "invalid configuration"}
)

// Usage creates a usage error with a custom message.
func Usage(msg string) error {
	return &VHostError{Code: ErrCodeUsage, Message: msg}
}

// Usagef creates a usage error with a formatted message.
func Usagef(format string, args ...interface{}) error {
	return Usage(fmt.Sprintf(format, args...))
}

// NameTooLong reports a composed file name over the platform limit.
func NameTooLong(name string, limit int) error {
	return &VHostError{
		Code:    ErrCodeNameTooLong,
		Message: "file name",
		Path:    name,
		Err:     fmt.Errorf("too long (%d > %d bytes)", len(name), limit),
	}
}

// PathTooLong reports a composed path over the platform limit.
func PathTooLong(path string, limit int) error {
	return &VHostError{
		Code:    ErrCodePathTooLong,
		Message: "file path",
		Path:    path,
		Err:     fmt.Errorf("too long (%d >= %d bytes)", len(path), limit),
	}
}

// CreateFailed reports a config file that could not be created or written.
func CreateFailed(path string, err error) error {
	return &VHostError{Code: ErrCodeCreate, Message: "cannot create regular file", Path: path, Err: err}
}

// LinkFailed reports a symlink that could not be created.
func LinkFailed(path string, err error) error {
	return &VHostError{Code: ErrCodeLink, Message: "failed to create symbolic link", Path: path, Err: err}
}

// DeleteFailed reports a file or symlink that could not be removed.
// what names the artifact ("regular file", "symbolic link").
func DeleteFailed(what, path string, err error) error {
	return &VHostError{Code: ErrCodeDelete, Message: "failed to remove " + what, Path: path, Err: err}
}

// AccessDenied reports a directory that could not be opened for listing.
func AccessDenied(path string, err error) error {
	return &VHostError{Code: ErrCodeAccess, Message: "failed to access", Path: path, Err: err}
}

// LocatorUnavailable reports that the web server could not be queried for its root.
func LocatorUnavailable(err error) error {
	return &VHostError{Code: ErrCodeLocator, Message: "unable to locate apache2", Err: err}
}

// Hosts reports a failure editing the host-mapping file.
func Hosts(path string, err error) error {
	return &VHostError{Code: ErrCodeHosts, Message: "cannot update hosts file", Path: path, Err: err}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &VHostError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapDomain creates an error with host context and underlying error.
func WrapDomain(code ErrorCode, domain string, err error) error {
	return &VHostError{
		Code:   code,
		Domain: domain,
		Err:    err,
	}
}

// ExitCode maps an error to the process exit status.
// Errors that are not a *VHostError come from argument parsing and are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var vErr *VHostError
	if !errors.As(err, &vErr) {
		return ExitUsage
	}
	switch vErr.Code {
	case ErrCodeUsage:
		return ExitUsage
	case ErrCodeLocator:
		return ExitOSFile
	default:
		return ExitSoftware
	}
}

// IsUsage reports whether err should be followed by the usage line.
func IsUsage(err error) bool {
	return ExitCode(err) == ExitUsage
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
