package fritzbox

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error reaching the router
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the router refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates the router hostname could not be resolved
	ErrTypeDNS
	// ErrTypeHTTP indicates a non-2xx HTTP status from the router
	ErrTypeHTTP
	// ErrTypeAuth indicates the credentials were rejected after the challenge round
	ErrTypeAuth
	// ErrTypeParse indicates a response body the client could not interpret
	ErrTypeParse
)

// NetworkErrorSubtype provides more specific network error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeParse:
		return "Parse Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is the fatal error type returned by router operations.
// Transport kinds and ErrTypeAuth abort the run; recoverable anomalies are
// reported as Diagnostic values instead.
type Error struct {
	Type           ErrorType           // Category of error
	Message        string              // Human-readable error message
	StatusCode     int                 // HTTP status code (if applicable)
	URL            string              // Router URL the operation targeted
	Err            error               // Underlying error (if any)
	NetworkSubtype NetworkErrorSubtype // More specific network error type
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.URL != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport failure and returns a more specific error
func ClassifyNetworkError(err error, target string) *Error {
	if err == nil {
		return nil
	}

	// url.Error repeats the full request URL, query included
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ClassifyNetworkError(urlErr.Err, target)
	}

	if os.IsTimeout(err) {
		return &Error{
			Type:           ErrTypeTimeout,
			Message:        "request timed out",
			URL:            target,
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{
			Type:           ErrTypeDNS,
			Message:        fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			URL:            target,
			Err:            err,
			NetworkSubtype: NetworkErrorDNS,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return &Error{
				Type:           ErrTypeConnectionRefused,
				Message:        "router refused connection",
				URL:            target,
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
			}
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return &Error{
				Type:           ErrTypeNetwork,
				Message:        "host unreachable",
				URL:            target,
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
			}
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return &Error{
				Type:           ErrTypeNetwork,
				Message:        "network unreachable",
				URL:            target,
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
			}
		}
	}

	return &Error{
		Type:           ErrTypeNetwork,
		Message:        "network error occurred",
		URL:            target,
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
	}
}

// NewNetworkError creates a transport error with automatic classification
func NewNetworkError(message, target string, err error) *Error {
	classified := ClassifyNetworkError(err, target)
	if classified == nil {
		return &Error{Type: ErrTypeNetwork, Message: message, URL: target}
	}
	classified.Message = message + ": " + classified.Message
	return classified
}

// NewHTTPError creates an HTTP-level transport error
func NewHTTPError(statusCode int, target string) *Error {
	return &Error{
		Type:       ErrTypeHTTP,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
		URL:        target,
	}
}

// NewAuthError creates the error returned when the router rejects the login
func NewAuthError(target string) *Error {
	return &Error{
		Type:    ErrTypeAuth,
		Message: "cannot login using the supplied credentials",
		URL:     target,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *Error {
	return &Error{
		Type:    ErrTypeParse,
		Message: message,
		Err:     err,
	}
}

func errorType(err error) (ErrorType, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Type, true
	}
	return 0, false
}

// IsTransportError reports whether err is a failure reaching the router,
// including timeouts, DNS and connection errors and non-2xx responses.
func IsTransportError(err error) bool {
	t, ok := errorType(err)
	if !ok {
		return false
	}
	switch t {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS, ErrTypeHTTP:
		return true
	}
	return false
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeAuth
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeParse
}

// TroubleshootingHint returns user-facing advice lines for an error
func TroubleshootingHint(err error) []string {
	var e *Error
	if !errors.As(err, &e) {
		return nil
	}

	switch e.Type {
	case ErrTypeTimeout:
		return []string{
			"The router did not respond in time",
			"Check that you are connected to the router's network",
			"Try increasing --timeout",
		}
	case ErrTypeConnectionRefused:
		return []string{
			"The router refused the connection",
			"Verify the --url scheme and port (default http://fritz.box)",
		}
	case ErrTypeDNS:
		return []string{
			"Could not resolve the router hostname",
			"Use the router IP address instead, e.g. --url http://192.168.178.1",
			"Run 'fritz-profiles discover' to find the router on the LAN",
		}
	case ErrTypeNetwork:
		switch e.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			return []string{
				"The router is not reachable on the network",
				"Verify the router address is correct",
			}
		case NetworkErrorNetworkUnreachable:
			return []string{
				"Your computer cannot reach the router's network",
				"Check your network adapter and WiFi connection",
			}
		default:
			return []string{
				"Check your network connection",
				"Verify the router is powered on",
			}
		}
	case ErrTypeHTTP:
		return []string{
			fmt.Sprintf("The router answered with HTTP %d", e.StatusCode),
			"The web interface may have changed with a firmware update",
		}
	case ErrTypeAuth:
		return []string{
			"Check --user and --password",
			"Routers without a named user accept an empty --user",
			"Too many failed logins make the router block logins for a while",
		}
	case ErrTypeParse:
		return []string{
			"The router returned a page this tool does not understand",
			"Parental controls must be available on this FRITZ!OS version",
		}
	}
	return nil
}

// ShortErrorMessage returns a concise, user-friendly error message
func ShortErrorMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Type {
	case ErrTypeTimeout:
		return "Router not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Router refused connection"
	case ErrTypeDNS:
		return "Cannot resolve router hostname"
	case ErrTypeNetwork:
		return "Failed to connect to router"
	case ErrTypeHTTP:
		return fmt.Sprintf("Router error (HTTP %d)", e.StatusCode)
	case ErrTypeAuth:
		return strings.TrimSpace(fmt.Sprintf("Cannot login to %s using the supplied credentials", e.URL))
	case ErrTypeParse:
		return "Failed to parse router response"
	default:
		return e.Message
	}
}
