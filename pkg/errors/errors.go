package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNavigation represents a page that failed to load within the retry budget
	ErrorTypeNavigation ErrorType = "navigation"
	// ErrorTypeNotStarted represents a page query without an active session
	ErrorTypeNotStarted ErrorType = "not_started"
	// ErrorTypeStrategy represents an extraction strategy failing as a whole
	ErrorTypeStrategy ErrorType = "strategy"
	// ErrorTypeParsing represents a fragment that could not be parsed
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeCooldown represents a provider blocked after a recent failure
	ErrorTypeCooldown ErrorType = "cooldown"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Sentinels for errors.Is checks. A CrawlerError matches a sentinel when
// their types are equal.
var (
	ErrNavigation    = &CrawlerError{Type: ErrorTypeNavigation}
	ErrNotStarted    = &CrawlerError{Type: ErrorTypeNotStarted}
	ErrStrategy      = &CrawlerError{Type: ErrorTypeStrategy}
	ErrParsing       = &CrawlerError{Type: ErrorTypeParsing}
	ErrCooldown      = &CrawlerError{Type: ErrorTypeCooldown}
	ErrCache         = &CrawlerError{Type: ErrorTypeCache}
	ErrPublisher     = &CrawlerError{Type: ErrorTypePublisher}
	ErrConfiguration = &CrawlerError{Type: ErrorTypeConfiguration}
)

// CrawlerError represents a scraper-specific error
type CrawlerError struct {
	Type     ErrorType
	Provider string
	Message  string
	Err      error
	Time     time.Time
}

// Error implements the error interface
func (e *CrawlerError) Error() string {
	prefix := fmt.Sprintf("[%s]", e.Type)
	if e.Provider != "" {
		prefix += " " + e.Provider + ":"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s - %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", prefix, e.Message)
}

// Unwrap returns the underlying error
func (e *CrawlerError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a CrawlerError of the same type.
func (e *CrawlerError) Is(target error) bool {
	t, ok := target.(*CrawlerError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// IsRetryable returns true if the error is retryable
func (e *CrawlerError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNavigation:
		return true
	case ErrorTypeNotStarted, ErrorTypeCooldown, ErrorTypeParsing:
		return false
	default:
		return false
	}
}

// New creates a new CrawlerError
func New(errType ErrorType, provider, message string, err error) *CrawlerError {
	return &CrawlerError{
		Type:     errType,
		Provider: provider,
		Message:  message,
		Err:      err,
		Time:     time.Now(),
	}
}

// NewNavigation creates a new navigation error
func NewNavigation(provider, message string, err error) *CrawlerError {
	return New(ErrorTypeNavigation, provider, message, err)
}

// NewNotStarted creates a new precondition error for queries without a page
func NewNotStarted(message string) *CrawlerError {
	return New(ErrorTypeNotStarted, "", message, nil)
}

// NewStrategy creates a new strategy fault
func NewStrategy(provider, message string, err error) *CrawlerError {
	return New(ErrorTypeStrategy, provider, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(provider, message string, err error) *CrawlerError {
	return New(ErrorTypeParsing, provider, message, err)
}

// NewCooldown creates a new cooldown error
func NewCooldown(provider string, duration time.Duration) *CrawlerError {
	message := fmt.Sprintf("blocked for %v after a recent navigation failure", duration)
	return New(ErrorTypeCooldown, provider, message, nil)
}

// NewCache creates a new cache error
func NewCache(provider, message string, err error) *CrawlerError {
	return New(ErrorTypeCache, provider, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(provider, message string, err error) *CrawlerError {
	return New(ErrorTypePublisher, provider, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *CrawlerError {
	return New(ErrorTypeConfiguration, "", message, err)
}
