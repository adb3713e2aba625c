package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCrawlerErrorIs(t *testing.T) {
	cause := fmt.Errorf("net::ERR_CONNECTION_RESET")
	err := NewNavigation("GG_POKER", "navigate https://www.ggpoker.com/tournaments", cause)

	wrapped := fmt.Errorf("run: %w", err)
	assert.True(t, stderrors.Is(wrapped, ErrNavigation))
	assert.False(t, stderrors.Is(wrapped, ErrNotStarted))
	assert.True(t, stderrors.Is(wrapped, cause))

	var ce *CrawlerError
	assert.True(t, stderrors.As(wrapped, &ce))
	assert.Equal(t, "GG_POKER", ce.Provider)
}

func TestCrawlerErrorMessage(t *testing.T) {
	err := NewNotStarted("query before navigation")
	assert.Equal(t, "[not_started] query before navigation", err.Error())

	err = NewNavigation("CLUB_GG", "load failed", fmt.Errorf("timeout"))
	assert.Equal(t, "[navigation] CLUB_GG: load failed - timeout", err.Error())
}

func TestParsingError(t *testing.T) {
	err := NewParsing("CLUB_GG", "undecodable payload after __PRELOADED_STATE__", fmt.Errorf("unexpected token"))
	assert.True(t, stderrors.Is(err, ErrParsing))
	assert.False(t, err.IsRetryable())
	assert.Equal(t, "[parsing] CLUB_GG: undecodable payload after __PRELOADED_STATE__ - unexpected token", err.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, NewNavigation("X", "m", nil).IsRetryable())
	assert.False(t, NewNotStarted("m").IsRetryable())
	assert.False(t, NewCooldown("X", time.Minute).IsRetryable())
	assert.False(t, NewPublisher("X", "m", nil).IsRetryable())
}
