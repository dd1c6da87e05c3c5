package retry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rf-loans/internal/core/domain"
	"rf-loans/internal/pkg/retry"
)

func Test_Do_RetriesConflictsUntilSuccess(t *testing.T) {
	// arrange
	calls := 0
	fn := func(context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("assign: %w", domain.ErrConflict)
		}
		return nil
	}

	// act
	err := retry.Do(context.Background(), fn, retry.WithBaseDelay(time.Millisecond))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func Test_Do_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	fn := func(context.Context) error {
		calls++
		return domain.ErrConflict
	}

	err := retry.Do(context.Background(), fn, retry.WithBaseDelay(0), retry.WithMaxAttempts(4))

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 4, calls)
}

func Test_Do_FailsFastOnOtherErrors(t *testing.T) {
	calls := 0
	fn := func(context.Context) error {
		calls++
		return domain.ErrBusinessRule
	}

	err := retry.Do(context.Background(), fn)

	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Equal(t, 1, calls)
}

func Test_Do_StopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fn := func(context.Context) error {
		cancel()
		return domain.ErrConflict
	}

	err := retry.Do(ctx, fn, retry.WithBaseDelay(time.Second))

	assert.True(t, errors.Is(err, context.Canceled))
}

func Test_Do_RejectsInvalidOptions(t *testing.T) {
	noop := func(context.Context) error { return nil }

	assert.ErrorIs(t, retry.Do(context.Background(), noop, retry.WithMaxAttempts(0)), retry.ErrInvalidMaxAttempts)
	assert.ErrorIs(t, retry.Do(context.Background(), noop, retry.WithBaseDelay(-1)), retry.ErrNegativeBaseDelay)
}
