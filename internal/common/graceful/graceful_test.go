package graceful

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopProcess(t *testing.T) {
	var order []int
	stopper := func(i int, err error) ProcessStopper {
		return func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			order = append(order, i)
			return err
		}
	}

	ps := []ProcessStopper{stopper(1, nil), nil, stopper(2, errors.New("boom")), stopper(3, nil)}
	StopProcess(time.Second, ps...)

	assert.Equal(t, []int{3, 2, 1}, order)
	assert.Nil(t, ps[1], "caller slice untouched")
}
