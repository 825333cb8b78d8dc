package notify

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yashika222/ReliefNet/internal/models"
)

type countingNotifier struct {
	LogNotifier
	delivered atomic.Int64
	fail      bool
}

func (n *countingNotifier) SendCustom(to, subject, body string) error {
	n.delivered.Add(1)
	if n.fail {
		return errors.New("smtp unavailable")
	}
	return nil
}

func TestQueue_DeliversAsynchronously(t *testing.T) {
	inner := &countingNotifier{}
	q := NewQueue(inner, 8)

	for i := 0; i < 5; i++ {
		require.NoError(t, q.SendCustom("v@example.com", "subject", "body"))
	}
	q.Close()

	require.EqualValues(t, 5, inner.delivered.Load())
}

func TestQueue_DeliveryFailureDoesNotReachCaller(t *testing.T) {
	inner := &countingNotifier{fail: true}
	q := NewQueue(inner, 8)

	require.NoError(t, q.SendCustom("v@example.com", "subject", "body"))
	require.NoError(t, q.NotifyApproval(&models.User{Email: "v@example.com"}))
	q.Close()

	require.EqualValues(t, 1, inner.delivered.Load())
}
