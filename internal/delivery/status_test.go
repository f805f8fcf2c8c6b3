package delivery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransitionMatrix(t *testing.T) {
	all := []Status{StatusAssigned, StatusPicked, StatusOutForDelivery, StatusDelivered, StatusCancelled}

	allowed := map[Status]map[Status]bool{
		StatusAssigned:       {StatusPicked: true, StatusCancelled: true},
		StatusPicked:         {StatusOutForDelivery: true, StatusCancelled: true},
		StatusOutForDelivery: {StatusDelivered: true, StatusCancelled: true},
		StatusDelivered:      {},
		StatusCancelled:      {},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			require.Equalf(t, want, CanTransition(from, to), "%s -> %s", from, to)

			err := ValidateTransition(from, to)
			if want {
				require.NoErrorf(t, err, "%s -> %s", from, to)
			} else {
				require.Errorf(t, err, "%s -> %s", from, to)
			}
		}
	}
}

func TestNoOpTransitionRejected(t *testing.T) {
	require.False(t, CanTransition(StatusPicked, StatusPicked))

	err := ValidateTransition(StatusPicked, StatusPicked)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already")
}

func TestTerminalStates(t *testing.T) {
	require.True(t, StatusDelivered.Terminal())
	require.True(t, StatusCancelled.Terminal())
	require.False(t, StatusAssigned.Terminal())
	require.False(t, StatusPicked.Terminal())
	require.False(t, StatusOutForDelivery.Terminal())
}

func TestUnknownStatusRejected(t *testing.T) {
	require.False(t, Status("SHIPPED").Valid())

	err := ValidateTransition(Status("SHIPPED"), StatusDelivered)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown")

	err = ValidateTransition(StatusAssigned, Status("SHIPPED"))
	require.Error(t, err)
}
