package snowflake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIDsAreTimeOrdered(t *testing.T) {
	require := require.New(t)

	earlier := FromTime(time.Now().Add(-time.Minute))
	later := Now()
	require.Less(earlier, later)
}

func TestIDRoundTripsItsTimestamp(t *testing.T) {
	require := require.New(t)

	ts := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	id := FromTime(ts)
	require.Equal(ts.UnixMilli(), id.ToTime().UnixMilli())
}
