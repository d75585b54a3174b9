package host

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func pair(i byte) MACPair {
	return MACPair{
		Destination: [6]byte{0, 0, 0, 0, 0, i},
		Source:      [6]byte{0, 0, 0, 0, 1, i},
	}
}

func TestMACLog(t *testing.T) {
	l := NewMACLog(3)
	require.Empty(t, l.Snapshot())
	require.Zero(t, l.Len())

	l.Add(pair(1))
	l.Add(pair(2))
	require.Equal(t, []MACPair{pair(1), pair(2)}, l.Snapshot())

	// Exceeding the capacity overwrites the oldest entries
	for i := byte(3); i <= 7; i++ {
		l.Add(pair(i))
	}
	require.Equal(t, []MACPair{pair(5), pair(6), pair(7)}, l.Snapshot())
	require.Equal(t, 3, l.Len())
	require.Equal(t, uint64(7), l.Total())

	// Snapshots are copies
	snapshot := l.Snapshot()
	snapshot[0] = pair(42)
	require.Equal(t, pair(5), l.Snapshot()[0])
}

func TestMACLogDefaultSize(t *testing.T) {
	require.Equal(t, DefaultMACLogSize, cap(NewMACLog(0).entries))
	require.Equal(t, DefaultMACLogSize, cap(NewMACLog(-1).entries))
}

func TestMACPairString(t *testing.T) {
	require.Equal(t, "00:00:00:00:01:0a -> 00:00:00:00:00:0a", pair(10).String())
}

func TestDisposition(t *testing.T) {
	for _, d := range []Disposition{DispositionPass, DispositionDrop, DispositionAborted} {
		parsed, err := ParseDisposition(d.String())
		require.Nil(t, err)
		require.Equal(t, d, parsed)
	}

	parsed, err := ParseDisposition("DROP")
	require.Nil(t, err)
	require.Equal(t, DispositionDrop, parsed)

	_, err = ParseDisposition("redirect")
	require.EqualError(t, err, `unknown disposition: "redirect"`)
	require.Equal(t, "unknown", Disposition(42).String())
}
