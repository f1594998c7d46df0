// +build linux

package mem_test

import (
	"testing"

	"github.com/funny-falcon/memcalls/mem"
	"github.com/stretchr/testify/require"
)

func TestSbrk(t *testing.T) {
	start, err := mem.Sbrk(0)
	require.NoError(t, err)
	require.NotZero(t, start)

	old, err := mem.Sbrk(100)
	require.NoError(t, err)
	require.Equal(t, start, old)

	end, err := mem.Sbrk(0)
	require.NoError(t, err)
	require.Equal(t, start+100, end)

	b := mem.RawBytes(start, 100)
	n := copy(b, "Memory via sbrk")
	require.Equal(t, "Memory via sbrk", string(b[:n]))

	_, err = mem.Sbrk(-100)
	require.NoError(t, err)

	cur, err := mem.Sbrk(0)
	require.NoError(t, err)
	require.Equal(t, start, cur)
}

func TestBrkQuery(t *testing.T) {
	brk, err := mem.Brk(0)
	require.NoError(t, err)
	require.NotZero(t, brk)

	// querying must not move the break
	again, err := mem.Brk(0)
	require.NoError(t, err)
	require.Equal(t, brk, again)
}
