package interpreter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameStack_Push(t *testing.T) {
	f1 := &frame{}
	f2 := &frame{}

	fs := newFrameStack()

	fs.push(f1)
	require.Equal(t, f1, fs.stack[0])
	require.Equal(t, 0, fs.sp)

	fs.push(f2)
	require.Equal(t, f1, fs.stack[0])
	require.Equal(t, f2, fs.stack[1])
	require.Equal(t, 1, fs.sp)
}

func TestFrameStack_Push_Grows(t *testing.T) {
	f := &frame{}

	fs := newFrameStack()

	for i := 0; i < initialFrameStackHeight; i++ {
		fs.push(f)
	}

	f2 := &frame{}
	fs.push(f2) // expected to grow

	require.Equal(t, f, fs.stack[initialFrameStackHeight-1])
	require.Equal(t, f2, fs.stack[initialFrameStackHeight])
	require.Equal(t, initialFrameStackHeight, fs.sp)
}

func TestFrameStack_Push_StackOverflow(t *testing.T) {
	defer func() { callStackCeiling = 8192 }()

	f := &frame{}
	fs := newFrameStack()

	callStackCeiling = initialFrameStackHeight + 2

	for i := 0; i < callStackCeiling; i++ {
		fs.push(f)
	}

	require.Panics(t, func() { fs.push(f) })
}

func TestFrameStack_PopAndEmpty(t *testing.T) {
	fs := newFrameStack()
	require.True(t, fs.empty())

	f1 := &frame{pc: 1}
	fs.push(f1)
	require.False(t, fs.empty())
	require.Equal(t, f1, fs.top())

	popped := fs.pop()
	require.Equal(t, f1, popped)
	require.True(t, fs.empty())
}
