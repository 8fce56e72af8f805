package camera

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFakeService_DeterministicUnderSeed verifies equal seeds produce equal verdict sequences.
func TestFakeService_DeterministicUnderSeed(t *testing.T) {
	t.Parallel()

	frame := image.NewRGBA(image.Rect(0, 0, 1, 1))
	first := NewFakeService(42)
	second := NewFakeService(42)

	for i := 0; i < 32; i++ {
		a, err := first.ContainsCat(context.Background(), frame, 0.5)
		require.NoError(t, err)

		b, err := second.ContainsCat(context.Background(), frame, 0.5)
		require.NoError(t, err)

		require.Equal(t, a, b)
	}
}

// TestFakeService_FixedVerdict verifies the pinned verdict overrides the sequence.
func TestFakeService_FixedVerdict(t *testing.T) {
	t.Parallel()

	frame := image.NewRGBA(image.Rect(0, 0, 1, 1))

	for _, verdict := range []bool{true, false} {
		s := NewFakeService(1, WithFixedVerdict(verdict))

		for i := 0; i < 8; i++ {
			got, err := s.ContainsCat(context.Background(), frame, 0.5)
			require.NoError(t, err)
			require.Equal(t, verdict, got)
		}
	}
}
