package camera

import (
	"context"
	"image"
	"math/rand"
)

// FakeService is a stand-in classifier for installations without a real
// model. It answers with a pseudo-random verdict from a seeded source, so a
// fixed seed yields a reproducible sequence.
type FakeService struct {
	// rng produces the verdict sequence.
	rng *rand.Rand
	// fixed overrides the random verdict when set.
	fixed *bool
}

// FakeOption customizes a FakeService.
type FakeOption func(*FakeService)

// WithFixedVerdict pins every answer to the given verdict.
func WithFixedVerdict(verdict bool) FakeOption {
	return func(s *FakeService) {
		s.fixed = &verdict
	}
}

// NewFakeService creates a stand-in classifier seeded with the given value.
func NewFakeService(seed int64, opts ...FakeOption) *FakeService {
	s := &FakeService{
		//nolint:gosec // Not used for anything security-sensitive.
		rng: rand.New(rand.NewSource(seed)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ContainsCat returns the next verdict. The confidence threshold is accepted
// for interface compatibility; a coin flip has no confidence to compare.
func (s *FakeService) ContainsCat(_ context.Context, _ image.Image, _ float32) (bool, error) {
	if s.fixed != nil {
		return *s.fixed, nil
	}

	return s.rng.Intn(2) == 1, nil
}
