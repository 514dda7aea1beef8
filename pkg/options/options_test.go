package options

import (
	"errors"
	"testing"

	selferrors "github.com/nilslef/selfrt/pkg/errors"
)

func TestWithYoungGenerationSizeRejectsOutOfRange(t *testing.T) {
	o := NewDefaultOptions()
	err := WithYoungGenerationSize(MaxGenerationSize)(&o)
	if err == nil {
		t.Fatalf("WithYoungGenerationSize(MaxGenerationSize) succeeded, want error")
	}
	var ve *selferrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %T, want *errors.ValidationError", err)
	}
	if ve.Field() != "youngGenerationSize" {
		t.Fatalf("Field() = %q, want youngGenerationSize", ve.Field())
	}
}

func TestWithYoungGenerationSizeAcceptsInRange(t *testing.T) {
	o := NewDefaultOptions()
	const size = 32 * 1024 * 1024
	if err := WithYoungGenerationSize(size)(&o); err != nil {
		t.Fatalf("WithYoungGenerationSize(%d) error: %v", size, err)
	}
	if o.YoungGeneration.Size != size {
		t.Fatalf("YoungGeneration.Size = %d, want %d", o.YoungGeneration.Size, size)
	}
}

func TestWithPromotionAgeRejectsZero(t *testing.T) {
	o := NewDefaultOptions()
	if err := WithPromotionAge(0)(&o); err == nil {
		t.Fatalf("WithPromotionAge(0) succeeded, want error")
	}
}

func TestWithMailboxCapacityRejectsNonPositive(t *testing.T) {
	o := NewDefaultOptions()
	if err := WithMailboxCapacity(0)(&o); err == nil {
		t.Fatalf("WithMailboxCapacity(0) succeeded, want error")
	}
}

func TestWithDefaultOptionsNeverErrors(t *testing.T) {
	o := Options{}
	if err := WithDefaultOptions()(&o); err != nil {
		t.Fatalf("WithDefaultOptions() error: %v", err)
	}
}
