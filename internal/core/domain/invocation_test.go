package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.spelunk.dev/ndkbridge/internal/core/domain"
)

func TestInvocation_Failed(t *testing.T) {
	inv := &domain.Invocation{
		Variant: domain.VariantRelease,
		Results: []domain.CompilationResult{
			{Target: domain.CompilerTarget{ABI: domain.ABIX86}},
			{Target: domain.CompilerTarget{ABI: domain.ABIArmV7}, Err: errors.New("linker error")},
			{Target: domain.CompilerTarget{ABI: domain.ABIArm64}},
		},
	}

	assert.True(t, inv.Failed())
	assert.Equal(t, []domain.ABI{domain.ABIArmV7}, inv.FailedABIs())
}

func TestInvocation_AllSucceeded(t *testing.T) {
	inv := &domain.Invocation{
		Variant: domain.VariantDebug,
		Results: []domain.CompilationResult{
			{Target: domain.CompilerTarget{ABI: domain.ABIX86}},
			{Target: domain.CompilerTarget{ABI: domain.ABIArm64}},
		},
	}

	assert.False(t, inv.Failed())
	assert.Empty(t, inv.FailedABIs())
}

func TestLibrary_FileName(t *testing.T) {
	lib := domain.NewLibrary("doukutsu")
	assert.Equal(t, "libdoukutsu.so", lib.FileName())
}
