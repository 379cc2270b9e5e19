package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVC-BookingService/internal/domain"
)

func TestGenerateReference(t *testing.T) {
	now := time.Date(2025, 10, 16, 9, 30, 45, 0, time.UTC)

	ref := generateReference(now)

	require.True(t, strings.HasPrefix(ref, domain.BookingReferencePrefix))
	assert.Equal(t, "20251016093045", ref[len(domain.BookingReferencePrefix):len(domain.BookingReferencePrefix)+14])
	assert.Len(t, ref, len(domain.BookingReferencePrefix)+14+8)
}

func TestGenerateReference_Unique(t *testing.T) {
	now := time.Date(2025, 10, 16, 9, 30, 45, 0, time.UTC)

	first := generateReference(now)
	second := generateReference(now)

	assert.NotEqual(t, first, second)
}
