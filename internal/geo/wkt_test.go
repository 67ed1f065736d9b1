package geo

import (
	"hub-routing-service/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPoint(t *testing.T) {
	assert.Equal(t, "POINT(4.05 9.7)", FormatPoint(pt(4.05, 9.7)))
}

func TestLineStringRoundTrip(t *testing.T) {
	coords := []domain.Coordinates{pt(0, 0), pt(0.5, 0.25), pt(1, 1)}
	text := FormatLineString(coords)
	assert.True(t, strings.HasPrefix(text, "LINESTRING("), text)

	got, err := ParseLineString(text)
	require.NoError(t, err)
	assert.Equal(t, coords, got)
}

func TestParsePoint(t *testing.T) {
	got, err := ParsePoint(" POINT(4.05 9.7) ")
	require.NoError(t, err)
	assert.Equal(t, pt(4.05, 9.7), got)
}

func TestParseRejectsMalformedText(t *testing.T) {
	for _, s := range []string{"", "POINT(", "POINT(a b)", "LINESTRING(1 2)"} {
		_, err := ParsePoint(s)
		assert.ErrorIs(t, err, domain.ErrInvalidGeometry, "ParsePoint(%q)", s)
	}

	for _, s := range []string{"", "LINESTRING(1 2)", "POINT(1 2)", "LINESTRING(1 2, x y)"} {
		_, err := ParseLineString(s)
		assert.ErrorIs(t, err, domain.ErrInvalidGeometry, "ParseLineString(%q)", s)
	}

	_, err := ParsePoint("POINT(200 10)")
	assert.ErrorIs(t, err, domain.ErrInvalidGeometry)
}
