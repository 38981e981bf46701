package factory_test

import (
	"testing"

	"fjacquet/card-recon/internal/factory"
	"fjacquet/card-recon/internal/issuer"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	r := factory.NewDefaultRegistry(logging.NewMockLogger())

	tests := []struct {
		path string
		tag  string
	}{
		{"CC statements/ICICI Amazon/Aug.pdf", "icici-amazon"},
		{"CC statements/Axis/Indian Oil/Dec-25.pdf", "axis-indian-oil"},
		{"CC statements/Axis Select/Dec-25.pdf", "axis-select"},
		{"CC statements/axis_rewards_nov-25.pdf", "axis-rewards"},
		{"CC statements/Axis/Dec-25.pdf", "axis"},
		{"CC statements/IDFC/Nov-25.pdf", "idfc"},
		{"CC statements/Uni Gold/UPI/Jan-26.pdf", "uni-gold-upi"},
		{"CC statements/Uni_Gold_Card/Nov-25.pdf", "uni-gold"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			e, err := r.Resolve(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.tag, e.Tag())
		})
	}
}

func TestRegistry_NoRoute(t *testing.T) {
	r := factory.NewDefaultRegistry(logging.NewMockLogger())

	for _, path := range []string{"statements/hdfc/jan.pdf", "statements/icici/coral.pdf", "statements/unified/x.pdf"} {
		t.Run(path, func(t *testing.T) {
			_, err := r.Resolve(path)
			assert.ErrorIs(t, err, parsererror.ErrNoRoute)
		})
	}
}

func TestRegistry_PriorityIsExplicit(t *testing.T) {
	r := factory.NewDefaultRegistry(logging.NewMockLogger())
	assert.Equal(t, []string{
		"icici-amazon", "axis-indian-oil", "axis-select", "axis-rewards", "axis", "idfc", "uni-gold-upi", "uni-gold",
	}, r.Tags())
}

func TestRegistry_GetExtractor(t *testing.T) {
	r := factory.NewDefaultRegistry(logging.NewMockLogger())

	e, err := r.GetExtractor("idfc")
	require.NoError(t, err)
	assert.Equal(t, "IDFC FIRST CC", e.Dialect().Account)

	_, err = r.GetExtractor("unknown")
	assert.Error(t, err)
}

func TestNewRegistry_Errors(t *testing.T) {
	logger := logging.NewMockLogger()
	d := issuer.Builtin()[0]

	_, err := factory.NewRegistry([]issuer.Dialect{d, d}, logger)
	assert.Error(t, err)

	_, err = factory.NewRegistry([]issuer.Dialect{{Tag: "broken"}}, logger)
	assert.Error(t, err)
}
