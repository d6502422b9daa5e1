package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain text", raw: "ótimo produto", want: "ótimo produto"},
		{name: "surrounding whitespace", raw: "  \tbom dia\n ", want: "bom dia"},
		{name: "empty", raw: "", wantErr: true},
		{name: "spaces only", raw: "     ", wantErr: true},
		{name: "mixed whitespace only", raw: "\n\t \r\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrEmptyInput))
				assert.True(t, IsValidationError(err))
				assert.Equal(t, EmptyInputMessage, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRequest_TopKOnlyForKindsThatUseIt(t *testing.T) {
	req, err := NewRequest(types.KindClassification, " texto ", 0)
	require.NoError(t, err)
	assert.Equal(t, "texto", req.Prompt)
	assert.Zero(t, req.TopK)

	req, err = NewRequest(types.KindSimilar, "texto", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, req.TopK)

	req, err = NewRequest(types.KindFull, "texto", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, req.TopK)
}

func TestNewRequest_RejectsNonPositiveTopK(t *testing.T) {
	for _, kind := range []types.AnalysisKind{types.KindSimilar, types.KindFull} {
		_, err := NewRequest(kind, "texto", 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidTopK), "kind %s", kind)
	}
}

func TestNewRequest_EmptyPromptWinsOverTopK(t *testing.T) {
	_, err := NewRequest(types.KindFull, "   ", -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}
