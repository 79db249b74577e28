package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{in: "RETRY", want: Retry},
		{in: "THROW", want: Throw},
		{in: "retry", want: Retry},
		{in: "  Throw \t", want: Throw},
		{in: "IGNORE", wantErr: true},
		{in: "", wantErr: true},
		{in: "RETRYY", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "IGNORE", Ignore.String())
	assert.Equal(t, "RETRY", Retry.String())
	assert.Equal(t, "THROW", Throw.String())
}
