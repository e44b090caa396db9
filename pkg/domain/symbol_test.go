package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"L", Left, false},
		{"r", Right, false},
		{" Left ", Left, false},
		{"RIGHT", Right, false},
		{"N", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, got.Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirection_ZeroValueIsInvalid(t *testing.T) {
	var d Direction
	assert.False(t, d.Valid())
	assert.Equal(t, "Direction(0)", d.String())

	_, err := d.MarshalText()
	assert.Error(t, err)
}

func TestDirection_JSON(t *testing.T) {
	data, err := json.Marshal(Transition{Move: Left, Write: 1, Target: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"move":"L","write":1,"target":2}`, string(data))

	var rule TransitionRule
	require.NoError(t, json.Unmarshal([]byte(`{"from":0,"on":1,"write":1,"move":"right","to":1}`), &rule))
	assert.Equal(t, Right, rule.Move)
	assert.Equal(t, Transition{Move: Right, Write: 1, Target: 1}, rule.Transition())

	err = json.Unmarshal([]byte(`{"move":"up"}`), &rule)
	assert.Error(t, err)
}

func TestRunStatus_Terminal(t *testing.T) {
	assert.False(t, StatusRunning.Terminal())
	assert.True(t, StatusHalted.Terminal())
	assert.True(t, StatusFailed.Terminal())
}

func TestUndefinedTransitionError(t *testing.T) {
	err := &UndefinedTransitionError{State: 3, Symbol: 1}
	assert.Equal(t, "no transition defined for state 3 on symbol 1", err.Error())
}
