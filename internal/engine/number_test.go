package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberJSON(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2.5, `2.5`},
		{0, `0`},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
	}

	for _, tc := range cases {
		data, err := json.Marshal(&NumDeclaredEvent{Name: "n", Value: Number(tc.in)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"n","value":`+tc.want+`}`, string(data))

		var back NumDeclaredEvent
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, tc.in, float64(back.Value))
	}
}

func TestNumberJSONNaN(t *testing.T) {
	data, err := json.Marshal(Number(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, `"NaN"`, string(data))

	var n Number
	require.NoError(t, json.Unmarshal(data, &n))
	assert.True(t, math.IsNaN(float64(n)))

	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &n))
}
