package jsonutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSortsMapKeys(t *testing.T) {
	in := map[string]int{"zeta": 1, "alpha": 2, "mid": 3}

	for i := 0; i < 10; i++ {
		data, err := Marshal(in)
		require.NoError(t, err)
		assert.Equal(t, `{"alpha":2,"mid":3,"zeta":1}`, string(data))
	}
}

func TestMarshalIndent(t *testing.T) {
	data, err := MarshalIndent(map[string]string{"key": "value"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"key\": \"value\"\n}", string(data))
}

func TestNilSliceEncodesAsEmptyArray(t *testing.T) {
	var v struct {
		Items []string `json:"items"`
	}
	data, err := Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(data))
}

func TestWriteAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []int{1, 2}))
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("]\n")))
	var out []int
	require.NoError(t, Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, []int{1, 2}, out)
}

func TestUnmarshal(t *testing.T) {
	t.Run("valid object", func(t *testing.T) {
		var out map[string]any
		require.NoError(t, Unmarshal([]byte(`{"name":"test","value":42}`), &out))
		assert.Equal(t, "test", out["name"])
	})

	t.Run("invalid json", func(t *testing.T) {
		var out map[string]any
		assert.Error(t, Unmarshal([]byte(`{invalid}`), &out))
	})
}
