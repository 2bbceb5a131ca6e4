package fonts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadBuiltin(t *testing.T) {
	for _, name := range []string{Bold, "embed:Go-Bold", "go-regular"} {
		data, err := Load(name)
		require.NoError(t, err, name)
		require.NotEmpty(t, data)
	}
	_, err := Load("Inter-Regular")
	require.Error(t, err)
}
