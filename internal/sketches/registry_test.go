package sketches

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"dots", "planets"}, Names())
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		e, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, e.Name)
		assert.True(t, e.Settings.Animate)
		assert.NoError(t, e.Settings.Validate())
		assert.NotNil(t, e.Build(Options{AssetDir: "assets"}))
	}

	_, err := Lookup("spicy-sketch")
	assert.Error(t, err)
}
