package typeid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndPrefix(t *testing.T) {
	for _, tt := range []struct {
		id     string
		prefix string
	}{
		{NewObjectID(), PrefixObject},
		{NewPageID(), PrefixPage},
		{NewImageID(), PrefixImage},
	} {
		assert.True(t, strings.HasPrefix(tt.id, tt.prefix+"_"), tt.id)
		got, err := Prefix(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.prefix, got)
		assert.NoError(t, Validate(tt.id, tt.prefix))
	}
}

func TestValidateRejects(t *testing.T) {
	assert.Error(t, Validate(NewPageID(), PrefixObject))
	assert.Error(t, Validate("not-an-id", PrefixObject))
	_, err := Prefix("")
	assert.Error(t, err)
}
