package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHelpListsCommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	for _, c := range []string{"generate", "range", "commits", "custom", "submit", "config", "version"} {
		assert.Contains(t, out, c)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gitreport version "+Version+"\n", out)
}
