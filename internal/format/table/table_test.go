package table

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer

	f := New([]string{"Name", "Tasks"}, &buf)
	require.NoError(t, f.WriteRow("js", "makejs"))
	require.NoError(t, f.WriteRow("config", ""))
	require.NoError(t, f.WriteRow("apps", nil))
	require.NoError(t, f.Flush())

	assert.Equal(t,
		"Name      Tasks\n"+
			"js        makejs\n"+
			"config    -\n"+
			"apps      -\n",
		buf.String())
}

func TestTableWithoutHeader(t *testing.T) {
	var buf bytes.Buffer

	f := New(nil, &buf)
	require.NoError(t, f.WriteRow("js", 500))
	require.NoError(t, f.Flush())

	assert.Equal(t, "js    500\n", buf.String())
}
