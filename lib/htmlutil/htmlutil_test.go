package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<td>Dept <b>21</b> <span>Judge Lopez</span></td>`,
	))
	require.NoError(t, err)
	require.Equal(t, "Dept 21 Judge Lopez", GetText(doc))
}

func TestGetTextNilNode(t *testing.T) {
	require.Equal(t, "", GetText(nil))
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "Dept 21", CleanText("  Dept \n\n  21\t"))
	require.Equal(t, "a b", CleanText("a    b"))
}
