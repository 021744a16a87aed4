package pythonhints

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReturnTypeNames(t *testing.T) {
	cases := []struct {
		doc      string
		expected []string
	}{
		{"Does things.\n\n:rtype: str\n", []string{"str"}},
		{"@rtype: int or None", []string{"int", "None"}},
		{":returns: the thing\n:rtype: :class:`pkg.Thing`", []string{"pkg.Thing"}},
		{":rtype: list of str", []string{"list"}},
		{":rtype: int | float", []string{"int", "float"}},
		{"Returns\n-------\nresult : dict\n    The result.", []string{"dict"}},
		{"Yields\n------\nint", []string{"int"}},
		{"No return type documented.", nil},
		{"", nil},
	}

	for _, c := range cases {
		if diff := cmp.Diff(c.expected, ReturnTypeNames(c.doc)); diff != "" {
			t.Errorf("unexpected names for %q (-want +got):\n%s", c.doc, diff)
		}
	}
}
