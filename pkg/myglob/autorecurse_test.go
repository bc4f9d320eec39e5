// Test Type: Unit Test
// Description: Tests for the autorecurse rewrite applied at compile time

package myglob_test

import (
	"testing"

	"github.com/FrenchBear/myglob/pkg/myglob"
	"github.com/FrenchBear/myglob/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segmentStrings(s *myglob.Search) []string {
	var out []string
	for _, seg := range s.Segments() {
		out = append(out, seg.String())
	}
	return out
}

func TestAutorecurse(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly).FruitTree()

	compile := func(t *testing.T, pattern string, on bool) *myglob.Search {
		t.Helper()
		s, err := myglob.New(pattern).WithFS(env.FS).Autorecurse(on).Compile()
		require.NoError(t, err)
		return s
	}

	t.Run("bare_directory_gets_recurse_and_match_all", func(t *testing.T) {
		s := compile(t, env.Path("root"), true)
		assert.Equal(t, []string{"Recurse", "Filter((?i)^.*$)"}, segmentStrings(s))
		assert.False(t, s.IsConstant())
	})

	t.Run("bare_directory_without_autorecurse_stays_constant", func(t *testing.T) {
		s := compile(t, env.Path("root"), false)
		assert.True(t, s.IsConstant())
	})

	t.Run("bare_file_is_unchanged", func(t *testing.T) {
		s := compile(t, env.Path("root/info"), true)
		assert.True(t, s.IsConstant())
	})

	t.Run("missing_path_is_unchanged", func(t *testing.T) {
		s := compile(t, env.Path("root/nothing"), true)
		assert.True(t, s.IsConstant())
	})

	t.Run("trailing_filter_gets_recurse_before_it", func(t *testing.T) {
		s := compile(t, env.Path("root")+"/*.txt", true)
		assert.Equal(t, []string{"Recurse", `Filter((?i)^.*\.txt$)`}, segmentStrings(s))
	})

	t.Run("recurse_inserted_before_last_filter_only", func(t *testing.T) {
		s := compile(t, env.Path("root")+"/*/x/*.txt", true)
		assert.Equal(t,
			[]string{"Filter((?i)^.*$)", "Constant(x)", "Recurse", `Filter((?i)^.*\.txt$)`},
			segmentStrings(s))
	})

	t.Run("explicit_recurse_is_unchanged", func(t *testing.T) {
		with := compile(t, env.Path("root")+"/**/*.txt", true)
		without := compile(t, env.Path("root")+"/**/*.txt", false)
		assert.Equal(t, segmentStrings(without), segmentStrings(with))
	})

	t.Run("trailing_constant_is_unchanged", func(t *testing.T) {
		s := compile(t, env.Path("root")+"/*/pomme.txt", true)
		assert.Equal(t, []string{"Filter((?i)^.*$)", "Constant(pomme.txt)"}, segmentStrings(s))
	})
}
