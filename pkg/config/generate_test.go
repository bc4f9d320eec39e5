package config

import (
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	cfg := &Config{
		Search: SearchConfig{
			Autorecurse:     true,
			IgnoreDirs:      []string{".git"},
			ExtraIgnoreDirs: []string{"node_modules"},
		},
		Output: OutputConfig{Format: FormatJSON, Sort: true, ShowErrors: false},
	}

	data, err := Generate(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[search]")
	assert.Contains(t, string(data), "[output]")

	var back Config
	require.NoError(t, toml.Unmarshal(data, &back))
	assert.Equal(t, *cfg, back)
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[search]")
	assert.Contains(t, content, "# autorecurse = false")
	assert.Contains(t, content, `# format = "auto"`)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented value line: %q", line)
	}
}

func TestCommentOutConfigValues(t *testing.T) {
	in := "# header\n[output]\nsort = true\n\n  format = \"text\""
	want := "# header\n[output]\n# sort = true\n\n#   format = \"text\""
	assert.Equal(t, want, commentOutConfigValues(in))
}
