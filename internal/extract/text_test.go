package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \n\t\n  ", ""},
		{"headings kept", "# Skills\n## Languages\nGo", "# Skills\n## Languages\nGo"},
		{"collapses spaces", "Python    and\t\tSQL", "Python and SQL"},
		{"line endings", "Go\r\nRust\rZig", "Go\nRust\nZig"},
		{"blank line runs", "Summary\n\n\n\n\nExperience", "Summary\n\nExperience"},
		{"bullets unified", "• Kafka\n· Redis\n* Docker\n- AWS", "- Kafka\n- Redis\n- Docker\n- AWS"},
		{"indentation kept", "Projects\n  - Built   a   CLI", "Projects\n  - Built a CLI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	input := "  Résumé:   C++ ,  C# \r\n\r\n\r\n • Node.js"
	once := CleanText(input)
	assert.Equal(t, once, CleanText(once))
}
