package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/promptcat/pkg/api"
	"github.com/pluqqy/promptcat/pkg/catalog"
)

func TestPrintHelpers(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(nil, nil)
		SetGlobalFlags(false, false, false)
	})

	SetGlobalFlags(false, false, false)
	PrintSuccess("liked %s", "Code Reviewer")
	PrintError("boom")
	assert.Equal(t, "✓ liked Code Reviewer\n", out.String())
	assert.Equal(t, "✗ boom\n", errOut.String())

	out.Reset()
	errOut.Reset()
	SetGlobalFlags(true, true, false)
	PrintInfo("hidden")
	PrintError("boom")
	assert.Empty(t, out.String())
	assert.Equal(t, "ERROR: boom\n", errOut.String())
}

func TestConfirmSkip(t *testing.T) {
	SetGlobalFlags(false, false, true)
	t.Cleanup(func() { SetGlobalFlags(false, false, false) })

	ok, err := Confirm("overwrite?", false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "Prompt not found (HTTP 404)",
		ErrorText(api.NewAPIError(404, "GET", "/prompts/1", "Prompt not found")))
	assert.Equal(t, "plain", ErrorText(errors.New("plain")))
	assert.Equal(t, "wrapped: Prompt not found (HTTP 404)",
		ErrorText(fmt.Errorf("wrapped: %w", api.NewAPIError(404, "GET", "/x", "Prompt not found"))))
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "short", max: 10, want: "short"},
		{in: "a much longer description", max: 10, want: "a much ..."},
		{in: "multi\nline   text", max: 20, want: "multi line text"},
		{in: "abcdef", max: 2, want: "ab"},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatPagination(t *testing.T) {
	assert.Equal(t, "Previous 1 ... 3 4 [5] 6 7 ... 10 Next", FormatPagination(catalog.Window(5, 10)))
	assert.Empty(t, FormatPagination(nil))
}

func TestOutputResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputResults(&buf, "yaml", map[string]int{"total": 3}))
	assert.Equal(t, "total: 3\n", buf.String())

	buf.Reset()
	require.NoError(t, OutputResults(&buf, "json", map[string]int{"total": 3}))
	assert.JSONEq(t, `{"total":3}`, buf.String())

	assert.Error(t, OutputResults(&buf, "xml", nil))
}

func TestValidators(t *testing.T) {
	got, err := ValidateCategory("creative", []string{"Creative", "Technical"})
	require.NoError(t, err)
	assert.Equal(t, "Creative", got)

	_, err = ValidateCategory("Cooking", []string{"Creative"})
	assert.Error(t, err)

	assert.NoError(t, ValidateOutputFormat("yaml"))
	assert.Error(t, ValidateOutputFormat("xml"))
	assert.Error(t, ValidatePage(0))

	_, err = ValidateShareChannel("twitter")
	assert.NoError(t, err)
}
