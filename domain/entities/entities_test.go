package entities

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "$29.99", want: "29.99"},
		{raw: " $7.99 ", want: "7.99"},
		{raw: "15.99", want: "15.99"},
		{raw: "$", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "$abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePrice(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestItemDescriptorEqual(t *testing.T) {
	a := ItemDescriptor{Name: "Sauce Labs Onesie", Description: "Rib snap", Price: "$7.99", Image: "/onesie.jpg"}
	b := a
	assert.True(t, a.Equal(b))

	b.Image = "/other.jpg"
	assert.False(t, a.Equal(b))

	amount, err := a.Amount()
	require.NoError(t, err)
	assert.Equal(t, "7.99", amount.String())
}

func TestRunReportAdd(t *testing.T) {
	var report RunReport
	report.Add(ScenarioResult{Name: "a", Status: ScenarioStatusPassed})
	report.Add(ScenarioResult{Name: "b", Status: ScenarioStatusFailed, Error: "boom"})
	report.Add(ScenarioResult{Name: "c", Status: ScenarioStatusPassed})

	assert.Len(t, report.Results, 3)
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 1, report.Failed)
}

func TestToXPath(t *testing.T) {
	tests := []struct {
		locator  Locator
		relative bool
		want     string
	}{
		{ID("login-button"), false, "//*[@id='login-button']"},
		{ID("login-button"), true, ".//*[@id='login-button']"},
		{Locator{By: ByName, Value: "user-name"}, false, "//*[@name='user-name']"},
		{ClassName("inventory_item"), true, ".//*[contains(concat(' ', normalize-space(@class), ' '), ' inventory_item ')]"},
		{TagName("img"), true, ".//img"},
		{XPath("./ancestor::div"), true, "./ancestor::div"},
		{LinkText("All Items"), false, "//a[normalize-space(.)='All Items']"},
		{Locator{By: ByPartialLinkText, Value: "Reset"}, false, "//a[contains(., 'Reset')]"},
	}

	for _, tt := range tests {
		t.Run(tt.locator.String(), func(t *testing.T) {
			got, ok := ToXPath(tt.locator, tt.relative)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := ToXPath(CSS(".title"), false)
	assert.False(t, ok)
}

func TestXPathLiteral(t *testing.T) {
	assert.Equal(t, "'plain'", XPathLiteral("plain"))
	assert.Equal(t, `"isn't"`, XPathLiteral("isn't"))
	assert.Equal(t, `concat('say "it', "'", 's"')`, XPathLiteral(`say "it's"`))
}

// testXPathLiteralRoundTrip unquotes the literal the way an XPath engine
// would and expects the original text back.
func testXPathLiteralRoundTrip(t *rapid.T) {
	s := rapid.StringOf(rapid.SampledFrom([]rune{'a', 'b', ' ', '\'', '"', '(', ')'})).Draw(t, "s")
	lit := XPathLiteral(s)

	if strings.HasPrefix(lit, "concat(") {
		body := strings.TrimSuffix(strings.TrimPrefix(lit, "concat("), ")")
		var out strings.Builder
		for _, part := range splitConcat(body) {
			out.WriteString(part[1 : len(part)-1])
		}
		if out.String() != s {
			t.Fatalf("concat literal %s decodes to %q, want %q", lit, out.String(), s)
		}
		return
	}

	quote := lit[0]
	inner := lit[1 : len(lit)-1]
	if strings.IndexByte(inner, quote) >= 0 {
		t.Fatalf("literal %s contains its own quote", lit)
	}
	if inner != s {
		t.Fatalf("literal %s decodes to %q, want %q", lit, inner, s)
	}
}

// splitConcat splits concat arguments produced by XPathLiteral
func splitConcat(body string) []string {
	var parts []string
	for len(body) > 0 {
		body = strings.TrimPrefix(body, ", ")
		quote := body[0]
		end := strings.IndexByte(body[1:], quote) + 1
		parts = append(parts, body[:end+1])
		body = body[end+1:]
	}
	return parts
}

func TestXPathLiteralRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testXPathLiteralRoundTrip)
}
