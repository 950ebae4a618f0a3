package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTextContent(t *testing.T) {
	t.Run("plain string", func(t *testing.T) {
		content := ParseTextContent("hello world")
		assert.Equal(t, PlainText("hello world"), content)
	})

	t.Run("structured json", func(t *testing.T) {
		content := ParseTextContent(`{"headline":"Sale","cta":"Buy Now"}`)
		overlay, ok := content.(StructuredOverlay)
		require.True(t, ok)
		assert.Equal(t, "Sale", overlay.Headline)
		assert.Equal(t, "Buy Now", overlay.CTA)
	})

	t.Run("json without overlay fields is plain", func(t *testing.T) {
		content := ParseTextContent(`{"foo":"bar"}`)
		assert.Equal(t, PlainText(`{"foo":"bar"}`), content)
	})

	t.Run("malformed json is plain", func(t *testing.T) {
		content := ParseTextContent(`{"headline": broken`)
		assert.Equal(t, PlainText(`{"headline": broken`), content)
	})

	t.Run("leading whitespace before json", func(t *testing.T) {
		content := ParseTextContent("  {\"discount\":\"20% off\"}")
		overlay, ok := content.(StructuredOverlay)
		require.True(t, ok)
		assert.Equal(t, "20% off", overlay.Discount)
	})
}

func TestSynthesizeInstructions(t *testing.T) {
	t.Run("field order is fixed", func(t *testing.T) {
		got := SynthesizeInstructions(StructuredOverlay{
			Headline: "Sale",
			Message:  "Everything must go",
			CTA:      "Buy Now",
			Contact:  "555-0100",
			Discount: "20% off",
		})
		want := `Use "Sale" as the main headline with large, bold text, ` +
			`Include the message "Everything must go" as supporting text, ` +
			`Add a prominent call-to-action button with "Buy Now", ` +
			`Show the contact details "555-0100", ` +
			`Highlight the discount "20% off"`
		assert.Equal(t, want, got)
	})

	t.Run("subset of fields", func(t *testing.T) {
		got := SynthesizeInstructions(StructuredOverlay{Headline: "Sale", CTA: "Buy Now"})
		assert.Equal(t,
			`Use "Sale" as the main headline with large, bold text, Add a prominent call-to-action button with "Buy Now"`,
			got)
	})

	t.Run("no fields falls back", func(t *testing.T) {
		assert.Equal(t, defaultTextInstructions, SynthesizeInstructions(StructuredOverlay{}))
	})
}

func TestRawText(t *testing.T) {
	assert.Equal(t, "hello", rawText(PlainText("hello")))

	raw := rawText(StructuredOverlay{Headline: "Sale"})
	assert.JSONEq(t, `{"headline":"Sale"}`, raw)

	assert.Empty(t, rawText(nil))
}
