package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	require.Equal(t, "Weather", Sanitize("<script>alert(1)</script>Weather"))
	require.Equal(t, "Road closure", Sanitize("  <b>Road closure</b> "))
	require.Equal(t, "", Sanitize(""))
}

func TestRenderer_AllPages(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, page := range []string{PageHome, PagePrivacy, PageTerms, PageLegal, PageBecomePartner, PageContact, PageTrack, PageNotFound} {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, page, Context{"year": 2026, "path": "/"}), page)
		require.Contains(t, buf.String(), "Send us a Message", page)
	}
}

func TestRenderer_TrackingError(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageTrack, Context{
		"code":           "ZX9999",
		"tracking_error": "Tracking ID not found. Please check and try again.",
	}))
	out := buf.String()
	require.Contains(t, out, "Tracking ID not found. Please check and try again.")
	require.NotContains(t, out, `class="progress"`)
}

func TestRenderer_DelayReasonEscaped(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageTrack, Context{
		"tracking": map[string]any{
			"Headline":       "Delivery Delayed",
			"TrackingNumber": "AB123",
			"Delayed":        true,
			"DelayReason":    "<img src=x onerror=alert(1)>Weather",
			"Stages":         []map[string]string{{"Label": "Picked Up", "State": "completed"}},
		},
	}))
	out := buf.String()
	require.Contains(t, out, "Delay reason: Weather")
	require.NotContains(t, out, "onerror")
	require.Contains(t, out, "stage-completed")
}

func TestRenderer_DelayReasonEscapedOnce(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageTrack, Context{
		"tracking": map[string]any{
			"Headline":    "Delivery Delayed",
			"Delayed":     true,
			"DelayReason": `Rain & driver's "break"`,
		},
	}))
	out := buf.String()
	require.Contains(t, out, "Delay reason: Rain &amp; driver&#39;s &#34;break&#34;")
	require.NotContains(t, out, "&amp;amp;")
	require.NotContains(t, out, "&amp;#39;")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	require.Error(t, r.Render(&bytes.Buffer{}, "missing.html", nil))
}
