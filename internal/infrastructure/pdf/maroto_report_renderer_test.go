package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jhoicas/team-feedback/internal/application/reports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_GeneraPDF(t *testing.T) {
	rows := []reports.Row{
		{MemberName: "Tomás", Position: "Dev", Project: "P", Type: "improvement", Status: "open", Reviewer: "Rita",
			Description: strings.Repeat("largo ", 50), Date: "2026-05-01"},
		{MemberName: "Leo", Position: "QA", Project: "Q", Type: "positive", Status: "closed", Reviewer: "Ana",
			Description: "bien", Date: "2026-05-02"},
	}
	r := NewMarotoReportRenderer()

	data, err := r.Render("Team Performance Report", rows)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, "pdf", r.Extension())
	assert.Equal(t, "application/pdf", r.ContentType())
}

func TestRender_SinFilas(t *testing.T) {
	data, err := NewMarotoReportRenderer().Render("My Performance Report", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ñañ...", truncate("ñañaña", 3))
}
