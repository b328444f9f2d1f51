package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/jhoicas/team-feedback/internal/application/reports"
	"github.com/jhoicas/team-feedback/internal/infrastructure/csvexport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ComillasYComasSeRecuperan(t *testing.T) {
	tricky := `Dijo "hola", y se fue`
	rows := []reports.Row{
		{MemberName: "Tomás", Role: "team_member", Position: "Dev", Project: "P", Type: "improvement", Status: "open",
			Reviewer: "Rita", Description: tricky, ActionItems: "línea 1\nlínea 2", ImprovementDeadline: "01/01/2030", Date: "2026-05-01"},
		{MemberName: "Leo", Role: "reviewer", Position: "QA", Project: "Q", Type: "positive", Status: "closed",
			Reviewer: "Ana", Description: "bien", Date: "2026-05-02"},
	}

	data, err := csvexport.NewRenderer().Render("ignorado", rows)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Dijo ""hola"", y se fue"`)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, reports.Columns, records[0])
	assert.Equal(t, tricky, records[1][7])
	assert.Equal(t, "línea 1\nlínea 2", records[1][8])
	assert.Equal(t, rows[1].Values(), records[2])
}

func TestRender_CabeceraExacta(t *testing.T) {
	data, err := csvexport.NewRenderer().Render("", nil)
	require.NoError(t, err)
	assert.Equal(t,
		"Member Name,Role,Position,Project,Type,Status,Reviewer,Description,Action Items,Improvement Deadline,Date\n",
		string(data))
	assert.True(t, strings.HasPrefix(csvexport.NewRenderer().ContentType(), "text/csv"))
}
