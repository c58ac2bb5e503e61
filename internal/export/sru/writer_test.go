package sru

import (
	"strings"
	"testing"
	"time"

	"github.com/cemyet/summare-sub001/internal/export"
	"github.com/cemyet/summare-sub001/internal/mapping"
	"github.com/cemyet/summare-sub001/internal/resolve"
)

func testMeta() export.Meta {
	return export.Meta{
		OrgNr:           "165560269986",
		CompanyName:     "Summare Demo AB",
		FiscalYearStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		FiscalYearEnd:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		FormVersion:     "2024P4",
		Program:         "summare",
		Created:         time.Date(2025, 1, 15, 14, 30, 22, 0, time.UTC),
	}
}

func TestWriteBlanketter(t *testing.T) {
	ctx := resolve.NewContext(
		map[string]any{"justering_sarskild_loneskatt": -15194},
		nil,
		[]resolve.Row{
			{"variable_name": "SumAretsResultat", "current_amount": 553622.39},
			{"variable_name": "Brus", "current_amount": 0.3},
		},
		nil,
	)
	rows := []mapping.Row{
		{OrderKey: 1, FieldID: "7104", Label: "2.19 Årets resultat", Expression: "SumAretsResultat"},
		{OrderKey: 2, FieldID: "7670", Label: "4.3a Särskild löneskatt", Expression: "justering_sarskild_loneskatt"},
		{OrderKey: 3, FieldID: "7700", Label: "2.50 Saknas", Expression: "okand_variabel"},
		{OrderKey: 4, FieldID: "7705", Label: "2.51 Brus", Expression: "Brus"},
	}

	var buf strings.Builder
	if err := NewWriter(testMeta()).WriteBlanketter(&buf, rows, ctx); err != nil {
		t.Fatalf("WriteBlanketter() error = %v", err)
	}

	want := "" +
		"#BLANKETT INK2R-2024P4\n" +
		"#IDENTITET 165560269986 20250115 143022\n" +
		"#NAMN Summare Demo AB\n" +
		"#UPPGIFT 7104 553622\n" +
		"#BLANKETTSLUT\n" +
		"#BLANKETT INK2S-2024P4\n" +
		"#IDENTITET 165560269986 20250115 143022\n" +
		"#NAMN Summare Demo AB\n" +
		"#UPPGIFT 7670 15194\n" +
		"#BLANKETTSLUT\n" +
		"#FIL_SLUT\n"
	if buf.String() != want {
		t.Fatalf("blanketter mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteBlanketterStripsSign(t *testing.T) {
	ctx := resolve.NewContext(nil, nil, []resolve.Row{
		{"variable_name": "Forlust", "amount": -42000.0},
	}, nil)
	rows := []mapping.Row{
		{FieldID: "7412", Label: "3.1 Förlust", Expression: "Forlust"},
	}
	var buf strings.Builder
	if err := NewWriter(testMeta()).WriteBlanketter(&buf, rows, ctx); err != nil {
		t.Fatalf("WriteBlanketter() error = %v", err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "#UPPGIFT") && strings.Contains(line, "-") {
			t.Fatalf("SRU values must never print a minus sign: %q", line)
		}
	}
	if !strings.Contains(buf.String(), "#UPPGIFT 7412 42000") {
		t.Fatalf("expected absolute magnitude, got:\n%s", buf.String())
	}
}

func TestWriteInfo(t *testing.T) {
	var buf strings.Builder
	if err := NewWriter(testMeta()).WriteInfo(&buf); err != nil {
		t.Fatalf("WriteInfo() error = %v", err)
	}
	want := "" +
		"#DATABESKRIVNING_START\n" +
		"#PRODUKT SRU\n" +
		"#SKAPAD 20250115 143022\n" +
		"#PROGRAM summare\n" +
		"#FILNAMN BLANKETTER.SRU\n" +
		"#DATABESKRIVNING_SLUT\n" +
		"#MEDIELEV_START\n" +
		"#ORGNR 165560269986\n" +
		"#NAMN Summare Demo AB\n" +
		"#MEDIELEV_SLUT\n"
	if buf.String() != want {
		t.Fatalf("info mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}
