package bulkio_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hotel_reviews/internal/bulkio"
	"hotel_reviews/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestImportJSONL_SkipsMalformedLines(t *testing.T) {
	path := writeFile(t, "in.jsonl", strings.Join([]string{
		`{"review_id":"r1","hotel_id":"HOTEL_001","rating":5,"review_text":"Lovely stay, clean rooms."}`,
		``,
		`{not json}`,
		`{"review_id":"r2","hotel_id":"HOTEL_001","rating":2,"review_text":"Noisy corridor all night."}`,
	}, "\n"))

	recs, err := bulkio.ImportFile(path, "jsonl")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ReviewID != "r1" || recs[1].ReviewID != "r2" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestImportCSV_HeaderMappedAndFlexibleRating(t *testing.T) {
	path := writeFile(t, "in.csv",
		"review_id,hotel_id,rating,review_text,reviewer_name\n"+
			`r1,HOTEL_001,"4,0","Great breakfast and friendly staff.",Ana`+"\n"+
			"r2,HOTEL_001,3,Average room but decent location.,\n")

	recs, err := bulkio.ImportFile(path, "csv")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Rating != 4.0 {
		t.Fatalf("expected comma rating parsed as 4.0, got %v", recs[0].Rating)
	}
	if recs[0].ReviewerName != "Ana" {
		t.Fatalf("unexpected reviewer: %q", recs[0].ReviewerName)
	}
}

func TestImportJSON_RequiresArray(t *testing.T) {
	path := writeFile(t, "in.json", `{"review_id":"r1"}`)
	if _, err := bulkio.ImportFile(path, "json"); err == nil {
		t.Fatalf("expected error for non-array JSON")
	}
}

func TestImportFile_UnsupportedFormat(t *testing.T) {
	if _, err := bulkio.ImportFile("whatever.xml", "xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestValidate(t *testing.T) {
	good := bulkio.Record{ReviewID: "r1", HotelID: "h1", Rating: 4, ReviewText: "Nice place to stay."}
	if err := bulkio.Validate(good); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	cases := []bulkio.Record{
		{HotelID: "h1", Rating: 4, ReviewText: "Nice place to stay."},     // no review_id
		{ReviewID: "r1", Rating: 4, ReviewText: "Nice place to stay."},    // no hotel_id
		{ReviewID: "r1", HotelID: "h1", Rating: 0, ReviewText: "Nice place."},  // rating low
		{ReviewID: "r1", HotelID: "h1", Rating: 9, ReviewText: "Nice place."},  // rating high
		{ReviewID: "r1", HotelID: "h1", Rating: 4, ReviewText: "  ok  "}, // text too short
	}
	for i, c := range cases {
		if err := bulkio.Validate(c); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, c)
		}
	}
}

func TestExportEnrichedCSV(t *testing.T) {
	long := strings.Repeat("x", 600)
	recs := []domain.AnalysisRecord{
		{
			ReviewID:         "r1",
			HotelID:          "HOTEL_001",
			Rating:           5,
			ReviewText:       long,
			Summary:          "Long review",
			Sentiment:        domain.SentimentPositive,
			PublishDecision:  domain.DecisionReject,
			RejectionReasons: []string{"Phone number or email address present", "Contains spam, advertisements, or links"},
			Tags:             []string{"SENTIMENT_POSITIVE", "WIFI"},
		},
	}
	path := filepath.Join(t.TempDir(), "exports", "reviews_enriched.csv")
	if err := bulkio.ExportEnrichedCSV(recs, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	row := rows[1]
	if row[3] != "REJECT" {
		t.Fatalf("unexpected decision column: %q", row[3])
	}
	if row[4] != "Phone number or email address present; Contains spam, advertisements, or links" {
		t.Fatalf("unexpected reasons column: %q", row[4])
	}
	if len(row[8]) != 500 {
		t.Fatalf("expected text truncated to 500 chars, got %d", len(row[8]))
	}
}
