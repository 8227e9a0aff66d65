package bulkio

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Record is one review row as read from an input file, before validation.
type Record struct {
	ReviewID     string  `json:"review_id"`
	HotelID      string  `json:"hotel_id"`
	Rating       float64 `json:"rating"`
	ReviewText   string  `json:"review_text"`
	ReviewerName string  `json:"reviewer_name"`
	Source       string  `json:"source"`
}

// ImportFile reads reviews from path in the given format (jsonl, csv, json).
func ImportFile(path, format string) ([]Record, error) {
	switch strings.ToLower(format) {
	case "jsonl":
		return importJSONL(path)
	case "csv":
		return importCSV(path)
	case "json":
		return importJSON(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// importJSONL reads one JSON object per line, skipping blank and malformed
// lines so a single bad row never sinks a batch file.
func importJSONL(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var out []Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			log.Error().Err(err).Int("line", line).Str("file", path).Msg("skipping malformed JSONL line")
			continue
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

func importCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(strings.ToLower(h))] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		out = append(out, Record{
			ReviewID:     field(row, "review_id"),
			HotelID:      field(row, "hotel_id"),
			Rating:       parseRating(field(row, "rating")),
			ReviewText:   field(row, "review_text"),
			ReviewerName: field(row, "reviewer_name"),
			Source:       field(row, "source"),
		})
	}
	return out, nil
}

func importJSON(path string) ([]Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	var out []Record
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%s must contain a JSON array of reviews: %w", path, err)
	}
	return out, nil
}

// parseRating accepts "4", "4.0" and "4,0"; 0 means unparseable and fails
// validation downstream.
func parseRating(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Validate enforces the input contract: required identity fields, a numeric
// rating in 1..5 and at least 5 characters of review text.
func Validate(r Record) error {
	if r.ReviewID == "" {
		return fmt.Errorf("missing required field: review_id")
	}
	if r.HotelID == "" {
		return fmt.Errorf("missing required field: hotel_id")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if len(strings.TrimSpace(r.ReviewText)) < 5 {
		return fmt.Errorf("review text too short")
	}
	return nil
}
