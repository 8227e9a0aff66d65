//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_reviews/internal/domain"
	mysqlrepo "hotel_reviews/internal/storage/mysql"
)

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=reviews",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "reviews")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func TestRepo_MySQL_UpsertAndSummary(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	raw := domain.RawReview{
		ReviewID:     "HOTEL_001_aaaa0001",
		HotelID:      "HOTEL_001",
		Rating:       5,
		Text:         "Lovely stay, kind staff.",
		ReviewerName: "Ana",
		Source:       "internal",
	}
	if err := repo.UpsertRaw(ctx, raw); err != nil {
		t.Fatalf("UpsertRaw: %v", err)
	}
	// Same key again must update in place, not duplicate.
	raw.Rating = 4
	if err := repo.UpsertRaw(ctx, raw); err != nil {
		t.Fatalf("UpsertRaw (again): %v", err)
	}

	published := domain.AnalysisRecord{
		ReviewID:         "HOTEL_001_aaaa0001",
		HotelID:          "HOTEL_001",
		Rating:           4,
		ReviewText:       "Lovely stay, kind staff.",
		Summary:          "Guest enjoyed the stay.",
		Sentiment:        domain.SentimentPositive,
		PublishDecision:  domain.DecisionPublish,
		RejectionReasons: []string{},
		Tags:             []string{"SENTIMENT_POSITIVE", "SERVICE_STAFF", "TOO_SHORT"},
		DetectedSignals:  domain.SignalSet{TooShort: true, Sentiment: domain.SentimentPositive},
		Flags:            []string{},
		ModelName:        "test-model",
		PromptVersion:    "v1.0",
	}
	rejected := domain.AnalysisRecord{
		ReviewID:        "HOTEL_001_aaaa0002",
		HotelID:         "HOTEL_001",
		Rating:          1,
		ReviewText:      "Call me at 9876543210 for the full story.",
		Summary:         "Guest reports a bad experience.",
		Sentiment:       domain.SentimentNegative,
		PublishDecision: domain.DecisionReject,
		RejectionReasons: []string{
			"Phone number or email address present",
		},
		Tags:            []string{"SENTIMENT_NEGATIVE", "CONTACT_INFO_MENTIONED"},
		DetectedSignals: domain.SignalSet{PhoneEmailPresent: true, Sentiment: domain.SentimentNegative},
		Flags:           []string{},
		ModelName:       "test-model",
		PromptVersion:   "v1.0",
	}
	otherHotel := published
	otherHotel.ReviewID = "HOTEL_002_bbbb0001"
	otherHotel.HotelID = "HOTEL_002"

	for _, rec := range []domain.AnalysisRecord{published, rejected, otherHotel} {
		if err := repo.UpsertEnriched(ctx, rec); err != nil {
			t.Fatalf("UpsertEnriched %s: %v", rec.ReviewID, err)
		}
	}
	// Re-upsert flips a decision; the summary must reflect the latest row.
	rejected.PublishDecision = domain.DecisionReject
	if err := repo.UpsertEnriched(ctx, rejected); err != nil {
		t.Fatalf("UpsertEnriched (again): %v", err)
	}

	report, err := repo.Summary(ctx, "HOTEL_001")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if report.TotalReviews != 2 || report.PublishedCount != 1 || report.RejectedCount != 1 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if report.PublishPercentage != 50 {
		t.Fatalf("unexpected publish percentage: %v", report.PublishPercentage)
	}
	if report.SentimentDistribution["SENTIMENT_POSITIVE"] != 1 ||
		report.SentimentDistribution["SENTIMENT_NEGATIVE"] != 1 {
		t.Fatalf("unexpected sentiment distribution: %v", report.SentimentDistribution)
	}
	if report.RejectionReasonCounts["Phone number or email address present"] != 1 {
		t.Fatalf("unexpected reason counts: %v", report.RejectionReasonCounts)
	}
	if report.TagDistribution["SERVICE_STAFF"] != 1 || report.TagDistribution["CONTACT_INFO_MENTIONED"] != 1 {
		t.Fatalf("unexpected tag distribution: %v", report.TagDistribution)
	}

	rawCount, enrichedCount, err := repo.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if rawCount != 1 || enrichedCount != 3 {
		t.Fatalf("unexpected counts: raw=%d enriched=%d", rawCount, enrichedCount)
	}
}
