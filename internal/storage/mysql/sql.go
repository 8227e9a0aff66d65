package mysql

const upsertRawSQL = `
INSERT INTO reviews_raw
  (review_id, hotel_id, rating, review_text, reviewer_name, source)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  hotel_id      = VALUES(hotel_id),
  rating        = VALUES(rating),
  review_text   = VALUES(review_text),
  reviewer_name = VALUES(reviewer_name),
  source        = VALUES(source)
`

const upsertEnrichedSQL = `
INSERT INTO reviews_enriched
  (review_id, hotel_id, rating, review_text, publish_decision,
   rejection_reasons, flags, summary, tags, sentiment, detected_signals,
   model_name, prompt_version)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  hotel_id          = VALUES(hotel_id),
  rating            = VALUES(rating),
  review_text       = VALUES(review_text),
  publish_decision  = VALUES(publish_decision),
  rejection_reasons = VALUES(rejection_reasons),
  flags             = VALUES(flags),
  summary           = VALUES(summary),
  tags              = VALUES(tags),
  sentiment         = VALUES(sentiment),
  detected_signals  = VALUES(detected_signals),
  model_name        = VALUES(model_name),
  prompt_version    = VALUES(prompt_version),
  analyzed_at       = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const summaryTotalsSQL = `
SELECT
  COUNT(*),
  COALESCE(SUM(publish_decision = 'PUBLISH'), 0)
FROM reviews_enriched
WHERE hotel_id = ?
`

const summarySentimentSQL = `
SELECT sentiment, COUNT(*)
FROM reviews_enriched
WHERE hotel_id = ?
GROUP BY sentiment
`

// Reason and tag distributions are aggregated in Go from the JSON columns;
// the arrays are small and per-hotel row counts are modest.
const summaryReasonsSQL = `
SELECT rejection_reasons
FROM reviews_enriched
WHERE hotel_id = ? AND publish_decision = 'REJECT'
`

const summaryTagsSQL = `
SELECT tags
FROM reviews_enriched
WHERE hotel_id = ?
`

const countsSQL = `
SELECT
  (SELECT COUNT(*) FROM reviews_raw),
  (SELECT COUNT(*) FROM reviews_enriched)
`
