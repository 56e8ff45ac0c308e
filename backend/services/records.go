package services

import (
	"time"

	"studytrack/backend/models"

	"gorm.io/gorm"
)

// RecordStore reads submission records. All queries return fresh
// snapshots ordered by submission time; nothing here mutates a record
// after ingestion.
type RecordStore struct {
	DB *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{DB: db}
}

// ForDate returns every record of one day across all categories, oldest
// first.
func (s *RecordStore) ForDate(date string) ([]models.SubmissionRecord, error) {
	var records []models.SubmissionRecord
	err := s.DB.Where("practice_date = ?", date).
		Order("submission_time asc").
		Find(&records).Error
	return records, err
}

// ForCategoryDate returns one day's records of a single category, oldest
// first.
func (s *RecordStore) ForCategoryDate(category, date string) ([]models.SubmissionRecord, error) {
	var records []models.SubmissionRecord
	err := s.DB.Where("practice_date = ? AND practice_type = ?", date, category).
		Order("submission_time asc").
		Find(&records).Error
	return records, err
}

// AllHistory returns every record ever ingested, newest first.
func (s *RecordStore) AllHistory() ([]models.SubmissionRecord, error) {
	var records []models.SubmissionRecord
	err := s.DB.Order("submission_time desc").Find(&records).Error
	return records, err
}

// RecentHistory returns the records of the last N days, newest first.
func (s *RecordStore) RecentHistory(days int) ([]models.SubmissionRecord, error) {
	since := time.Now().AddDate(0, 0, -days).Format(dayLayout)
	var records []models.SubmissionRecord
	err := s.DB.Where("practice_date >= ?", since).
		Order("submission_time desc").
		Find(&records).Error
	return records, err
}

// Save persists a freshly ingested record in its own transaction, so it
// becomes visible to reconciliation reads atomically.
func (s *RecordStore) Save(rec *models.SubmissionRecord) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
}
