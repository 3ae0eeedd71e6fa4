package questions

import "time"

// Question categories.
const (
	CategoryCommon    = "common"
	CategoryJob       = "job"
	CategoryForeigner = "foreigner"
)

// Job types accepted for job-category questions and interview sets.
const (
	JobTypeIT        = "it"
	JobTypeMarketing = "marketing"
)

// Experience levels.
const (
	LevelIntern      = "intern"
	LevelEntry       = "entry"
	LevelExperienced = "experienced"
)

// Question is a catalog entry curated by administrators. Interview sets
// reference questions but never own them.
type Question struct {
	ID          string
	Question    string
	Category    string
	JobType     string
	Level       string
	ModelAnswer string
	Reasoning   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidCategory reports whether the category is one of the known values.
func ValidCategory(category string) bool {
	switch category {
	case CategoryCommon, CategoryJob, CategoryForeigner:
		return true
	}
	return false
}

// ValidJobType reports whether the job type is one of the known values.
func ValidJobType(jobType string) bool {
	switch jobType {
	case JobTypeIT, JobTypeMarketing:
		return true
	}
	return false
}

// ValidLevel reports whether the level is one of the known values.
func ValidLevel(level string) bool {
	switch level {
	case LevelIntern, LevelEntry, LevelExperienced:
		return true
	}
	return false
}
