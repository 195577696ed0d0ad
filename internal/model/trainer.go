package model

// Performance is a trainer's metrics for one period.
type Performance struct {
	ClassesCount        int     `json:"classesCount" yaml:"classesCount"`
	AttendanceRate      float64 `json:"attendanceRate" yaml:"attendanceRate"`
	ClientRetentionRate float64 `json:"clientRetentionRate" yaml:"clientRetentionRate"`
	PTSessionsCount     int     `json:"ptSessionsCount" yaml:"ptSessionsCount"`
	MemberFeedback      float64 `json:"memberFeedback" yaml:"memberFeedback"`
	RevenueGenerated    float64 `json:"revenueGenerated" yaml:"revenueGenerated"`

	// RankLastMonth is the 1-based rank in the previous period, if known.
	RankLastMonth *int `json:"rankLastMonth,omitempty" yaml:"rankLastMonth,omitempty"`

	// RankChange is derived by ranking: RankLastMonth minus the current rank.
	// Positive means the trainer moved up.
	RankChange *int `json:"rankChange,omitempty" yaml:"rankChange,omitempty"`
}

// Trainer is a member of the coaching staff.
type Trainer struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Email       string       `json:"email" yaml:"email"`
	Phone       string       `json:"phone,omitempty" yaml:"phone,omitempty"`
	Specialties []string     `json:"specialties,omitempty" yaml:"specialties,omitempty"`
	Performance *Performance `json:"performance,omitempty" yaml:"performance,omitempty"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
