package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// User roles. Admins are regular accounts with the is_admin flag set;
// the flag travels in the JWT claims, never encoded in display strings.
const (
	RoleUser     = "user"
	RoleLandlord = "landlord"
)

// Property lifecycle statuses.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusInactive = "inactive"
	StatusSold     = "sold"
	StatusRented   = "rented"
)

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	Role         string `json:"role" db:"role"`
	IsAdmin      bool   `json:"is_admin" db:"is_admin"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
	Updated      int64  `json:"updated" db:"updated"`
}

type Property struct {
	ID           int64    `json:"id" db:"id"`
	OwnerID      int64    `json:"owner_id" db:"owner_id"`
	Title        string   `json:"title" db:"title"`
	Description  string   `json:"description,omitempty" db:"description"`
	PropertyType string   `json:"property_type" db:"property_type"`
	Price        float64  `json:"price" db:"price"`
	Bedrooms     int      `json:"bedrooms" db:"bedrooms"`
	Bathrooms    float64  `json:"bathrooms" db:"bathrooms"`
	AreaSqm      float64  `json:"area_sqm" db:"area_sqm"`
	Location     string   `json:"location,omitempty" db:"location"`
	Amenities    []string `json:"amenities,omitempty" db:"amenities"`
	Verified     bool     `json:"verified" db:"verified"`
	Published    bool     `json:"published" db:"published"`
	Status       string   `json:"status" db:"status"`
	Created      int64    `json:"created" db:"created"`
	Updated      int64    `json:"updated" db:"updated"`
}

// PropertyFilter holds the optional search criteria accepted by the public
// listing endpoint. Zero values impose no constraint.
type PropertyFilter struct {
	Type     string
	PriceMin float64
	PriceMax float64
	Bedrooms int
	Location string
}

// QuizPreferences is the full lifestyle questionnaire answer set. Every field
// is optional; the scoring engine treats missing values as "rule does not
// match", it never fails on partial input.
type QuizPreferences struct {
	ResidenceType string   `json:"residenceType,omitempty"`
	FamilyStatus  string   `json:"familyStatus,omitempty"`
	WorkStyle     string   `json:"workStyle,omitempty"`
	Commute       string   `json:"commute,omitempty"`
	Environment   string   `json:"environment,omitempty"`
	LocationTrend string   `json:"location,omitempty"`
	Budget        float64  `json:"budget,omitempty"`
	Bedrooms      int      `json:"bedrooms,omitempty"`
	OutdoorSpace  int      `json:"outdoorSpace,omitempty"`
	Pets          *bool    `json:"pets,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	Priorities    []string `json:"priorities,omitempty"`
}

// SimpleQuizPreferences is the reduced 3-question onboarding variant. It feeds
// a strict conjunctive filter rather than a weighted score.
type SimpleQuizPreferences struct {
	ResidenceType string  `json:"residenceType,omitempty"`
	FamilyStatus  string  `json:"familyStatus,omitempty"`
	Budget        float64 `json:"budget,omitempty"`
}

// LifestyleScores is the six-dimensional integer vector built by the scoring
// rules. Computed fresh per quiz completion, never persisted.
type LifestyleScores struct {
	Family     int `json:"family"`
	Luxury     int `json:"luxury"`
	Investment int `json:"investment"`
	Urban      int `json:"urban"`
	Suburban   int `json:"suburban"`
	Rural      int `json:"rural"`
}

// QuizResult is the shape consumed by the UI after a completed quiz.
type QuizResult struct {
	Completed      bool            `json:"completed"`
	Lifestyle      string          `json:"lifestyle"`
	Priorities     []string        `json:"priorities"`
	LifestyleScore LifestyleScores `json:"lifestyleScore"`
}

type Message struct {
	ID          int64  `json:"id" db:"id"`
	SenderID    int64  `json:"sender_id" db:"sender_id"`
	RecipientID int64  `json:"recipient_id" db:"recipient_id"`
	PropertyID  *int64 `json:"property_id,omitempty" db:"property_id"`
	Body        string `json:"body" db:"body"`
	System      bool   `json:"system" db:"system"`
	Created     int64  `json:"created" db:"created"`
}

type Favorite struct {
	ID         int64 `json:"id" db:"id"`
	UserID     int64 `json:"user_id" db:"user_id"`
	PropertyID int64 `json:"property_id" db:"property_id"`
	Created    int64 `json:"created" db:"created"`
}

// Report statuses.
const (
	ReportOpen      = "open"
	ReportResolved  = "resolved"
	ReportDismissed = "dismissed"
)

type Report struct {
	ID         int64  `json:"id" db:"id"`
	PropertyID int64  `json:"property_id" db:"property_id"`
	ReporterID int64  `json:"reporter_id" db:"reporter_id"`
	Reason     string `json:"reason" db:"reason"`
	Details    string `json:"details,omitempty" db:"details"`
	Status     string `json:"status" db:"status"`
	Created    int64  `json:"created" db:"created"`
	Updated    int64  `json:"updated" db:"updated"`
}
