package account

// Role identifies what a signed-in user can do.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Game progress bounds.
const (
	MaxLives = 5
	MinLevel = 1
	MaxLevel = 5
)

// Progress holds a student's game progress. Only student accounts carry
// progress; teacher and admin accounts have none.
type Progress struct {
	// Lives remaining, 0 to MaxLives.
	Lives int `json:"lives"`

	// Score is the cumulative point total. Never decreases.
	Score int `json:"score"`

	// Level is the difficulty tier (1-5). Drives both question
	// difficulty and the per-answer score multiplier.
	Level int `json:"level"`
}

// NewProgress returns the progress a freshly registered student starts with.
func NewProgress() *Progress {
	return &Progress{Lives: MaxLives, Score: 0, Level: MinLevel}
}

// User is one account record.
//
// Progress is non-nil iff Role is RoleStudent. Readers of persisted records
// must tolerate a nil Progress on any role: legacy records and the fixed
// admin identity never carried progress fields.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	Password string    `json:"password,omitempty"`
	Progress *Progress `json:"progress,omitempty"`
}

// IsStudent reports whether the user plays the game.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// Clone returns a deep copy of u. The session slot stores users by value,
// so handing out copies keeps store and session from aliasing.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Progress != nil {
		p := *u.Progress
		c.Progress = &p
	}
	return &c
}
