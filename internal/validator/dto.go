package validator

// RegisterRequest represents the request structure for account registration.
// The plaintext password only lives in this struct and in the bcrypt call.
type RegisterRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,min=6,max=72"`
	Role      string  `json:"role" validate:"required,oneof=student teacher"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=500"`
}

// LoginRequest represents the request structure for credential login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TeacherProfileUpdateRequest fully replaces the teacher profile fields.
// AvatarURL is the only optional piece: absent means keep the stored one.
type TeacherProfileUpdateRequest struct {
	Subject         string  `json:"subject" validate:"required,max=200"`
	ExperienceYears int     `json:"experience_years" validate:"min=0,max=80"`
	Availability    string  `json:"availability" validate:"required,max=500"`
	Bio             string  `json:"bio" validate:"required,max=2000"`
	AvatarURL       *string `json:"avatar_url" validate:"omitempty,max=500"`
}

// StudentProfileUpdateRequest fully replaces the student profile fields,
// with the same replace-or-preserve avatar semantics.
type StudentProfileUpdateRequest struct {
	GradeLevel        string  `json:"grade_level" validate:"required,max=100"`
	PreferredSubjects string  `json:"preferred_subjects" validate:"required,max=500"`
	Bio               string  `json:"bio" validate:"required,max=2000"`
	AvatarURL         *string `json:"avatar_url" validate:"omitempty,max=500"`
}

// ContactRequestCreate represents a student's outreach to a teacher.
// StudentName is denormalized on purpose and stored as given.
type ContactRequestCreate struct {
	TeacherID    uint    `json:"teacher_id" validate:"required"`
	StudentName  string  `json:"student_name" validate:"required,max=100"`
	Requirements string  `json:"requirements" validate:"required,max=2000"`
	Availability string  `json:"availability" validate:"required,max=500"`
	Note         *string `json:"note" validate:"omitempty,max=2000"`
}
