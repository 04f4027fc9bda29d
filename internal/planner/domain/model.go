package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project status values. Transitions are not enforced; the status is set ad
// hoc from the dashboard.
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Team member roles.
const (
	MemberRoleLeader = "leader"
	MemberRoleMember = "member"
)

// Document types.
const (
	DocProposal    = "proposal"
	DocChecklist   = "checklist"
	DocCurriculum  = "curriculum"
	DocSafetyGuide = "safety-guide"
)

// Project is a single volunteer-trip planning effort. It exclusively owns its
// conversation history, generated documents, and team roster; deleting the
// project deletes all three. JSON field names match the persisted layout and
// must not change without a migration story (there is none).
type Project struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Country     string            `json:"country"`
	TargetAge   string            `json:"targetAge"`
	Theme       string            `json:"theme"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	TeamMembers []TeamMember      `json:"teamMembers"`
	ChatHistory []ChatMessage     `json:"chatHistory"`
	Documents   []ProjectDocument `json:"documents"`
}

// ChatMessage is one turn in a project's conversation. Messages are append
// only; sequence order is conversation order.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ProjectDocument is a generated planning artifact. Regenerating a type
// appends a new document; prior artifacts of the same type are kept.
type ProjectDocument struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// TeamMember is a roster entry. Duplicate emails are allowed.
type TeamMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CaseStudy is a read-only reference record describing a past trip.
type CaseStudy struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Country    string   `json:"country"`
	Year       int      `json:"year"`
	TargetAge  string   `json:"targetAge"`
	Theme      string   `json:"theme"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Lessons    []string `json:"lessons"`
}

// ProjectMetadata carries the required creation fields.
type ProjectMetadata struct {
	Name      string
	Country   string
	TargetAge string
	Theme     string
}

// Validate checks that every required field is non-empty after trimming.
func (m ProjectMetadata) Validate() error {
	if strings.TrimSpace(m.Name) == "" ||
		strings.TrimSpace(m.Country) == "" ||
		strings.TrimSpace(m.TargetAge) == "" ||
		strings.TrimSpace(m.Theme) == "" {
		return ErrValidation
	}
	return nil
}

// NewProject builds a project with a fresh id, planning status, and empty
// nested collections.
func NewProject(meta ProjectMetadata) (Project, error) {
	if err := meta.Validate(); err != nil {
		return Project{}, err
	}
	now := time.Now().UTC()
	return Project{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(meta.Name),
		Country:     strings.TrimSpace(meta.Country),
		TargetAge:   strings.TrimSpace(meta.TargetAge),
		Theme:       strings.TrimSpace(meta.Theme),
		Status:      StatusPlanning,
		CreatedAt:   now,
		UpdatedAt:   now,
		TeamMembers: []TeamMember{},
		ChatHistory: []ChatMessage{},
		Documents:   []ProjectDocument{},
	}, nil
}

// NewChatMessage builds a message for the given role with a fresh id.
func NewChatMessage(role, content string) ChatMessage {
	return ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewTeamMember builds a roster entry with a fresh id. Unknown roles fall
// back to member.
func NewTeamMember(name, email, role string) TeamMember {
	if role != MemberRoleLeader {
		role = MemberRoleMember
	}
	return TeamMember{
		ID:    uuid.New().String(),
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Role:  role,
	}
}

// ValidStatus reports whether s is one of the known lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidDocumentType reports whether t is one of the four known kinds.
func ValidDocumentType(t string) bool {
	switch t {
	case DocProposal, DocChecklist, DocCurriculum, DocSafetyGuide:
		return true
	}
	return false
}
