package domain

import (
	"strings"
	"time"
)

// Kind discriminates the four managed content kinds.
type Kind string

const (
	// KindQA is a question/answer pair.
	KindQA Kind = "qa"

	// KindCriticism is a criticism/feedback entry.
	KindCriticism Kind = "criticism"

	// KindDocument is an uploaded reference document.
	KindDocument Kind = "document"

	// KindMember is an organisation member record.
	KindMember Kind = "member"
)

// String returns the string representation of the kind.
func (k Kind) String() string { return string(k) }

// AnswerMode selects how a QA or criticism entry is answered.
// Text answers and an attached document are mutually exclusive.
type AnswerMode string

const (
	// AnswerText means the entry carries free-text answers/notes.
	AnswerText AnswerMode = "text"

	// AnswerDocument means the entry carries an uploaded document URL.
	AnswerDocument AnswerMode = "document"
)

// Severity levels for criticism entries.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Criticism tags classify the nature of an entry.
const (
	TagCriticism  = "criticism"
	TagQuestion   = "question"
	TagAccusation = "accusation"
)

// Criticism workflow statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusAddressed  = "addressed"
)

// Member levels and statuses.
const (
	LevelLeadership = "leadership"
	LevelSenior     = "senior"
	LevelMember     = "member"

	MemberActive   = "active"
	MemberInactive = "inactive"
)

// Item is the canonical content record all backend payload shapes are
// normalised into. Exactly one of the kind payloads is populated,
// matching Kind.
type Item struct {
	// ID is the server-assigned identifier when known, otherwise a
	// locally generated placeholder valid until the next reload.
	ID string

	// Topic is a non-owning reference to a Topic name (or document
	// category). Items never outlive the loaded topic collection.
	Topic string

	// Kind selects which payload is populated.
	Kind Kind

	// CreatedAt is display-only; zero when the backend omits it.
	CreatedAt time.Time

	QA        *QAFields
	Criticism *CriticismFields
	Document  *DocumentFields
	Member    *MemberFields
}

// QAFields is the payload for KindQA.
type QAFields struct {
	Question    string
	Summary     string
	Mode        AnswerMode
	TextAnswers []string
	DocumentURL string
}

// CriticismFields is the payload for KindCriticism.
type CriticismFields struct {
	Title    string
	Detail   string
	Source   string
	Severity string
	Tag      string
	Status   string

	// Mode selects between Notes and DocumentURL.
	Mode        AnswerMode
	Notes       []string
	DocumentURL string
}

// DocumentFields is the payload for KindDocument.
type DocumentFields struct {
	FileName   string
	FileURL    string
	Category   string
	UploadedAt time.Time
}

// MemberFields is the payload for KindMember.
type MemberFields struct {
	Name   string
	Role   string
	Sector string
	Phone  string
	Email  string
	Level  string
	Status string
}

// KeyField returns the kind's mandatory identifying value. Records
// without it are dropped during normalisation and rejected on add.
func (i Item) KeyField() string {
	switch i.Kind {
	case KindQA:
		if i.QA != nil {
			return strings.TrimSpace(i.QA.Question)
		}
	case KindCriticism:
		if i.Criticism != nil {
			return strings.TrimSpace(i.Criticism.Title)
		}
	case KindDocument:
		if i.Document != nil {
			return strings.TrimSpace(i.Document.FileName)
		}
	case KindMember:
		if i.Member != nil {
			return strings.TrimSpace(i.Member.Name)
		}
	}
	return ""
}

// Validate checks the invariants every item must hold before it is
// admitted to a collection: a topic reference, a populated payload
// matching the kind, and the mandatory identifying field.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Topic) == "" {
		return ErrNoTopicSelected
	}
	if i.KeyField() == "" {
		return ErrInvalidInput
	}
	return nil
}
