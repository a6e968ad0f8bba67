package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_KeyField_QA(t *testing.T) {
	item := Item{
		Kind:  KindQA,
		Topic: "Economy",
		QA:    &QAFields{Question: "  What drives inflation?  "},
	}

	assert.Equal(t, "What drives inflation?", item.KeyField())
}

func TestItem_KeyField_MissingPayload(t *testing.T) {
	item := Item{Kind: KindQA, Topic: "Economy"}

	assert.Empty(t, item.KeyField())
}

func TestItem_Validate_Success(t *testing.T) {
	item := Item{
		Kind:   KindMember,
		Topic:  "members",
		Member: &MemberFields{Name: "A. Operator", Level: LevelMember},
	}

	require.NoError(t, item.Validate())
}

func TestItem_Validate_NoTopic(t *testing.T) {
	item := Item{
		Kind:      KindCriticism,
		Criticism: &CriticismFields{Title: "Budget overrun"},
	}

	assert.ErrorIs(t, item.Validate(), ErrNoTopicSelected)
}

func TestItem_Validate_MissingKeyField(t *testing.T) {
	item := Item{
		Kind:     KindDocument,
		Topic:    "Manifesto",
		Document: &DocumentFields{FileURL: "https://files.example/x.pdf"},
	}

	assert.ErrorIs(t, item.Validate(), ErrInvalidInput)
}

func TestTopic_Validate(t *testing.T) {
	assert.NoError(t, Topic{Name: "Economy"}.Validate())
	assert.ErrorIs(t, Topic{Name: "   "}.Validate(), ErrInvalidInput)
}

func TestPendingUpload_Validate(t *testing.T) {
	ok := PendingUpload{
		ID:          "tok-1",
		Path:        "/tmp/brief.pdf",
		DisplayName: "brief.pdf",
		SizeBytes:   MaxFileSize,
		Target:      "Economy",
	}
	require.NoError(t, ok.Validate())

	oversize := ok
	oversize.SizeBytes = MaxFileSize + 1
	assert.ErrorIs(t, oversize.Validate(), ErrFileTooLarge)

	orphan := ok
	orphan.Target = ""
	assert.ErrorIs(t, orphan.Validate(), ErrNoTopicSelected)
}
