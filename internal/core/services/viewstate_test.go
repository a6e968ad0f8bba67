package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewState_StartsInComposeMode(t *testing.T) {
	v := NewViewState()

	assert.Equal(t, ModeCompose, v.Mode())
	assert.Empty(t, v.SelectedTopic())
	assert.Empty(t, v.SelectedItem())
	assert.Zero(t, v.OpenCount())
}

func TestViewState_SelectTopicResetsSelection(t *testing.T) {
	v := NewViewState()
	v.SelectTopic("Economy")
	v.SelectItem("item-1")
	v.Toggle("item-1")
	v.Toggle("item-2")
	v.SetMode(ModeBrowse)

	v.SelectTopic("Health")

	assert.Equal(t, "Health", v.SelectedTopic())
	assert.Empty(t, v.SelectedItem())
	assert.Zero(t, v.OpenCount())
	assert.False(t, v.IsOpen("item-1"))
	assert.Equal(t, ModeCompose, v.Mode())
}

func TestViewState_Toggle(t *testing.T) {
	v := NewViewState()

	v.Toggle("item-1")
	assert.True(t, v.IsOpen("item-1"))
	assert.Equal(t, 1, v.OpenCount())

	v.Toggle("item-1")
	assert.False(t, v.IsOpen("item-1"))
	assert.Zero(t, v.OpenCount())
}

func TestViewState_ToggleIndependentPanels(t *testing.T) {
	v := NewViewState()

	v.Toggle("a")
	v.Toggle("b")

	assert.True(t, v.IsOpen("a"))
	assert.True(t, v.IsOpen("b"))
	assert.Equal(t, 2, v.OpenCount())
}

func TestViewState_Reset(t *testing.T) {
	v := NewViewState()
	v.SelectTopic("Economy")
	v.SelectItem("item-1")
	v.Toggle("item-1")
	v.SetMode(ModeBrowse)

	v.Reset()

	assert.Empty(t, v.SelectedTopic())
	assert.Empty(t, v.SelectedItem())
	assert.Zero(t, v.OpenCount())
	assert.Equal(t, ModeCompose, v.Mode())
}
