package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGroup(t *testing.T) {
	assert.Equal(t, DefaultGroup, NormalizeGroup(""))
	assert.Equal(t, "Work", NormalizeGroup("Work"))
	assert.Equal(t, "Work/Notes", NormalizeGroup("Work/Notes/"))

	// Absolute paths keep their leading separator so validation can
	// reject them; normalization must never launder them into valid
	// relative paths.
	assert.Equal(t, "/", NormalizeGroup("/"))
	assert.Equal(t, "/Work", NormalizeGroup("/Work/"))
}

func TestNormalizeGroup_AbsoluteStaysInvalid(t *testing.T) {
	for _, group := range []string{"/", "/abs", "/Work/Notes/"} {
		err := ValidateGroup(NormalizeGroup(group))
		assert.ErrorIs(t, err, ErrInvalidPath, group)
	}
}

func TestValidateGroup(t *testing.T) {
	valid := []string{DefaultGroup, "Work", "Work/Notes", "a/b/c"}
	for _, group := range valid {
		assert.NoError(t, ValidateGroup(group), group)
	}

	invalid := []string{"", "/abs", "a//b", "a/../b", "..", ".", "a/.", `a\b`}
	for _, group := range invalid {
		err := ValidateGroup(group)
		assert.ErrorIs(t, err, ErrInvalidPath, group)
	}
}

func TestValidateNoteName(t *testing.T) {
	assert.NoError(t, ValidateNoteName("groceries"))
	assert.NoError(t, ValidateNoteName("meeting notes 2026"))

	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		err := ValidateNoteName(name)
		assert.True(t, errors.Is(err, ErrInvalidPath), name)
	}
}

func TestGroupLeafAndParent(t *testing.T) {
	assert.Equal(t, "Notes", GroupLeaf("Work/Notes"))
	assert.Equal(t, "Work", GroupLeaf("Work"))
	assert.Equal(t, DefaultGroup, GroupLeaf(DefaultGroup))

	parent, ok := GroupParent("Work/Notes/Q3")
	assert.True(t, ok)
	assert.Equal(t, "Work/Notes", parent)

	_, ok = GroupParent("Work")
	assert.False(t, ok)

	_, ok = GroupParent(DefaultGroup)
	assert.False(t, ok)
}

func TestIsSubgroup(t *testing.T) {
	assert.True(t, IsSubgroup("Work", "Work"))
	assert.True(t, IsSubgroup("Work", "Work/Notes"))
	assert.True(t, IsSubgroup("Work", "Work/Notes/Q3"))

	// Prefix on the segment level only, not raw strings.
	assert.False(t, IsSubgroup("Work", "Workshop"))
	assert.False(t, IsSubgroup("Work/Notes", "Work"))
}

func TestAncestors(t *testing.T) {
	assert.Nil(t, Ancestors(DefaultGroup))
	assert.Nil(t, Ancestors("Work"))
	assert.Equal(t, []string{"a", "a/b"}, Ancestors("a/b/c"))
}
