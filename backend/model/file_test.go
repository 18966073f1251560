package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFileOwnedBy(t *testing.T) {
	setupTestDB(t)

	owner := mustCreateUser(t, "owner@example.com")
	other := mustCreateUser(t, "other@example.com")
	file := mustCreateFile(t, owner.Id, "report.pdf", 1024)

	found, err := GetFileOwnedBy(file.Id, owner.Id)
	assert.NoError(t, err)
	assert.Equal(t, file.Id, found.Id)

	// Someone else's file is indistinguishable from a missing one.
	_, err = GetFileOwnedBy(file.Id, other.Id)
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = GetFileOwnedBy(999, owner.Id)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestTotalSizeForUser(t *testing.T) {
	setupTestDB(t)

	owner := mustCreateUser(t, "owner@example.com")
	other := mustCreateUser(t, "other@example.com")

	total, err := TotalSizeForUser(owner.Id)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)

	mustCreateFile(t, owner.Id, "a.bin", 100)
	mustCreateFile(t, owner.Id, "b.bin", 250)
	mustCreateFile(t, other.Id, "c.bin", 999)

	total, err = TotalSizeForUser(owner.Id)
	assert.NoError(t, err)
	assert.Equal(t, int64(350), total)
}

func TestListFilesForUser(t *testing.T) {
	setupTestDB(t)

	owner := mustCreateUser(t, "owner@example.com")
	mustCreateFile(t, owner.Id, "notes.txt", 10)
	mustCreateFile(t, owner.Id, "holiday.jpg", 20)
	mustCreateFile(t, owner.Id, "notes-2.txt", 30)

	files, err := ListFilesForUser(owner.Id, "")
	assert.NoError(t, err)
	assert.Len(t, files, 3)
	// Newest first.
	assert.Equal(t, "notes-2.txt", files[0].Filename)
	assert.Equal(t, "notes.txt", files[2].Filename)

	files, err = ListFilesForUser(owner.Id, "notes")
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	files, err = ListFilesForUser(owner.Id, "nomatch")
	assert.NoError(t, err)
	assert.Len(t, files, 0)
}
