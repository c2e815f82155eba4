package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescriptors_MapsWireFields(t *testing.T) {
	data := []byte(`[
		{"id": 7, "name": "Nova", "filename": "Nova.zip", "main_class": "net.minecraft.client.main.Main",
		 "version": "1.12.2", "internal": true, "working": false, "fabric": false, "show_in_loader": true},
		{"id": 9, "name": "Lumen", "filename": "lumen.jar", "main_class": "ignored",
		 "version": "1.21", "fabric": true, "show_in_loader": false}
	]`)

	got, issues, err := ParseDescriptors(data)
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, got, 2)

	nova := got[0]
	assert.Equal(t, 7, nova.ID)
	assert.Equal(t, "Nova", nova.Name)
	assert.Equal(t, "Nova.zip", nova.DownloadPath)
	assert.Equal(t, "net.minecraft.client.main.Main", nova.EntryPoint)
	assert.Equal(t, FormatArchive, nova.Format)
	assert.Equal(t, VariantStandard, nova.Variant)
	assert.True(t, nova.Visible)
	assert.False(t, nova.Enabled)
	assert.True(t, nova.Internal)
	assert.False(t, nova.IsCustom)

	lumen := got[1]
	assert.Equal(t, FormatSingleFile, lumen.Format)
	assert.Equal(t, VariantFabric, lumen.Variant)
	assert.Empty(t, lumen.EntryPoint)
	assert.False(t, lumen.Visible)
	assert.True(t, lumen.Enabled, "missing working flag defaults to true")
}

func TestParseDescriptors_RejectsMalformedEntries(t *testing.T) {
	data := []byte(`[
		{"id": 1, "name": "Good", "filename": "good.jar", "version": "1.12.2"},
		{"id": 2, "name": "NoFile", "version": "1.12.2"},
		{"id": "three", "name": "BadID", "filename": "bad.jar", "version": "1.12.2"},
		{"id": 4, "name": "BadFormat", "filename": "x.jar", "version": "1.0", "format": "tarball"}
	]`)

	got, issues, err := ParseDescriptors(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Good", got[0].Name)

	indexes := map[int]bool{}
	for _, issue := range issues {
		indexes[issue.Index] = true
		assert.NotEmpty(t, issue.Error())
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, indexes)
}

func TestParseDescriptors_ExplicitFormat(t *testing.T) {
	data := []byte(`[{"id": 1, "name": "A", "filename": "a.bin", "version": "1", "format": "archive"}]`)

	got, issues, err := ParseDescriptors(data)
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, got, 1)
	assert.Equal(t, FormatArchive, got[0].Format)
}

func TestParseDescriptors_NotAnArray(t *testing.T) {
	_, _, err := ParseDescriptors([]byte(`{"clients": []}`))
	assert.Error(t, err)

	_, _, err = ParseDescriptors([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseDescriptors_Empty(t *testing.T) {
	got, issues, err := ParseDescriptors([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, issues)
}
