package formats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGODVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    GODVersion
		wantErr bool
	}{
		{"13", GODVersion13, false},
		{"v9", GODVersion9, false},
		{"V2", GODVersion2, false},
		{"MeshRootBlock11", GODVersion11, false},
		{" 1 ", GODVersion1, false},
		{"4", 0, true},
		{"0", 0, true},
		{"14", 0, true},
		{"MeshRootBlock", 0, true},
		{"abc", 0, true},
		{"-3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGODVersion(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedGODVersion), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGODVersion_Valid(t *testing.T) {
	for _, v := range GODVersions() {
		assert.True(t, v.Valid(), "version %s", v)
	}
	for _, v := range []GODVersion{0, 4, 14, 255} {
		assert.False(t, v.Valid(), "version %s", v)
	}
	assert.Len(t, GODVersions(), 12)
}

func TestGODVersion_BlockName(t *testing.T) {
	assert.Equal(t, "MeshRootBlock13", GODVersion13.BlockName())
	assert.Equal(t, "1", GODVersion1.String())
}

func TestGODVersionPredicates(t *testing.T) {
	assert.True(t, GODAlways(GODVersion1))
	assert.True(t, GODAfter(GODVersion5)(GODVersion6))
	assert.False(t, GODAfter(GODVersion5)(GODVersion5))
	assert.True(t, GODOnly(GODVersion1)(GODVersion1))
	assert.False(t, GODOnly(GODVersion1)(GODVersion2))

	between := GODBetween(GODVersion1, GODVersion10)
	assert.False(t, between(GODVersion1))
	assert.True(t, between(GODVersion2))
	assert.True(t, between(GODVersion9))
	assert.False(t, between(GODVersion10))
}

func TestGODHeaderFields(t *testing.T) {
	tests := []struct {
		version GODVersion
		want    []string
	}{
		{GODVersion1, []string{"objectName", "boundsV1", "scale", "quickLight", "shadowPlane", "shadowRadius"}},
		{GODVersion2, []string{"objectName", "bounds", "scale", "quickLight", "shadowPlane", "envMap", "texTimer", "shadowRadius"}},
		{GODVersion6, []string{"objectName", "bounds", "scale", "quickLight", "shadowPlane", "envMap", "texTimer",
			"hasTread", "hasControl", "shadowRadius"}},
		{GODVersion8, []string{"objectName", "bounds", "scale", "quickLight", "shadowPlane", "envMap", "texTimer",
			"hasTread", "hasControl", "shadowRadius", "treadPerMeter"}},
		{GODVersion9, []string{"objectName", "bounds", "scale", "quickLight", "shadowPlane", "envMap", "texTimer",
			"hasTread", "hasControl", "shadowSemiLive", "shadowRadius", "treadPerMeter"}},
		{GODVersion11, []string{"objectName", "bounds", "scale", "quickLight", "shadowPlane", "envMap", "texTimer",
			"hasTread", "hasControl", "shadowType", "shadowRadius", "treadPerMeter"}},
		{GODVersion13, []string{"objectName", "bounds", "scale", "quickLight", "shadowPlane", "envMap", "texTimer",
			"shadowInfo", "unknown1", "hasTread", "hasControl", "shadowType", "shadowRadius", "treadPerMeter"}},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, GODHeaderFields(tt.version))
		})
	}
}

func TestGODMaterialFields(t *testing.T) {
	assert.Equal(t, []string{"name", "colors", "texture"}, GODMaterialFields(GODVersion1))
	assert.Equal(t, []string{"name", "colors", "legacy", "texture0", "texture1", "textureFlags"}, GODMaterialFields(GODVersion9))
	assert.Equal(t, []string{"name", "colors", "texture0", "texture1", "textureFlags"}, GODMaterialFields(GODVersion10))
}
