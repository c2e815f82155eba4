package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptor_Paths(t *testing.T) {
	tests := []struct {
		name         string
		downloadPath string
		filename     string
		stem         string
		isURL        bool
	}{
		{"relative archive", "Nova.zip", "Nova.zip", "Nova", false},
		{"url jar", "https://cdn.example.test/files/Lumen.jar", "Lumen.jar", "Lumen", true},
		{"absolute local", "/home/u/clients/Custom.jar", "Custom.jar", "Custom", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Descriptor{DownloadPath: tt.downloadPath}
			assert.Equal(t, tt.filename, d.Filename())
			assert.Equal(t, tt.stem, d.Stem())
			assert.Equal(t, tt.isURL, d.IsURL())
		})
	}
}

func TestDescriptor_AssetIndex(t *testing.T) {
	assert.Equal(t, "1.12", Descriptor{Version: "1.12.2"}.AssetIndex())
	assert.Equal(t, "1.8", Descriptor{Version: "1.8.9"}.AssetIndex())
	assert.Equal(t, "1.21", Descriptor{Version: "1.21", Variant: VariantFabric}.AssetIndex())
	assert.Equal(t, "snapshot", Descriptor{Version: "snapshot"}.AssetIndex())
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatArchive, FormatFor("libraries.zip"))
	assert.Equal(t, FormatArchive, FormatFor("ASSETS.ZIP"))
	assert.Equal(t, FormatSingleFile, FormatFor("client.jar"))
}
