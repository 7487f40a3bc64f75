package pipeline

import (
	"bytes"
	"encoding/base64"
	"path/filepath"

	"go.trai.ch/bundle/internal/core/domain"
)

const dataURLPrefix = "data:application/json;base64,"

// writeMap finalizes a tracked source map. External maps are left for the
// dest stage; inline maps become a data URL comment.
func writeMap(asset *domain.Asset, maps domain.SourceMaps) {
	if len(asset.SourceMap) == 0 {
		return
	}
	if maps.External {
		asset.LinkMap = true
		return
	}
	url := dataURLPrefix + base64.StdEncoding.EncodeToString(asset.SourceMap)
	asset.Contents = appendMapComment(asset.Contents, asset.Base, url)
	asset.SourceMap = nil
}

// linkMap turns a pending external map into a sibling file named after the
// final output name. The comment refers to the map by its base name.
func linkMap(asset *domain.Asset) {
	if !asset.LinkMap || len(asset.SourceMap) == 0 {
		return
	}
	name := asset.Base + domain.MapSuffix
	asset.Contents = appendMapComment(asset.Contents, asset.Base, filepath.Base(name))
	asset.Extra = append(asset.Extra, domain.Asset{Base: name, Contents: asset.SourceMap})
	asset.SourceMap = nil
	asset.LinkMap = false
}

func appendMapComment(code []byte, base, url string) []byte {
	out := append(bytes.TrimRight(bytes.Clone(code), "\n"), '\n')
	if filepath.Ext(base) == ".css" {
		return append(out, "/*# sourceMappingURL="+url+" */\n"...)
	}
	return append(out, "//# sourceMappingURL="+url+"\n"...)
}
