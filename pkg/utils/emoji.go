package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EmojiStickerDataURI renders an emoji as a small square SVG and returns it
// as a data URI, mirroring the canvas rasterization the browser build used
// for emoji stickers.
func EmojiStickerDataURI(emoji string) string {
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="128" height="128"><text x="64" y="64" font-size="80" text-anchor="middle" dominant-baseline="central">%s</text></svg>`,
		escapeXML(emoji),
	)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
