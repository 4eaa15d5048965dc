package buildcfg

import (
	"path"
	"regexp"
	"strings"
)

// Naming holds the output file name templates. Placeholders: [name],
// [hash], [ext] (no dot) and [extname] (with dot).
type Naming struct {
	Entry      string `json:"entryFileNames" yaml:"entryFileNames"`
	Chunk      string `json:"chunkFileNames" yaml:"chunkFileNames"`
	Asset      string `json:"assetFileNames" yaml:"assetFileNames"`
	ImageAsset string `json:"imageAssetFileNames" yaml:"imageAssetFileNames"`
}

// DefaultNaming returns the content-hashed layout used for production builds.
func DefaultNaming() Naming {
	return Naming{
		Entry:      "js/[name]-[hash].js",
		Chunk:      "js/[name]-[hash].js",
		Asset:      "[ext]/[name]-[hash].[ext]",
		ImageAsset: "img/[name]-[hash].[ext]",
	}
}

var imageExts = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true,
	"svg": true, "webp": true, "ico": true, "avif": true,
}

// IsImage reports whether a file name has one of the bucketed image extensions.
func IsImage(file string) bool {
	return imageExts[strings.ToLower(strings.TrimPrefix(path.Ext(file), "."))]
}

// RenderName fills a naming template.
func RenderName(template, name, hash, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	extname := ""
	if ext != "" {
		extname = "." + ext
	}
	return strings.NewReplacer(
		"[name]", name,
		"[hash]", hash,
		"[extname]", extname,
		"[ext]", ext,
	).Replace(template)
}

// AssetFileName names an emitted asset. Images share the img/ bucket;
// everything else is grouped by its extension.
func (n Naming) AssetFileName(file, hash string) string {
	base := path.Base(file)
	ext := path.Ext(base)
	name := strings.TrimSuffix(base, ext)
	tmpl := n.Asset
	if IsImage(base) {
		tmpl = n.ImageAsset
	}
	return RenderName(tmpl, name, hash, strings.ToLower(ext))
}

// ChunkFileName names a split chunk.
func (n Naming) ChunkFileName(name, hash string) string {
	return RenderName(n.Chunk, name, hash, "js")
}

// EntryFileName names an entry chunk.
func (n Naming) EntryFileName(name, hash string) string {
	return RenderName(n.Entry, name, hash, "js")
}

var hashedNameRE = regexp.MustCompile(`-[A-Za-z0-9_-]{8,}\.[A-Za-z0-9]+$`)

// IsHashed reports whether an emitted file name carries a content hash and
// can therefore be cached forever.
func IsHashed(file string) bool {
	return hashedNameRE.MatchString(path.Base(file))
}
