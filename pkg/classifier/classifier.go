// Package classifier maps filenames to destination folder labels based on
// their extension.
package classifier

import (
	"path/filepath"
	"strings"
)

// NoExtensionLabel is the folder label for files without an extension.
const NoExtensionLabel = "NO_EXTENSION"

// typeFolders maps lowercased extensions to folder labels. Extensions not
// listed here fall back to the uppercased extension text itself.
var typeFolders = map[string]string{
	// Documents
	".pdf":  "PDF",
	".doc":  "WORD",
	".docx": "WORD",
	".odt":  "WORD",
	".xls":  "EXCEL",
	".xlsx": "EXCEL",
	".csv":  "CSV",
	".ppt":  "POWERPOINT",
	".pptx": "POWERPOINT",
	".txt":  "TEXT",
	".md":   "MARKDOWN",
	".rtf":  "TEXT",

	// Images
	".jpg":  "JPEG",
	".jpeg": "JPEG",
	".png":  "PNG",
	".gif":  "GIF",
	".bmp":  "BMP",
	".tif":  "TIFF",
	".tiff": "TIFF",
	".webp": "WEBP",
	".svg":  "SVG",
	".heic": "HEIC",

	// Audio / video
	".mp3":  "AUDIO",
	".wav":  "AUDIO",
	".flac": "AUDIO",
	".m4a":  "AUDIO",
	".mp4":  "VIDEO",
	".mov":  "VIDEO",
	".avi":  "VIDEO",
	".mkv":  "VIDEO",
	".webm": "VIDEO",

	// Archives
	".zip": "ARCHIVE",
	".tar": "ARCHIVE",
	".gz":  "ARCHIVE",
	".bz2": "ARCHIVE",
	".7z":  "ARCHIVE",
	".rar": "ARCHIVE",

	// Code
	".py":   "PYTHON",
	".go":   "GO",
	".js":   "JAVASCRIPT",
	".ts":   "TYPESCRIPT",
	".java": "JAVA",
	".c":    "C",
	".cpp":  "CPP",
	".h":    "C",
	".rs":   "RUST",
	".rb":   "RUBY",
	".sh":   "SHELL",
	".sql":  "SQL",

	// Data
	".json": "JSON",
	".xml":  "XML",
	".yaml": "YAML",
	".yml":  "YAML",
	".html": "HTML",
	".css":  "CSS",
}

// TypeFolder returns the folder label for a filename. Known extensions map
// through the static table, unknown extensions map to their uppercased text
// without the dot, and files without an extension map to NoExtensionLabel.
func TypeFolder(filename string) string {
	ext := filepath.Ext(filename)
	// filepath.Ext(".gitignore") returns ".gitignore" — dotfiles without a
	// further extension count as having none.
	if ext == "" || ext == filename {
		return NoExtensionLabel
	}

	if label, ok := typeFolders[strings.ToLower(ext)]; ok {
		return label
	}

	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}
