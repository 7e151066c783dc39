package extract

import (
	"github.com/hyperjump/yomitori/internal/models"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// readMetadata reads page count and the optional Info dictionary fields.
// Every field is independently optional; a failure to open the file is
// logged and yields nil, never an error.
func (e *Extractor) readMetadata(path string) *models.DocumentMetadata {
	f, r, err := pdf.Open(path)
	if err != nil {
		e.logger.Warn("metadata read failed", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer f.Close()

	meta := &models.DocumentMetadata{PageCount: r.NumPage()}
	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return meta
	}
	meta.Title = infoString(info, "Title")
	meta.Author = infoString(info, "Author")
	meta.Subject = infoString(info, "Subject")
	meta.Creator = infoString(info, "Creator")
	meta.Producer = infoString(info, "Producer")
	meta.CreationDate = infoString(info, "CreationDate")
	meta.ModificationDate = infoString(info, "ModDate")
	return meta
}

// CanOpen reports whether the plain reader can open the file at path.
// Used as a pre-flight gate before full processing.
func (e *Extractor) CanOpen(path string) bool {
	f, _, err := pdf.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func infoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.Kind() != pdf.String {
		return ""
	}
	return v.RawString()
}
