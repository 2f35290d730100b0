// Package attachments decodes data-URI attachment references into named
// binary blobs ready to be committed into a repository.
package attachments

import (
	"encoding/base64"
	"strings"

	"go.uber.org/zap"

	"github.com/appforge-ci/deployer/request"
)

// Attachment is a decoded attachment. Name is filesystem-safe; OriginalName
// preserves the caller-supplied name.
type Attachment struct {
	Name         string
	OriginalName string
	MediaType    string
	Content      []byte
}

const dataURIPrefix = "data:"

// Decode processes each entry on a best-effort basis: entries with missing
// fields, non data-URI urls, or undecodable payloads are skipped without
// failing the batch.
func Decode(raw []request.RawAttachment) []Attachment {
	log := zap.L().With(zap.String("facility", "attachments"))

	var processed []Attachment
	for _, att := range raw {
		if att.Name == "" || att.URL == "" {
			log.Warn("Attachment missing required fields", zap.String("name", att.Name))
			continue
		}

		if !strings.HasPrefix(att.URL, dataURIPrefix) {
			log.Warn("Attachment is not a data URI", zap.String("name", att.Name))
			continue
		}

		header, payload, found := strings.Cut(att.URL, ",")
		if !found {
			log.Warn("Attachment data URI has no payload separator", zap.String("name", att.Name))
			continue
		}

		mediaInfo := strings.TrimPrefix(header, dataURIPrefix)
		mediaType, encoding, _ := strings.Cut(mediaInfo, ";")

		var content []byte
		if encoding == "base64" {
			decoded, err := base64.StdEncoding.DecodeString(payload)
			if err != nil {
				log.Error("Failed decoding attachment", zap.String("name", att.Name), zap.Error(err))
				continue
			}
			content = decoded
		} else {
			content = []byte(payload)
		}

		processed = append(processed, Attachment{
			Name:         SafeName(att.Name),
			OriginalName: att.Name,
			MediaType:    mediaType,
			Content:      content,
		})
		log.Info("Processed attachment", zap.String("name", att.Name), zap.Int("bytes", len(content)))
	}

	return processed
}

// SafeName reduces a caller-supplied file name to a form safe to use as a
// repository path component: path separators are stripped and any rune
// outside [A-Za-z0-9._-] becomes an underscore.
func SafeName(name string) string {
	name = name[strings.LastIndexByte(name, '/')+1:]
	name = name[strings.LastIndexByte(name, '\\')+1:]
	name = strings.Trim(name, ".")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
