// Package metadata reads the document metadata collaborator format: a
// small TOML document naming encoding, language, authors, version and
// free-form template variables.
package metadata

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"typeset/lerr"
)

// Author is a document contributor, optionally with an email address.
type Author struct {
	Name string
	Mail *string
}

// Metadata is the fully-resolved result of reading a metadata document,
// with every field defaulted per the format's documented fallbacks.
type Metadata struct {
	Encoding  string
	Language  language.Tag
	Authors   []Author
	Version   string
	Variables map[string]string
}

func defaultLanguage() language.Tag {
	locale := os.Getenv("LANG")
	locale = strings.SplitN(locale, ".", 2)[0]
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.MustParse("en-US")
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.MustParse("en-US")
	}
	return tag
}

// Default returns the metadata that applies when no document is given.
func Default() *Metadata {
	return &Metadata{
		Encoding:  "utf-8",
		Language:  defaultLanguage(),
		Version:   "0.0.1",
		Variables: map[string]string{},
	}
}

// parseAuthor accepts either a bare name or a "Name <email>" form.
func parseAuthor(raw string) Author {
	parts := strings.Fields(raw)
	if len(parts) == 0 {
		return Author{Name: raw}
	}
	last := parts[len(parts)-1]
	if strings.HasPrefix(last, "<") {
		mail := strings.TrimSpace(strings.Trim(last, "<>"))
		name := strings.Join(parts[:len(parts)-1], " ")
		return Author{Name: name, Mail: &mail}
	}
	return Author{Name: strings.Join(parts, " ")}
}

func parseLanguage(raw string, log *zap.Logger) (language.Tag, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return language.Tag{}, lerr.ParseError("language value must not be empty")
	}
	tag, err := language.Parse(raw)
	if err != nil {
		log.Warn("unable to parse document language, falling back to default", zap.String("language", raw))
		return defaultLanguage(), nil
	}
	return tag, nil
}

// Read parses a metadata document. Every recognised key is optional;
// any key outside {encoding, language, authors, version, variables} is
// a ParseError.
func Read(data []byte, log *zap.Logger) (*Metadata, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, lerr.ParseError("malformed metadata document: " + err.Error())
	}

	result := Default()

	for key, value := range raw {
		switch key {
		case "encoding":
			s, ok := value.(string)
			if !ok {
				return nil, lerr.ParseError("metadata encoding must be a string")
			}
			result.Encoding = s

		case "language":
			s, ok := value.(string)
			if !ok {
				return nil, lerr.ParseError("metadata language must be a string")
			}
			tag, err := parseLanguage(s, log)
			if err != nil {
				return nil, err
			}
			result.Language = tag

		case "authors":
			arr, ok := value.([]interface{})
			if !ok {
				return nil, lerr.ParseError("metadata authors must be an array")
			}
			authors := make([]Author, 0, len(arr))
			for _, entry := range arr {
				s, ok := entry.(string)
				if !ok {
					return nil, lerr.ParseError("metadata author entries must be strings")
				}
				authors = append(authors, parseAuthor(s))
			}
			result.Authors = authors

		case "version":
			s, ok := value.(string)
			if !ok || s == "" {
				return nil, lerr.ParseError("metadata version must be a non-empty string")
			}
			result.Version = s

		case "variables":
			table, ok := value.(map[string]interface{})
			if !ok {
				return nil, lerr.ParseError("metadata variables must be a table")
			}
			vars := make(map[string]string, len(table))
			for k, v := range table {
				vars[k] = fmt.Sprintf("%v", v)
			}
			result.Variables = vars

		default:
			return nil, lerr.ParseError("unknown metadata key: " + key)
		}
	}

	return result, nil
}
