// Package normalise maps arbitrary backend payloads into canonical
// domain records. The backend returns loosely typed, inconsistently
// shaped JSON: plain arrays, arrays wrapped under conventional keys,
// lone records, or garbage. Normalisation never fails; it degrades to
// empty or default values and silently drops records missing their
// kind's mandatory field.
package normalise

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
)

// wrapperKeys are tried in order when a payload is an object wrapping
// the actual row array.
var wrapperKeys = []string{"topics", "data", "items", "rows", "members"}

// Topics normalises a topic list payload. Duplicate names are
// dropped; the first occurrence wins so display order is stable.
func Topics(raw any) []domain.Topic {
	seen := make(map[string]bool)
	out := []domain.Topic{}
	for _, row := range rows(raw) {
		// A bare string is a topic name on its own.
		if s, ok := row.(string); ok {
			if name := strings.TrimSpace(s); name != "" && !seen[name] {
				seen[name] = true
				out = append(out, domain.Topic{Name: name})
			}
			continue
		}
		rec, ok := row.(map[string]any)
		if !ok {
			continue
		}
		name := firstString(rec, "topic", "name", "label", "title")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, domain.Topic{
			Name: name,
			Tag:  firstString(rec, "tag", "badge"),
		})
	}
	return out
}

// List normalises an item list payload for the given kind.
// Records lacking the kind's mandatory identifying field are dropped;
// one bad record never fails the batch.
func List(raw any, kind domain.Kind) []domain.Item {
	out := []domain.Item{}
	for idx, row := range rows(raw) {
		rec, ok := row.(map[string]any)
		if !ok {
			continue
		}
		item := one(rec, kind, idx)
		if item == nil {
			continue
		}
		out = append(out, *item)
	}
	return out
}

// One normalises a single record payload. A wrapped or array payload
// yields its first usable record. Returns nil when nothing usable is
// present.
func One(raw any, kind domain.Kind) *domain.Item {
	for idx, row := range rows(raw) {
		rec, ok := row.(map[string]any)
		if !ok {
			continue
		}
		if item := one(rec, kind, idx); item != nil {
			return item
		}
	}
	return nil
}

func one(rec map[string]any, kind domain.Kind, idx int) *domain.Item {
	item := domain.Item{
		ID:        firstString(rec, "id", "_id"),
		Topic:     firstString(rec, "topic", "category"),
		Kind:      kind,
		CreatedAt: firstTime(rec, "createdAt", "created_at", "date"),
	}
	if item.ID == "" {
		item.ID = fmt.Sprintf("%s-%d", kind, idx)
	}

	switch kind {
	case domain.KindQA:
		qa := qaFields(rec)
		if qa == nil {
			return nil
		}
		item.QA = qa
	case domain.KindCriticism:
		cr := criticismFields(rec)
		if cr == nil {
			return nil
		}
		item.Criticism = cr
	case domain.KindDocument:
		doc := documentFields(rec)
		if doc == nil {
			return nil
		}
		if item.Topic == "" {
			item.Topic = doc.Category
		}
		item.Document = doc
	case domain.KindMember:
		m := memberFields(rec)
		if m == nil {
			return nil
		}
		item.Member = m
	default:
		return nil
	}
	return &item
}

func qaFields(rec map[string]any) *domain.QAFields {
	question := firstString(rec, "question", "q")
	if question == "" {
		return nil
	}
	mode := answerMode(rec)
	qa := &domain.QAFields{
		Question: question,
		Summary:  firstString(rec, "summary_ans", "shortAnswer", "short_answer", "summary"),
		Mode:     mode,
	}
	if mode == domain.AnswerDocument {
		qa.DocumentURL = documentURL(first(rec, "answers", "answer", "document_url", "fileUrl"))
	} else {
		qa.TextAnswers = textAnswers(first(rec, "answers", "answer"))
	}
	return qa
}

func criticismFields(rec map[string]any) *domain.CriticismFields {
	title := firstString(rec, "title")
	if title == "" {
		return nil
	}
	mode := answerMode(rec)
	cr := &domain.CriticismFields{
		Title:    title,
		Detail:   firstString(rec, "detail", "summary"),
		Source:   firstString(rec, "source"),
		Severity: defaulted(firstString(rec, "severity"), domain.SeverityMedium),
		Tag:      defaulted(firstString(rec, "tag"), domain.TagCriticism),
		Status:   defaulted(firstString(rec, "status"), domain.StatusPending),
		Mode:     mode,
	}
	if mode == domain.AnswerDocument {
		cr.DocumentURL = documentURL(first(rec, "answers", "answer", "document_url", "fileUrl"))
	} else {
		cr.Notes = textAnswers(first(rec, "answers", "notes"))
	}
	return cr
}

func documentFields(rec map[string]any) *domain.DocumentFields {
	name := firstString(rec, "fileName", "file_name", "name")
	if name == "" {
		return nil
	}
	return &domain.DocumentFields{
		FileName:   name,
		FileURL:    firstString(rec, "fileUrl", "file_url", "url"),
		Category:   firstString(rec, "category", "topic"),
		UploadedAt: firstTime(rec, "uploadedAt", "uploaded_at", "createdAt"),
	}
}

func memberFields(rec map[string]any) *domain.MemberFields {
	name := firstString(rec, "name")
	if name == "" {
		return nil
	}
	return &domain.MemberFields{
		Name:   name,
		Role:   firstString(rec, "role"),
		Sector: firstString(rec, "sector"),
		Phone:  firstString(rec, "phone"),
		Email:  firstString(rec, "email"),
		Level:  defaulted(firstString(rec, "level"), domain.LevelMember),
		Status: defaulted(firstString(rec, "status"), domain.MemberActive),
	}
}

// rows coerces a payload into a slice of candidate records.
func rows(raw any) []any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return v
	case map[string]any:
		for _, key := range wrapperKeys {
			if wrapped, ok := v[key]; ok {
				if arr, ok := wrapped.([]any); ok {
					return arr
				}
			}
		}
		// A lone record.
		return []any{v}
	default:
		return nil
	}
}

// answerMode reads the text/document discriminator, defaulting to text.
func answerMode(rec map[string]any) domain.AnswerMode {
	mode := strings.ToLower(firstString(rec, "inputType", "input_type", "answerMode"))
	if mode == string(domain.AnswerDocument) {
		return domain.AnswerDocument
	}
	return domain.AnswerText
}

// textAnswers parses the answers field, which may arrive as an array
// of strings or {value}/{text} objects, a JSON-encoded string, or a
// delimited plain string. Final fallback is an empty list.
func textAnswers(v any) []string {
	switch a := v.(type) {
	case []any:
		return answerStrings(a)
	case string:
		s := strings.TrimSpace(a)
		if s == "" {
			return nil
		}
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err == nil {
			if arr, ok := parsed.([]any); ok {
				return answerStrings(arr)
			}
			return []string{s}
		}
		var out []string
		for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '|' }) {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

func answerStrings(arr []any) []string {
	var out []string
	for _, el := range arr {
		switch e := el.(type) {
		case string:
			if s := strings.TrimSpace(e); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			if s := firstString(e, "value", "text"); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// documentURL extracts a document URL from a string or a record
// carrying url/fileUrl.
func documentURL(v any) string {
	switch u := v.(type) {
	case string:
		return strings.TrimSpace(u)
	case map[string]any:
		return firstString(u, "url", "fileUrl")
	default:
		return ""
	}
}

// first returns the first present value among the aliases.
func first(rec map[string]any, aliases ...string) any {
	for _, key := range aliases {
		if v, ok := rec[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstString returns the first present, non-empty string value among
// the aliases. Numbers are stringified since some backends return
// numeric ids.
func firstString(rec map[string]any, aliases ...string) string {
	for _, key := range aliases {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		case float64:
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", s), "0"), ".")
		}
	}
	return ""
}

func firstTime(rec map[string]any, aliases ...string) time.Time {
	raw := firstString(rec, aliases...)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func defaulted(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
