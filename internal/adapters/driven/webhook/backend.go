package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
)

// Webhook endpoint names, one per backend operation.
const (
	epFetchTopics = "meet-fetch-topics"
	epAddTopic    = "meet-add-topics"
	epDeleteTopic = "meet-delete-topic"

	epFetchQA      = "meet-fetch-qa"
	epUpdateQAAns  = "meet-update-qa-answer"
	epDeleteQAAns  = "meet-delete-qa-answer"
	epDeleteQA     = "meet-delete-qa"
	epTriggerEmbed = "meet-embed-qa"

	epFetchCriticisms      = "meet-fetch-criticisms"
	epSaveCriticism        = "meet-save-criticism"
	epUpdateCriticism      = "meet-update-criticism"
	epUpdateCriticismState = "meet-update-criticism-status"
	epDeleteCriticism      = "meet-delete-criticism"

	epFetchMembers = "meet-fetch-party-members"
	epAddMember    = "meet-add-party-member"
	epUpdateMember = "meet-update-party-member"
	epDeleteMember = "meet-delete-party-member"

	epFetchDocuments = "meet-fetch-documents"
	epUploadDocument = "meet-upload-document"
	epDeleteDocument = "meet-delete-document"
)

var _ driven.Backend = (*Client)(nil)

// ListTopics fetches the raw topic list payload.
func (c *Client) ListTopics(ctx context.Context) (any, error) {
	return c.getJSON(ctx, epFetchTopics, nil)
}

// AddTopic creates a topic by name.
func (c *Client) AddTopic(ctx context.Context, name string) error {
	_, err := c.sendJSON(ctx, http.MethodPost, epAddTopic, map[string]any{
		"action": "add_topic",
		"name":   name,
	})
	return err
}

// DeleteTopic removes a topic by name.
func (c *Client) DeleteTopic(ctx context.Context, name string) error {
	_, err := c.sendJSON(ctx, http.MethodDelete, epDeleteTopic, map[string]any{
		"action": "delete_topic",
		"name":   name,
	})
	return err
}

// ListItems fetches the raw item list payload for a topic. Member
// records are not topic-scoped on the backend; the topic is ignored.
func (c *Client) ListItems(ctx context.Context, kind domain.Kind, topic string) (any, error) {
	switch kind {
	case domain.KindQA:
		return c.getJSON(ctx, epFetchQA, topicQuery(topic))
	case domain.KindCriticism:
		return c.getJSON(ctx, epFetchCriticisms, topicQuery(topic))
	case domain.KindMember:
		return c.getJSON(ctx, epFetchMembers, nil)
	case domain.KindDocument:
		return c.getJSON(ctx, epFetchDocuments, topicQuery(topic))
	default:
		return nil, fmt.Errorf("list %q: %w", kind, domain.ErrUnsupportedKind)
	}
}

// SaveItem creates an item. Criticisms answered by a staged file go
// multipart; everything else is JSON. QA entries and documents are
// produced by the backend pipeline and cannot be created here.
func (c *Client) SaveItem(ctx context.Context, item domain.Item, file *domain.PendingUpload) (any, error) {
	switch item.Kind {
	case domain.KindCriticism:
		return c.saveCriticism(ctx, item, file)
	case domain.KindMember:
		return c.saveMember(ctx, item)
	default:
		return nil, fmt.Errorf("save %q: %w", item.Kind, domain.ErrUnsupportedKind)
	}
}

func (c *Client) saveCriticism(ctx context.Context, item domain.Item, file *domain.PendingUpload) (any, error) {
	cr := item.Criticism
	if cr == nil {
		return nil, fmt.Errorf("save criticism: %w", domain.ErrInvalidInput)
	}

	if file != nil {
		fields := map[string]string{
			"topic":        item.Topic,
			"title":        cr.Title,
			"detail":       cr.Detail,
			"source":       cr.Source,
			"severity":     cr.Severity,
			"tag":          cr.Tag,
			"status":       cr.Status,
			"entryMode":    string(domain.AnswerDocument),
			"documentName": file.DisplayName,
		}
		body, contentType, err := multipartBody(fields, "document", file.Path, file.DisplayName)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", epSaveCriticism, err)
		}
		return c.do(ctx, http.MethodPost, epSaveCriticism, nil, body, contentType)
	}

	notes := make([]map[string]any, 0, len(cr.Notes))
	for _, n := range cr.Notes {
		notes = append(notes, map[string]any{"value": n})
	}
	return c.sendJSON(ctx, http.MethodPost, epSaveCriticism, map[string]any{
		"topic":     item.Topic,
		"title":     cr.Title,
		"detail":    cr.Detail,
		"source":    cr.Source,
		"severity":  cr.Severity,
		"tag":       cr.Tag,
		"status":    cr.Status,
		"entryMode": string(domain.AnswerText),
		"notes":     notes,
	})
}

func (c *Client) saveMember(ctx context.Context, item domain.Item) (any, error) {
	m := item.Member
	if m == nil {
		return nil, fmt.Errorf("save member: %w", domain.ErrInvalidInput)
	}
	return c.sendJSON(ctx, http.MethodPost, epAddMember, map[string]any{
		"name":   m.Name,
		"role":   m.Role,
		"sector": m.Sector,
		"phone":  m.Phone,
		"email":  m.Email,
		"level":  m.Level,
		"status": m.Status,
	})
}

// UpdateItemField patches a single field of an item. QA entries use
// the per-answer endpoints: field "answer" carries {"index","value"},
// field "removeAnswer" carries the index to drop.
func (c *Client) UpdateItemField(ctx context.Context, kind domain.Kind, topic, id, field string, value any) error {
	switch kind {
	case domain.KindQA:
		return c.updateQAField(ctx, topic, id, field, value)
	case domain.KindCriticism:
		if field == "status" {
			_, err := c.sendJSON(ctx, http.MethodPost, epUpdateCriticismState, map[string]any{
				"id":     id,
				"status": value,
			})
			return err
		}
		_, err := c.sendJSON(ctx, http.MethodPost, epUpdateCriticism, map[string]any{
			"id":    id,
			"topic": topic,
			field:   value,
		})
		return err
	case domain.KindMember:
		_, err := c.sendJSON(ctx, http.MethodPost, epUpdateMember, map[string]any{
			"id":    id,
			"field": field,
			"value": value,
		})
		return err
	default:
		return fmt.Errorf("update %q: %w", kind, domain.ErrUnsupportedKind)
	}
}

func (c *Client) updateQAField(ctx context.Context, topic, id, field string, value any) error {
	switch field {
	case "answer":
		edit, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("update qa answer: %w", domain.ErrInvalidInput)
		}
		_, err := c.sendJSON(ctx, http.MethodPost, epUpdateQAAns, map[string]any{
			"id":          id,
			"answerIndex": edit["index"],
			"newValue":    edit["value"],
			"topic":       topic,
		})
		return err
	case "removeAnswer":
		_, err := c.sendJSON(ctx, http.MethodPost, epDeleteQAAns, map[string]any{
			"id":          id,
			"answerIndex": value,
			"topic":       topic,
		})
		return err
	default:
		return fmt.Errorf("update qa %q: %w", field, domain.ErrUnsupportedKind)
	}
}

// DeleteItem removes an item. Committed documents are deleted through
// DeleteFile, which carries the file identity.
func (c *Client) DeleteItem(ctx context.Context, kind domain.Kind, topic, id string) error {
	switch kind {
	case domain.KindQA:
		_, err := c.sendJSON(ctx, http.MethodPost, epDeleteQA, map[string]any{
			"id":    id,
			"topic": topic,
		})
		return err
	case domain.KindCriticism:
		_, err := c.sendJSON(ctx, http.MethodDelete, epDeleteCriticism, map[string]any{
			"id":    id,
			"topic": topic,
		})
		return err
	case domain.KindMember:
		_, err := c.sendJSON(ctx, http.MethodDelete, epDeleteMember, map[string]any{
			"id": id,
		})
		return err
	default:
		return fmt.Errorf("delete %q: %w", kind, domain.ErrUnsupportedKind)
	}
}

// UploadFile commits a staged upload and returns the persisted file
// identity assigned by the backend.
func (c *Client) UploadFile(ctx context.Context, up domain.PendingUpload) (driven.UploadResult, error) {
	fields := map[string]string{
		"topic": up.Target,
		"name":  up.DisplayName,
	}
	body, contentType, err := multipartBody(fields, "file", up.Path, up.DisplayName)
	if err != nil {
		return driven.UploadResult{}, fmt.Errorf("%s: %w", epUploadDocument, err)
	}
	ack, err := c.do(ctx, http.MethodPost, epUploadDocument, nil, body, contentType)
	if err != nil {
		return driven.UploadResult{}, err
	}

	result := driven.UploadResult{FileName: up.DisplayName}
	if m, ok := firstRecord(ack); ok {
		if v := pickString(m, "fileUrl", "file_url", "url"); v != "" {
			result.FileURL = v
		}
		if v := pickString(m, "fileName", "file_name", "name"); v != "" {
			result.FileName = v
		}
	}
	return result, nil
}

// DeleteFile removes a committed document file.
func (c *Client) DeleteFile(ctx context.Context, target, fileName, fileURL string) error {
	_, err := c.sendJSON(ctx, http.MethodDelete, epDeleteDocument, map[string]any{
		"topic":    target,
		"fileName": fileName,
		"fileUrl":  fileURL,
	})
	return err
}

// TriggerEmbed fires the embedding refresh hook.
func (c *Client) TriggerEmbed(ctx context.Context) error {
	_, err := c.getJSON(ctx, epTriggerEmbed, nil)
	return err
}

func topicQuery(topic string) url.Values {
	if topic == "" {
		return nil
	}
	return url.Values{"topic": {topic}}
}

// multipartBody builds a multipart form carrying the given fields and
// one file read from disk.
func multipartBody(fields map[string]string, fileField, filePath, fileName string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy %s: %w", filePath, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// firstRecord digs a single object out of an ack payload: the object
// itself, or the first element of an array, or a wrapped "data".
func firstRecord(v any) (map[string]any, bool) {
	switch vv := v.(type) {
	case map[string]any:
		if inner, ok := vv["data"]; ok {
			if m, found := firstRecord(inner); found {
				return m, true
			}
		}
		return vv, true
	case []any:
		if len(vv) > 0 {
			return firstRecord(vv[0])
		}
	}
	return nil, false
}

func pickString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
