package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/harrisonrobin/taskdeck/pkg/adapter"
	"github.com/harrisonrobin/taskdeck/pkg/backend"
	"github.com/harrisonrobin/taskdeck/pkg/model"
)

// TranscriptKind tags an uploaded transcript.
type TranscriptKind string

const (
	TranscriptMorning TranscriptKind = "morning"
	TranscriptEvening TranscriptKind = "evening"
	TranscriptGeneral TranscriptKind = "general"
)

// DefaultChatSession is used when a message names no session.
const DefaultChatSession = "default"

// File is an upload: its name as sent and its contents.
type File struct {
	Name    string
	Content io.Reader
}

// Submission is what the service reports after processing a day's session.
type Submission struct {
	Success bool
	Message string
	Summary string
	Tasks   []model.Task
}

// CreateSession opens the working session for date (YYYY-MM-DD).
func (c *Client) CreateSession(ctx context.Context, in backend.SessionCreate) (backend.Session, error) {
	if in.Date == "" {
		return backend.Session{}, fmt.Errorf("create session: date is required")
	}
	req, err := jsonRequest("create session", http.MethodPost, "/api/sessions/create", in)
	if err != nil {
		return backend.Session{}, err
	}
	return call(ctx, c, req, func(r io.Reader) (backend.Session, error) {
		return backend.Decode[backend.Session](r, "session")
	})
}

func (c *Client) UploadTranscript(ctx context.Context, date string, kind TranscriptKind, f File) (backend.Upload, error) {
	if kind == "" {
		kind = TranscriptGeneral
	}
	return c.upload(ctx, "upload transcript", "/api/sessions/upload-transcript", f, map[string]string{
		"session_date": date,
		"upload_type":  string(kind),
	})
}

// UploadVideo sends a screen recording to be sampled every interval
// seconds.
func (c *Client) UploadVideo(ctx context.Context, date string, intervalSeconds int, f File) (backend.Upload, error) {
	if intervalSeconds <= 0 {
		return backend.Upload{}, fmt.Errorf("upload video: interval must be positive")
	}
	return c.upload(ctx, "upload video", "/api/sessions/upload-video", f, map[string]string{
		"session_date":     date,
		"interval_seconds": strconv.Itoa(intervalSeconds),
	})
}

func (c *Client) UploadFile(ctx context.Context, date string, f File) (backend.Upload, error) {
	return c.upload(ctx, "upload file", "/api/sessions/upload-file", f, map[string]string{
		"session_date": date,
	})
}

func (c *Client) upload(ctx context.Context, op, path string, f File, fields map[string]string) (backend.Upload, error) {
	if fields["session_date"] == "" {
		return backend.Upload{}, fmt.Errorf("%s: session date is required", op)
	}
	body, contentType, err := multipartBody(fields, f)
	if err != nil {
		return backend.Upload{}, fmt.Errorf("%s: %w", op, err)
	}
	req := request{op: op, method: http.MethodPost, path: path, body: body, contentType: contentType}
	return call(ctx, c, req, func(r io.Reader) (backend.Upload, error) {
		return backend.Decode[backend.Upload](r, "upload")
	})
}

// multipartBody writes fields in a fixed order followed by the file part.
func multipartBody(fields map[string]string, f File) ([]byte, string, error) {
	if f.Content == nil {
		return nil, "", fmt.Errorf("file is required")
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range []string{"session_date", "upload_type", "interval_seconds"} {
		v, ok := fields[name]
		if !ok {
			continue
		}
		if err := w.WriteField(name, v); err != nil {
			return nil, "", err
		}
	}
	part, err := w.CreateFormFile("file", f.Name)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f.Content); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", f.Name, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// SubmitSession asks the service to turn the day's uploads into tasks.
func (c *Client) SubmitSession(ctx context.Context, date string) (Submission, error) {
	req := request{op: "submit session", method: http.MethodPost, path: "/api/sessions/submit/" + url.PathEscape(date)}
	return call(ctx, c, req, c.toSubmission)
}

// processDoc holds tasks back so they get the task contract checks.
type processDoc struct {
	backend.ProcessResult
	Tasks json.RawMessage `json:"tasks"`
}

func (c *Client) toSubmission(r io.Reader) (Submission, error) {
	doc, err := backend.Decode[processDoc](r, "session result")
	if err != nil {
		return Submission{}, err
	}
	out := Submission{
		Success: doc.Success,
		Message: doc.Message,
		Summary: doc.Summary,
	}
	if len(doc.Tasks) > 0 && string(doc.Tasks) != "null" {
		bts, err := backend.DecodeTasks(bytes.NewReader(doc.Tasks))
		if err != nil {
			return Submission{}, err
		}
		out.Tasks = adapter.TasksToDomain(bts, c.adapt...)
	}
	return out, nil
}

// SendChat sends message to the assistant and returns its reply. An empty
// session uses DefaultChatSession.
func (c *Client) SendChat(ctx context.Context, session, message string) (backend.ChatReply, error) {
	if message == "" {
		return backend.ChatReply{}, fmt.Errorf("send chat: message is required")
	}
	if session == "" {
		session = DefaultChatSession
	}
	req, err := jsonRequest("send chat message", http.MethodPost, "/api/chat/message", backend.ChatRequest{Message: message, SessionID: session})
	if err != nil {
		return backend.ChatReply{}, err
	}
	return call(ctx, c, req, func(r io.Reader) (backend.ChatReply, error) {
		return backend.Decode[backend.ChatReply](r, "chat reply")
	})
}

func (c *Client) ChatHistory(ctx context.Context, session string) ([]backend.ChatMessage, error) {
	if session == "" {
		session = DefaultChatSession
	}
	req := request{op: "load chat history", method: http.MethodGet, path: "/api/chat/history/" + url.PathEscape(session)}
	return call(ctx, c, req, func(r io.Reader) ([]backend.ChatMessage, error) {
		return backend.Decode[[]backend.ChatMessage](r, "chat message")
	})
}

// ChatSessions lists the caller's conversations with the assistant.
func (c *Client) ChatSessions(ctx context.Context) ([]backend.ChatSession, error) {
	return call(ctx, c, get("list chat sessions", "/api/chat/sessions"), func(r io.Reader) ([]backend.ChatSession, error) {
		doc, err := backend.Decode[backend.ChatSessions](r, "chat sessions")
		return doc.Sessions, err
	})
}

// ClearChatSession deletes the session's history.
func (c *Client) ClearChatSession(ctx context.Context, session string) error {
	if session == "" {
		session = DefaultChatSession
	}
	_, err := c.send(ctx, request{op: "clear chat session", method: http.MethodDelete, path: "/api/chat/session/" + url.PathEscape(session)})
	return err
}
