package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vozativa/vozativa/internal/client/models"
	"github.com/vozativa/vozativa/internal/logging"
)

// maxErrorBody caps how much of an error response is read for the message.
const maxErrorBody = 64 << 10

// HTTPClient talks to the Voz Ativa REST API over net/http.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the service at baseURL (no trailing
// slash required). A zero timeout disables the client-side deadline.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", body, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (Session, error) {
	var s Session
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", body, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", token, nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (c *HTTPClient) ListAlerts(ctx context.Context, token string) ([]models.Report, error) {
	var reports []models.Report
	if err := c.doJSON(ctx, http.MethodGet, "/alert", token, nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *HTTPClient) DeleteAlert(ctx context.Context, token string, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/alert/"+id, token, nil, nil)
}

// CreateAlert submits a draft as multipart form data: category and
// description as text fields, location as a JSON field, and the photo (when
// present) as a file part with the MIME type inferred from its extension.
func (c *HTTPClient) CreateAlert(ctx context.Context, token string, draft models.ReportDraft) (models.Report, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("category", string(draft.Category)); err != nil {
		return models.Report{}, fmt.Errorf("encode category: %w", err)
	}
	if err := w.WriteField("description", draft.Description); err != nil {
		return models.Report{}, fmt.Errorf("encode description: %w", err)
	}

	if draft.Location != nil {
		loc, err := json.Marshal(draft.Location)
		if err != nil {
			return models.Report{}, fmt.Errorf("encode location: %w", err)
		}
		if err := w.WriteField("location", string(loc)); err != nil {
			return models.Report{}, fmt.Errorf("encode location: %w", err)
		}
	}

	if draft.PhotoPath != "" {
		if err := writePhotoPart(w, draft.PhotoPath); err != nil {
			return models.Report{}, err
		}
	}

	if err := w.Close(); err != nil {
		return models.Report{}, fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/alert", &body)
	if err != nil {
		return models.Report{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return models.Report{}, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Report{}, c.responseError(resp)
	}

	var r models.Report
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return models.Report{}, fmt.Errorf("decode create response: %w", err)
	}
	c.log.Debug(ctx, "alert created", "id", r.ID, "category", r.Category)
	return r, nil
}

// writePhotoPart streams the file at path into the "photo" form part.
func writePhotoPart(w *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		name = uuid.NewString()
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, name))
	h.Set("Content-Type", photoContentType(path))

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create photo part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy photo: %w", err)
	}
	return nil
}

// photoContentType infers the image MIME type from the file extension,
// falling back to a generic image type when the extension is unrecognized.
func photoContentType(path string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return t
	}
	return "image"
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (skipped when out is nil). token, when non-empty, is
// sent as a bearer credential.
func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// transportError classifies a failure to reach the server at all.
func (c *HTTPClient) transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// responseError turns a non-2xx response into a BackendError carrying the
// service's message field when the payload has one. 401 additionally matches
// ErrUnauthorized via errors.Is.
func (c *HTTPClient) responseError(resp *http.Response) error {
	be := &BackendError{StatusCode: resp.StatusCode}

	if b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); err == nil {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(b, &payload) == nil {
			be.Message = payload.Message
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", ErrUnauthorized, be)
	}
	return be
}
