// Package viewer owns the single live view session: it drives loads,
// applies the server override, mounts the rendering widget and records
// successful imports in the recall list.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/google/uuid"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
	"github.com/GabrielNunesIT/swagger-preview/internal/loader"
	"github.com/GabrielNunesIT/swagger-preview/internal/override"
	"github.com/GabrielNunesIT/swagger-preview/internal/parser"
)

// ErrUnsupportedMessage is returned for host messages of unknown kind.
var ErrUnsupportedMessage = errors.New("unsupported host message")

// ErrNotExportable is returned when the session holds a location the
// widget resolves by itself, so there is no document to export.
var ErrNotExportable = errors.New("spec was not parsed locally and cannot be exported")

// SourceLoader resolves import requests.
type SourceLoader interface {
	Load(ctx context.Context, req domain.ImportRequest) (*loader.Result, error)
}

// History is the part of the recall list the coordinator needs.
type History interface {
	Add(ctx context.Context, entry domain.HistoryEntry) ([]domain.HistoryEntry, error)
	Get(ctx context.Context, createdAt int64) (domain.HistoryEntry, bool, error)
}

// Coordinator is the view state machine. All methods are safe for
// concurrent use; the lock is never held across a fetch or a history write.
type Coordinator struct {
	loader   SourceLoader
	history  History
	renderer domain.Renderer
	notifier Notifier
	log      logger.ILogger

	mu               sync.Mutex
	state            State
	generation       uint64
	session          *Session
	pendingSelection string
}

// New creates a coordinator in StateInput. notifier may be nil.
func New(l SourceLoader, h History, r domain.Renderer, n Notifier, log logger.ILogger) *Coordinator {
	if n == nil {
		n = NotifierFunc(func(Level, string) {})
	}

	return &Coordinator{
		loader:   l,
		history:  h,
		renderer: r,
		notifier: n,
		log:      log,
	}
}

// Submit loads req and, on success, shows it with the given server
// override and records it in the recall list. No override carries over
// from a previous session. A result that arrives after a newer load or a
// Back is dropped with domain.ErrSuperseded.
func (c *Coordinator) Submit(ctx context.Context, req domain.ImportRequest, serverOverride string) (Snapshot, error) {
	gen := c.begin()

	res, err := c.loader.Load(ctx, req)

	snap, record, err := c.complete(ctx, gen, req, serverOverride, res, err, false)
	if record {
		c.record(ctx, req, res)
	}

	return snap, err
}

// Recall replays the recall entry created at createdAt. Locations are
// fetched again; text entries are parsed from the stored raw value. The
// stored label becomes the title and the list is left untouched.
func (c *Coordinator) Recall(ctx context.Context, createdAt int64, serverOverride string) (Snapshot, error) {
	entry, ok, err := c.history.Get(ctx, createdAt)
	if err != nil {
		return c.Snapshot(), err
	}
	if !ok {
		return c.Snapshot(), domain.ErrEntryNotFound
	}

	req := entry.Request()
	gen := c.begin()

	res, err := c.loader.Load(ctx, req)

	snap, _, err := c.complete(ctx, gen, req, serverOverride, res, err, true)

	return snap, err
}

// HandleHostMessage treats an ImportSelection event as a selected-text import.
func (c *Coordinator) HandleHostMessage(ctx context.Context, msg HostMessage) (Snapshot, error) {
	if msg.Kind != HostMessageImportSelection {
		return c.Snapshot(), fmt.Errorf("%w: %q", ErrUnsupportedMessage, msg.Kind)
	}
	if strings.TrimSpace(msg.Text) == "" {
		return c.Snapshot(), domain.ErrEmptySource
	}

	c.mu.Lock()
	c.pendingSelection = msg.Text
	c.mu.Unlock()

	return c.Submit(ctx, domain.ImportRequest{Kind: domain.SourceSelection, Value: msg.Text}, "")
}

// ChangeOverride re-renders the live session with a new server override,
// or with the document's own servers when value is empty. A render failure
// restores the previous override.
func (c *Coordinator) ChangeOverride(ctx context.Context, value string) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateViewer || c.session == nil {
		return c.snapshotLocked(), domain.ErrNoSession
	}

	value = strings.TrimSpace(value)
	c.checkOverride(value)

	previous := c.session.Override
	c.session.Override = value

	if err := c.renderLocked(ctx, c.session); err != nil {
		c.session.Override = previous
		if rerr := c.renderLocked(ctx, c.session); rerr != nil {
			c.log.Errorf("Restoring previous view failed: %v", rerr)
			c.teardownLocked()
		}
		c.notifier.Notify(LevelError, err.Error())
		return c.snapshotLocked(), err
	}

	if value != "" {
		c.notifier.Notify(LevelSuccess, "Server overridden")
	} else {
		c.notifier.Notify(LevelSuccess, "Using spec default servers")
	}

	return c.snapshotLocked(), nil
}

// Back destroys the live session, discarding its override, and returns
// to StateInput. A load still in flight is abandoned.
func (c *Coordinator) Back() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.teardownLocked()

	return c.snapshotLocked()
}

// Snapshot returns the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Summary flattens the displayed document, override applied.
func (c *Coordinator) Summary() (*domain.OpenAPIDocument, error) {
	doc, err := c.currentDocument()
	if err != nil {
		return nil, err
	}
	return parser.Summarize(doc)
}

// Export writes the displayed document through conv.
func (c *Coordinator) Export(conv domain.Converter, w io.Writer) error {
	summary, err := c.Summary()
	if err != nil {
		return err
	}
	if err := conv.Convert(summary, w); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	return nil
}

func (c *Coordinator) currentDocument() (*domain.ParsedDocument, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateViewer || c.session == nil {
		return nil, domain.ErrNoSession
	}
	if c.session.Document == nil {
		return nil, ErrNotExportable
	}
	return override.Apply(c.session.Document, c.session.Override), nil
}

// begin enters StateLoading under a new generation, tearing down any
// mounted widget first so two never coexist.
func (c *Coordinator) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.teardownLocked()
	c.state = StateLoading

	return c.generation
}

// complete applies a finished load if gen is still current. It reports
// whether the import should be recorded.
func (c *Coordinator) complete(ctx context.Context, gen uint64, req domain.ImportRequest, serverOverride string, res *loader.Result, loadErr error, recalled bool) (Snapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.log.Infof("Discarding stale %s load", req.Kind)
		return c.snapshotLocked(), false, domain.ErrSuperseded
	}

	if loadErr != nil {
		c.state = StateInput
		c.notifier.Notify(LevelError, describe(req.Kind, recalled, loadErr))
		c.log.Errorf("Loading %s source failed: %v", req.Kind, loadErr)
		return c.snapshotLocked(), false, loadErr
	}

	serverOverride = strings.TrimSpace(serverOverride)
	c.checkOverride(serverOverride)

	session := &Session{
		ID:       uuid.NewString(),
		Source:   req,
		Document: res.Document,
		Location: res.Location,
		Title:    res.Title,
		Override: serverOverride,
	}

	if err := c.renderLocked(ctx, session); err != nil {
		c.renderer.Clear()
		c.state = StateInput
		c.notifier.Notify(LevelError, err.Error())
		c.log.Errorf("Rendering %q failed: %v", session.Title, err)
		return c.snapshotLocked(), false, err
	}

	c.session = session
	c.state = StateViewer
	if req.Kind == domain.SourceSelection {
		c.pendingSelection = ""
	}

	c.log.Infof("Viewing %q (%s)", session.Title, req.Kind)

	return c.snapshotLocked(), !recalled, nil
}

func (c *Coordinator) record(ctx context.Context, req domain.ImportRequest, res *loader.Result) {
	entry := domain.HistoryEntry{
		SourceKind: req.Kind,
		RawValue:   strings.TrimSpace(req.Value),
		Label:      res.Title,
	}

	if _, err := c.history.Add(ctx, entry); err != nil {
		c.log.Errorf("Recording history failed: %v", err)
	}
}

func (c *Coordinator) renderLocked(ctx context.Context, s *Session) error {
	cfg := domain.RenderConfig{Title: s.Title}

	if s.Document != nil {
		cfg.Spec = override.Apply(s.Document, s.Override).Root
	} else {
		cfg.URL = s.Location
		cfg.ServerOverride = s.Override
	}

	if err := c.renderer.Render(ctx, cfg); err != nil {
		return &domain.RenderError{Err: err}
	}
	return nil
}

func (c *Coordinator) teardownLocked() {
	if c.session != nil {
		c.renderer.Clear()
		c.session = nil
	}
	c.state = StateInput
}

func (c *Coordinator) checkOverride(value string) {
	if value == "" {
		return
	}
	if err := override.Check(value); err != nil {
		c.log.Infof("Keeping declared servers: %v", err)
	}
}

func (c *Coordinator) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:            c.state,
		PendingSelection: c.pendingSelection,
	}

	if s := c.session; s != nil {
		snap.SessionID = s.ID
		snap.Title = s.Title
		snap.ServerOverride = s.Override
		snap.Source = s.Source.Kind
		snap.Passthrough = s.Document == nil
		if s.Document != nil {
			snap.SchemaVersion = s.Document.Version.String()
		}
	}

	return snap
}

// describe turns a load error into the notification shown to the user.
func describe(kind domain.SourceKind, recalled bool, err error) string {
	var (
		statusErr *domain.HTTPStatusError
		netErr    *domain.NetworkError
	)

	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Failed to fetch URL: HTTP %d", statusErr.StatusCode)
	case errors.As(err, &netErr):
		return fmt.Sprintf("Failed to fetch URL: %v", netErr.Err)
	case errors.Is(err, domain.ErrSpecTooLarge):
		return "Failed to fetch URL: spec is too large"
	case errors.Is(err, domain.ErrEmptySource):
		if kind == domain.SourceURL {
			return "Please enter a URL"
		}
		return "Please paste an OpenAPI spec"
	case errors.Is(err, domain.ErrParseFailure):
		switch {
		case recalled:
			return "Stored spec could not be parsed"
		case kind == domain.SourceSelection:
			return "Could not parse selected text as OpenAPI spec"
		default:
			return "Could not parse spec. Make sure it is valid JSON or YAML."
		}
	default:
		return err.Error()
	}
}
