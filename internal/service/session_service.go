package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/mapview"
	"github.com/noah-isme/wazai-maps/internal/models"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
	"github.com/noah-isme/wazai-maps/pkg/jobs"
)

// SearchJobType tags queued search jobs.
const SearchJobType = "session.search"

// SearchJob is the payload of a queued search.
type SearchJob struct {
	SessionID  string
	Generation uint64
	Params     models.SearchParams
}

type sessionRepository interface {
	Put(id string, value *Session) []*Session
	Get(id string) (*Session, bool)
	Delete(id string) (*Session, bool)
	Sweep() []*Session
	Len() int
}

type eventSearcher interface {
	Search(ctx context.Context, params models.SearchParams) ([]models.Event, bool, error)
}

type jobQueue interface {
	Enqueue(job jobs.Job) error
}

// SessionConfig holds per-session defaults.
type SessionConfig struct {
	Center          mapview.LatLng
	Zoom            float64
	FocusZoom       float64
	Viewport        mapview.Size
	DisplayTimezone string
	// JobRetries is how many times a failed search is re-queued before the
	// error is shown to the session.
	JobRetries int
}

// SessionService drives map sessions: it creates them, runs their searches on
// the job queue and renders the list, calendar, detail and map surfaces.
type SessionService struct {
	sessions  sessionRepository
	search    eventSearcher
	queue     jobQueue
	list      *ListService
	detail    *DetailService
	exports   *ExportService
	metrics   *MetricsService
	validator *validator.Validate
	cfg       SessionConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs the service.
func NewSessionService(
	sessions sessionRepository,
	search eventSearcher,
	queue jobQueue,
	exports *ExportService,
	metrics *MetricsService,
	validate *validator.Validate,
	cfg SessionConfig,
	logger *zap.Logger,
) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if exports == nil {
		exports = NewExportService(nil, nil, nil)
	}
	if cfg.DisplayTimezone == "" {
		cfg.DisplayTimezone = DefaultDisplayTimezone
	}
	svc := &SessionService{
		sessions:  sessions,
		search:    search,
		queue:     queue,
		list:      NewListService(logger),
		detail:    NewDetailService(),
		exports:   exports,
		metrics:   metrics,
		validator: validate,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
	_ = svc.validator.RegisterValidation("iana_tz", func(fl validator.FieldLevel) bool {
		_, err := time.LoadLocation(fl.Field().String())
		return err == nil
	})
	return svc
}

// Create opens a session and starts its first search.
func (s *SessionService) Create(ctx context.Context, req dto.CreateSessionRequest) (*models.SessionSnapshot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	tz := req.Timezone
	if tz == "" {
		tz = s.cfg.DisplayTimezone
	}
	clock, err := NewEventClock(tz)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown timezone")
	}

	size := s.cfg.Viewport
	if req.Width > 0 {
		size.Width = req.Width
	}
	if req.Height > 0 {
		size.Height = req.Height
	}

	id := uuid.NewString()
	sess := newSession(id, clock, mapview.Options{Center: s.cfg.Center, Zoom: s.cfg.Zoom, Size: size}, s.cfg.FocusZoom, s.now)
	for _, evicted := range s.sessions.Put(id, sess) {
		s.logger.Info("session evicted", zap.String("session_id", evicted.ID()))
		evicted.close()
	}
	s.metrics.SetActiveSessions(s.sessions.Len())
	s.logger.Info("session created", zap.String("session_id", id), zap.String("timezone", clock.Name()))

	search := dto.SearchRequest{}
	if req.Search != nil {
		search = *req.Search
	}
	if _, err := s.Search(ctx, id, search); err != nil {
		if _, ok := s.sessions.Delete(id); ok {
			sess.close()
		}
		s.metrics.SetActiveSessions(s.sessions.Len())
		return nil, err
	}
	snapshot := sess.Snapshot()
	return &snapshot, nil
}

// Get returns a session snapshot.
func (s *SessionService) Get(id string) (*models.SessionSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	var snapshot models.SessionSnapshot
	err = sess.do(func() error {
		snapshot = sess.snapshotLocked()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Delete closes a session.
func (s *SessionService) Delete(id string) error {
	sess, ok := s.sessions.Delete(id)
	if !ok {
		return appErrors.ErrSessionNotFound
	}
	sess.close()
	s.metrics.SetActiveSessions(s.sessions.Len())
	return nil
}

// Search replaces the session's parameters, clears its selection and queues
// the fetch. The returned generation identifies the response that will be shown.
func (s *SessionService) Search(ctx context.Context, id string, req dto.SearchRequest) (*dto.SearchAccepted, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid search parameters")
	}
	params := req.Params()
	if err := s.validator.Struct(params); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid search parameters")
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	gen, err := sess.beginSearch(params)
	if err != nil {
		return nil, err
	}

	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    SearchJobType,
		Key:     id,
		Payload: SearchJob{SessionID: id, Generation: gen, Params: params},
	}
	if err := s.queue.Enqueue(job); err != nil {
		sess.completeSearch(gen, nil, err)
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "search queue unavailable")
	}
	logFields := []zap.Field{
		zap.String("session_id", id),
		zap.Uint64("generation", gen),
		zap.String("keyword", params.Keyword),
		zap.String("country", params.Country),
		zap.String("provider", params.Provider),
	}
	s.logger.Debug("search queued", logFields...)
	return &dto.SearchAccepted{SessionID: id, Generation: gen, Params: params}, nil
}

// HandleSearchJob runs a queued search and applies the response if it is
// still the session's latest. A returned error asks the queue to retry.
func (s *SessionService) HandleSearchJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(SearchJob)
	if !ok {
		s.logger.Error("unexpected search job payload", zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}
	sess, ok := s.sessions.Get(payload.SessionID)
	if !ok {
		return nil
	}

	fetchCtx, ok := sess.startFetch(ctx, payload.Generation)
	if !ok {
		s.metrics.RecordSearchOutcome(SearchCancelled)
		return nil
	}
	events, cacheHit, err := s.search.Search(fetchCtx, payload.Params)

	if err != nil && !errors.Is(err, context.Canceled) && job.Attempt < s.cfg.JobRetries && IsRetryableSearchError(err) {
		sess.finishFetch(payload.Generation)
		if sess.current(payload.Generation) {
			return err
		}
		s.discard(payload, SearchStale)
		return nil
	}

	switch sess.completeSearch(payload.Generation, events, err) {
	case completionClosed:
		s.discard(payload, SearchCancelled)
		return nil
	case completionStale:
		outcome := SearchStale
		if errors.Is(err, context.Canceled) {
			outcome = SearchCancelled
		}
		s.discard(payload, outcome)
		return nil
	}

	if err != nil {
		s.metrics.RecordSearchOutcome(SearchFailed)
		s.logger.Warn("search failed",
			zap.String("session_id", payload.SessionID),
			zap.Uint64("generation", payload.Generation),
			zap.Error(err),
		)
		return nil
	}
	s.metrics.RecordSearchOutcome(SearchApplied)
	s.logger.Debug("search applied",
		zap.String("session_id", payload.SessionID),
		zap.Uint64("generation", payload.Generation),
		zap.Int("results", len(events)),
		zap.Bool("cache_hit", cacheHit),
	)
	return nil
}

func (s *SessionService) discard(payload SearchJob, outcome string) {
	s.metrics.RecordSearchOutcome(outcome)
	s.logger.Debug("search response discarded",
		zap.String("session_id", payload.SessionID),
		zap.Uint64("generation", payload.Generation),
		zap.String("outcome", outcome),
	)
}

// IsRetryableSearchError reports whether a failed search is worth re-queueing.
func IsRetryableSearchError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, appErrors.ErrUpstreamUnavailable) {
		return true
	}
	var appErr *appErrors.Error
	return !errors.As(err, &appErr)
}

// Select makes eventID, which must be in the current result set, the
// selection and returns its detail panel.
func (s *SessionService) Select(id, eventID string) (*dto.DetailView, error) {
	if err := s.validator.Struct(dto.SelectRequest{EventID: eventID}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event id")
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	var view dto.DetailView
	err = sess.do(func() error {
		event, ok := models.FindEvent(sess.store.events, eventID)
		if !ok {
			return appErrors.ErrEventNotFound
		}
		sess.store.Select(event)
		view = s.detail.Render(event, sess.clock)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// ClearSelection closes the detail panel.
func (s *SessionService) ClearSelection(id string) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}
	return sess.do(func() error {
		sess.store.Clear()
		return nil
	})
}

// Detail renders the selected event, or returns nil when nothing is selected.
func (s *SessionService) Detail(id string) (*dto.DetailView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	var view *dto.DetailView
	err = sess.do(func() error {
		if event, ok := sess.store.Selected(); ok {
			rendered := s.detail.Render(event, sess.clock)
			view = &rendered
		}
		return nil
	})
	return view, err
}

// Events returns the filtered, sorted list.
func (s *SessionService) Events(id string, query dto.EventListQuery) (*dto.EventList, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid list query")
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	order := models.ParseSortOrder(query.Order)
	var list dto.EventList
	err = sess.do(func() error {
		events := s.list.Sort(s.list.Filter(sess.store.Events(), query.Query), order, sess.clock)
		list = dto.EventList{
			Items:     s.list.Items(events, sess.store.SelectedID(), sess.clock),
			Total:     len(events),
			Order:     string(order),
			Loading:   sess.store.Loading(),
			LastError: sess.store.LastError(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Calendar returns marked days and the events on the chosen day.
func (s *SessionService) Calendar(id string, query dto.CalendarQuery) (*dto.CalendarView, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be formatted as YYYY-MM-DD")
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	var view dto.CalendarView
	err = sess.do(func() error {
		var calErr error
		view, calErr = s.list.Calendar(sess.store.events, query.Date, sess.store.SelectedID(), sess.clock)
		return calErr
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// MapView returns the camera and markers.
func (s *SessionService) MapView(id string) (*dto.MapView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	var view dto.MapView
	err = sess.do(func() error {
		view = sess.view.View()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Viewport resizes, pans or zooms the map.
func (s *SessionService) Viewport(id string, req dto.ViewportRequest) (*dto.MapView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid viewport")
	}
	if req.Center != nil && !req.Center.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "center is out of range")
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	var view dto.MapView
	err = sess.do(func() error {
		sess.view.Viewport(req)
		view = sess.view.View()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Click delivers a click at a pixel offset. A marker hit selects its event;
// anything else clears the selection.
func (s *SessionService) Click(id string, req dto.ClickRequest) (*dto.ClickResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid click")
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	var res dto.ClickResponse
	err = sess.do(func() error {
		res = sess.view.Click(mapview.Point{X: req.X, Y: req.Y})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Export renders the current list in the requested format.
func (s *SessionService) Export(id string, query dto.ExportQuery) (*dto.ExportFile, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnsupportedFormat.Code, appErrors.ErrUnsupportedFormat.Status, "format must be one of csv, pdf, ics")
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	var file dto.ExportFile
	err = sess.do(func() error {
		events := s.list.Sort(s.list.Filter(sess.store.Events(), query.Query), models.ParseSortOrder(query.Order), sess.clock)
		var renderErr error
		file, renderErr = s.exports.Render(query.Format, events, sess.store.Params(), sess.clock)
		if renderErr != nil {
			return fmt.Errorf("render %s export: %w", query.Format, renderErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// Cleanup closes sessions that have been idle past their TTL.
func (s *SessionService) Cleanup() int {
	expired := s.sessions.Sweep()
	for _, sess := range expired {
		sess.close()
	}
	s.metrics.SetActiveSessions(s.sessions.Len())
	return len(expired)
}

// RunJanitor calls Cleanup every interval until ctx is done.
func (s *SessionService) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 {
				s.logger.Info("expired sessions closed", zap.Int("count", n), zap.Int("active", s.sessions.Len()))
			}
		}
	}
}

// Active returns the number of live sessions.
func (s *SessionService) Active() int {
	return s.sessions.Len()
}

func (s *SessionService) session(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.ErrSessionNotFound
	}
	sess, ok := s.sessions.Get(id)
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	return sess, nil
}
