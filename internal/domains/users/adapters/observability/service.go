package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userdomain "github.com/Apurer/go-gin-order-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-order-api/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/go-gin-order-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register")
	defer span.End()

	user, err := s.inner.Register(ctx, name, email, password)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user")
	}
	s.metrics.recordRegistered(ctx)
	s.logInfo(ctx, "user registered", slog.Int64("user.id", user.ID))
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*userdomain.User, string, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login")
	defer span.End()

	user, token, err := s.inner.Login(ctx, email, password)
	if err != nil {
		// Credential failures are expected traffic; keep them off the error log.
		span.SetStatus(codes.Error, err.Error())
		return nil, "", err
	}
	s.metrics.recordLogin(ctx)
	s.logInfo(ctx, "user logged in", slog.Int64("user.id", user.ID))
	return user, token, nil
}

func (s *Service) GetProfile(ctx context.Context, id int64) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.GetProfile", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	user, err := s.inner.GetProfile(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load profile", slog.Int64("user.id", id))
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context, id int64) {
	ctx, span := s.tracer.Start(ctx, "UserService.Logout", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	s.inner.Logout(ctx, id)
	s.logInfo(ctx, "user logged out", slog.Int64("user.id", id))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	usersRegistered metric.Int64Counter
	userLogins      metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registered, _ := m.Int64Counter("users.service.registered", metric.WithDescription("Number of users registered"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of successful logins"))
	return serviceMetrics{usersRegistered: registered, userLogins: logins}
}

func (m serviceMetrics) recordRegistered(ctx context.Context) {
	if m.usersRegistered != nil {
		m.usersRegistered.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context) {
	if m.userLogins != nil {
		m.userLogins.Add(ctx, 1)
	}
}

var _ userports.Service = (*Service)(nil)
