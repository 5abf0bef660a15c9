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

	ordersdomain "github.com/Apurer/go-gin-order-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-order-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *Service) CreateOrder(ctx context.Context, order *ordersdomain.Order) (*ordersdomain.Order, error) {
	attrs := []attribute.KeyValue{attribute.Int("order.items", len(orderItems(order)))}
	if order != nil {
		attrs = append(attrs, attribute.Int64("order.user_id", order.UserID))
	}
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder", trace.WithAttributes(attrs...))
	defer span.End()

	result, err := s.inner.CreateOrder(ctx, order)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order")
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "order created",
		slog.String("order.id", result.ID),
		slog.Int64("order.user_id", result.UserID),
		slog.Float64("order.total_price", result.TotalPrice))
	return result, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (*ordersports.OrderWithOwner, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrderByID", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrderByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	s.logInfo(ctx, "order loaded", slog.String("order.id", id))
	return result, nil
}

func (s *Service) UpdateOrderToPaid(ctx context.Context, id string, result ordersdomain.PaymentResult) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrderToPaid",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("payment.status", result.Status)))
	defer span.End()

	order, err := s.inner.UpdateOrderToPaid(ctx, id, result)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark order paid", slog.String("order.id", id))
	}
	s.metrics.recordPaid(ctx)
	s.logInfo(ctx, "order marked paid", slog.String("order.id", id), slog.String("payment.provider_id", result.ProviderID))
	return order, nil
}

func (s *Service) UpdateOrderToDelivered(ctx context.Context, id string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrderToDelivered", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := s.inner.UpdateOrderToDelivered(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark order delivered", slog.String("order.id", id))
	}
	s.metrics.recordDelivered(ctx)
	s.logInfo(ctx, "order marked delivered", slog.String("order.id", id))
	return order, nil
}

func (s *Service) ListOrdersByUser(ctx context.Context, userID int64) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrdersByUser", trace.WithAttributes(attribute.Int64("order.user_id", userID)))
	defer span.End()

	result, err := s.inner.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list user orders", slog.Int64("order.user_id", userID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*ordersports.OrderWithOwner, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
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

func orderItems(order *ordersdomain.Order) []ordersdomain.OrderItem {
	if order == nil {
		return nil
	}
	return order.Items
}

type serviceMetrics struct {
	ordersCreated   metric.Int64Counter
	ordersPaid      metric.Int64Counter
	ordersDelivered metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	paid, _ := m.Int64Counter("orders.service.paid", metric.WithDescription("Number of orders marked paid"))
	delivered, _ := m.Int64Counter("orders.service.delivered", metric.WithDescription("Number of orders marked delivered"))
	return serviceMetrics{ordersCreated: created, ordersPaid: paid, ordersDelivered: delivered}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordPaid(ctx context.Context) {
	if m.ordersPaid != nil {
		m.ordersPaid.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDelivered(ctx context.Context) {
	if m.ordersDelivered != nil {
		m.ordersDelivered.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)
