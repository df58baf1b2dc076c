package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/mytheresa/category-admin/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	apiPath    = "api/categories"
	tracerName = "github.com/mytheresa/category-admin/app/admin"
)

// CategoryProvider is what the views need from the categories backend.
type CategoryProvider interface {
	ListAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, category models.Category) (*models.Category, error)
	Update(ctx context.Context, category models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
}

// CategoryService talks to the categories REST backend. It holds no state
// besides its configuration and is safe to share between requests.
//
// Every failure is handed back to the caller. Transport errors are wrapped,
// non-2xx answers become *APIError. Nothing is retried.
type CategoryService struct {
	base   *url.URL
	client *http.Client
	tracer trace.Tracer
}

func NewCategoryService(baseURL string, client *http.Client) (*CategoryService, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &CategoryService{
		base:   base.JoinPath(apiPath),
		client: client,
		tracer: otel.Tracer(tracerName),
	}, nil
}

func (s *CategoryService) ListAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.do(ctx, "categories.list", http.MethodGet, s.base, nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.do(ctx, "categories.get", http.MethodGet, s.itemURL(id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, category models.Category) (*models.Category, error) {
	var created models.Category
	if err := s.do(ctx, "categories.create", http.MethodPost, s.base, category, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update sends the category and returns the caller's copy. The response
// body is not read.
func (s *CategoryService) Update(ctx context.Context, category models.Category) (*models.Category, error) {
	if category.ID == nil {
		return nil, fmt.Errorf("update category: missing id")
	}
	if err := s.do(ctx, "categories.update", http.MethodPut, s.itemURL(*category.ID), category, nil); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.do(ctx, "categories.delete", http.MethodDelete, s.itemURL(id), nil, nil)
}

func (s *CategoryService) itemURL(id uint) *url.URL {
	return s.base.JoinPath(strconv.FormatUint(uint64(id), 10))
}

// do performs one round trip. A nil out discards the response body.
func (s *CategoryService) do(ctx context.Context, op, method string, u *url.URL, in, out any) (err error) {
	ctx, span := s.tracer.Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", u.String()),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if timing := servertiming.FromContext(ctx); timing != nil {
		metric := timing.NewMetric("api").WithDesc(method + " " + u.Path).Start()
		defer metric.Stop()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
