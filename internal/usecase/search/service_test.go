package search

import (
	"context"
	"errors"
	"testing"

	"github.com/meridio/rankdex/internal/domain"
	"github.com/meridio/rankdex/internal/domain/search/plan"
	"github.com/meridio/rankdex/internal/domain/search/request"
	"github.com/meridio/rankdex/internal/index"
)

func mustRequest(t *testing.T, q string, page, size int) request.Request {
	t.Helper()
	r, err := request.New(q, page, size, "")
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return r
}

func TestSearchEmptyQuerySkipsEngine(t *testing.T) {
	eng := &mockEngine{
		searchFn: func(context.Context, plan.Plan, int) (*index.Result, error) {
			t.Fatal("engine should not be called")
			return nil, nil
		},
	}
	svc := newTestService(t, eng, Config{})

	page, err := svc.Search(context.Background(), mustRequest(t, "", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items()) != 0 || page.Number() != 1 {
		t.Errorf("page = %+v", page)
	}
}

func TestSearchSanitizedAwayQuerySkipsEngine(t *testing.T) {
	eng := &mockEngine{
		searchFn: func(context.Context, plan.Plan, int) (*index.Result, error) {
			t.Fatal("engine should not be called")
			return nil, nil
		},
	}
	svc := newTestService(t, eng, Config{})

	page, err := svc.Search(context.Background(), mustRequest(t, "!!! ***", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items()) != 0 {
		t.Errorf("items = %d", len(page.Items()))
	}
}

func TestSearchEngineFailure(t *testing.T) {
	eng := &mockEngine{
		searchFn: func(context.Context, plan.Plan, int) (*index.Result, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newTestService(t, eng, Config{})

	_, err := svc.Search(context.Background(), mustRequest(t, "report", 1, 10))
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Errorf("err = %v", err)
	}
}

func TestSearchPoolAndPlan(t *testing.T) {
	var gotPlan plan.Plan
	var gotLimit int
	eng := &mockEngine{
		searchFn: func(_ context.Context, p plan.Plan, limit int) (*index.Result, error) {
			gotPlan, gotLimit = p, limit
			return &index.Result{}, nil
		},
	}
	svc := newTestService(t, eng, Config{})

	_, err := svc.Search(context.Background(), mustRequest(t, "annual report", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 200 {
		t.Errorf("pool = %d", gotLimit)
	}
	if gotPlan.Exact != "annual report" || gotPlan.Variant != plan.VariantRaw {
		t.Errorf("plan = %+v", gotPlan)
	}
}

func TestSearchNormalizedEngine(t *testing.T) {
	var gotPlan plan.Plan
	eng := &mockEngine{
		normalized: true,
		searchFn: func(_ context.Context, p plan.Plan, _ int) (*index.Result, error) {
			gotPlan = p
			return &index.Result{}, nil
		},
	}
	svc := newTestService(t, eng, Config{})

	if _, err := svc.Search(context.Background(), mustRequest(t, "Canción", 1, 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPlan.Variant != plan.VariantNormalized || gotPlan.Exact != "cancion" {
		t.Errorf("plan = %+v", gotPlan)
	}
	if gotPlan.TitleField() != "title_norm" {
		t.Errorf("title field = %q", gotPlan.TitleField())
	}
}

func TestSearchReranksAndPaginates(t *testing.T) {
	eng := &mockEngine{
		searchFn: func(context.Context, plan.Plan, int) (*index.Result, error) {
			return &index.Result{
				Total: 3,
				Hits: []index.Hit{
					{ID: "1", Score: 90, Fields: map[string]string{"title": "Annual Report Summary Edition"}},
					{ID: "2", Score: 5, Fields: map[string]string{"title": "Annual Report"}},
					{ID: "3", Score: 50, Fields: map[string]string{"title": "Budget Planning"}},
				},
			}, nil
		},
	}
	svc := newTestService(t, eng, Config{})

	page, err := svc.Search(context.Background(), mustRequest(t, "annual report", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items()) != 3 || page.Total() != 3 {
		t.Fatalf("page = %+v", page)
	}
	// Exact title wins despite the lowest engine score.
	if page.Items()[0].ID() != "2" {
		t.Errorf("first = %s", page.Items()[0].ID())
	}
	if page.Items()[1].ID() != "1" {
		t.Errorf("second = %s", page.Items()[1].ID())
	}
}

func TestSearchTitleFallsBackToID(t *testing.T) {
	eng := &mockEngine{
		searchFn: func(context.Context, plan.Plan, int) (*index.Result, error) {
			return &index.Result{Total: 1, Hits: []index.Hit{{ID: "cms.page.9", Score: 1}}}, nil
		},
	}
	svc := newTestService(t, eng, Config{})

	page, err := svc.Search(context.Background(), mustRequest(t, "anything", 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Items()[0].Title() != "cms.page.9" {
		t.Errorf("title = %q", page.Items()[0].Title())
	}
}
