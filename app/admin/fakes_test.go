package admin

import (
	"context"
	"errors"

	"github.com/mytheresa/category-admin/models"
)

func uintPtr(v uint) *uint { return &v }

// fakeProvider records calls made by the views.
type fakeProvider struct {
	categories []models.Category
	byID       map[uint]models.Category
	nextID     uint

	listErr, getErr, createErr, updateErr, deleteErr error

	listCalls   int
	getCalls    []uint
	createCalls []models.Category
	updateCalls []models.Category
	deleteCalls []uint

	// onSave runs inside Create and Update, before they return.
	onSave func()
}

func (f *fakeProvider) ListAll(context.Context) ([]models.Category, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Category(nil), f.categories...), nil
}

func (f *fakeProvider) GetByID(_ context.Context, id uint) (*models.Category, error) {
	f.getCalls = append(f.getCalls, id)
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, &APIError{StatusCode: 404}
	}
	return &c, nil
}

func (f *fakeProvider) Create(_ context.Context, c models.Category) (*models.Category, error) {
	f.createCalls = append(f.createCalls, c)
	if f.onSave != nil {
		f.onSave()
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.nextID == 0 {
		f.nextID = 42
	}
	c.ID = uintPtr(f.nextID)
	return &c, nil
}

func (f *fakeProvider) Update(_ context.Context, c models.Category) (*models.Category, error) {
	f.updateCalls = append(f.updateCalls, c)
	if f.onSave != nil {
		f.onSave()
	}
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &c, nil
}

func (f *fakeProvider) Delete(_ context.Context, id uint) error {
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

type stubConfirmer struct {
	answer bool
	asked  []string
}

func (c *stubConfirmer) Confirm(msg string) bool {
	c.asked = append(c.asked, msg)
	return c.answer
}

type recordingAlerter struct {
	alerts []string
}

func (a *recordingAlerter) Alert(msg string) { a.alerts = append(a.alerts, msg) }

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) Navigate(path string) { n.paths = append(n.paths, path) }

var errTransport = errors.New("connection refused")
