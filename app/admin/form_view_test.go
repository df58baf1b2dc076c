package admin

import (
	"context"
	"testing"
	"time"

	"github.com/mytheresa/category-admin/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formFixture struct {
	svc      *fakeProvider
	notifier *recordingNotifier
	alerter  *recordingAlerter
	nav      *recordingNavigator
	view     *FormView
}

func newFormFixture() *formFixture {
	f := &formFixture{
		svc: &fakeProvider{byID: map[uint]models.Category{
			7: {ID: uintPtr(7), Name: "Books", Description: "Paper"},
			8: {ID: uintPtr(8), Name: "Games"},
		}},
		notifier: &recordingNotifier{},
		alerter:  &recordingAlerter{},
		nav:      &recordingNavigator{},
	}
	f.view = NewFormView(f.svc, f.notifier, f.alerter, f.nav)
	return f
}

func ids(values ...uint) <-chan uint {
	ch := make(chan uint, len(values))
	for _, v := range values {
		ch <- v
	}
	close(ch)
	return ch
}

func TestFormView_InitNew(t *testing.T) {
	f := newFormFixture()

	f.view.Init(context.Background(), Route{Segment: "new", Params: ids(7)})

	assert.Equal(t, ModeNew, f.view.Mode)
	assert.Empty(t, f.svc.getCalls)
	assert.Equal(t, CategoryForm{}, f.view.Form)
	assert.Equal(t, "Cadastro de Nova Categoria", f.view.Title())
}

func TestFormView_InitEditLoadsCategory(t *testing.T) {
	f := newFormFixture()

	f.view.Init(context.Background(), Route{Segment: "7", Params: ids(7)})

	assert.Equal(t, ModeEdit, f.view.Mode)
	assert.Equal(t, []uint{7}, f.svc.getCalls)
	assert.Equal(t, CategoryForm{ID: uintPtr(7), Name: "Books", Description: "Paper"}, f.view.Form)
	assert.Equal(t, "Editando Categoria: Books", f.view.Title())
}

func TestFormView_InitEditFollowsParamChanges(t *testing.T) {
	testCases := []struct {
		name     string
		params   []uint
		expected []uint
		title    string
	}{
		{name: "Single id", params: []uint{7}, expected: []uint{7}, title: "Editando Categoria: Books"},
		{name: "Id changes", params: []uint{7, 8}, expected: []uint{7, 8}, title: "Editando Categoria: Games"},
		{name: "Repeated id", params: []uint{7, 7}, expected: []uint{7}, title: "Editando Categoria: Books"},
		{name: "Failed load ends the stream", params: []uint{99, 8}, expected: []uint{99}, title: "Editando Categoria: "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFormFixture()

			f.view.Init(context.Background(), Route{Segment: "7", Params: ids(tc.params...)})

			assert.Equal(t, tc.expected, f.svc.getCalls)
			assert.Equal(t, tc.title, f.view.Title())
		})
	}
}

func TestFormView_InitEditStopsOnContextDone(t *testing.T) {
	f := newFormFixture()
	params := make(chan uint)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.view.Init(ctx, Route{Segment: "7", Params: params})
		close(done)
	}()

	params <- 7
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Init did not return after cancel")
	}
	assert.Equal(t, []uint{7}, f.svc.getCalls)
}

func TestFormView_TitleBeforeLoad(t *testing.T) {
	f := newFormFixture()
	f.svc.getErr = errTransport

	f.view.Init(context.Background(), Route{Segment: "7", Params: ids(7)})

	assert.Equal(t, "Editando Categoria: ", f.view.Title())
}

func TestFormView_LoadFailureAlerts(t *testing.T) {
	f := newFormFixture()
	f.svc.getErr = errTransport

	f.view.Init(context.Background(), Route{Segment: "7", Params: ids(7)})

	assert.Equal(t, []string{msgLoadFailed}, f.alerter.alerts)
	assert.Equal(t, CategoryForm{}, f.view.Form)
	assert.False(t, f.view.Submitting)
	assert.Empty(t, f.notifier.errors)
}

func TestFormView_TitleIgnoresFormContents(t *testing.T) {
	f := newFormFixture()
	f.view.Init(context.Background(), Route{Segment: "new"})

	f.view.Form.Name = "Something typed"

	assert.Equal(t, "Cadastro de Nova Categoria", f.view.Title())
}

func TestFormView_SubmitNew(t *testing.T) {
	f := newFormFixture()
	f.view.Init(context.Background(), Route{Segment: "new"})
	f.view.Form.Name = "Books"
	f.view.Form.Description = "Paper"

	var submittingDuringCall bool
	f.svc.onSave = func() { submittingDuringCall = f.view.Submitting }

	require.NoError(t, f.view.Submit(context.Background()))

	require.Len(t, f.svc.createCalls, 1)
	assert.Empty(t, f.svc.updateCalls)
	assert.Equal(t, models.Category{Name: "Books", Description: "Paper"}, f.svc.createCalls[0])
	assert.Nil(t, f.svc.createCalls[0].ID)
	assert.True(t, submittingDuringCall)
	assert.True(t, f.view.Submitting, "stays set after success")
	assert.Equal(t, []string{msgSuccess}, f.notifier.successes)
	assert.Equal(t, []string{"/categories/42/edit"}, f.nav.paths)
}

func TestFormView_SubmitEdit(t *testing.T) {
	f := newFormFixture()
	f.view.Init(context.Background(), Route{Segment: "7", Params: ids(7)})
	f.view.Form.Name = "Old Books"

	require.NoError(t, f.view.Submit(context.Background()))

	assert.Empty(t, f.svc.createCalls)
	require.Len(t, f.svc.updateCalls, 1)
	assert.Equal(t, models.Category{ID: uintPtr(7), Name: "Old Books", Description: "Paper"}, f.svc.updateCalls[0])
	assert.Equal(t, []string{"/categories/7/edit"}, f.nav.paths)
}

func TestFormView_SubmitFailure(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected []string
	}{
		{
			name:     "Unprocessable with errors",
			err:      newAPIError(422, []byte(`{"errors":["name is required"]}`)),
			expected: []string{"name is required"},
		},
		{
			name:     "Server error ignores body",
			err:      newAPIError(500, []byte(`{"errors":["should not show"]}`)),
			expected: []string{msgServerFailure},
		},
		{
			name:     "Unprocessable with unreadable body",
			err:      newAPIError(422, []byte(`<html>`)),
			expected: []string{msgServerFailure},
		},
		{
			name:     "Transport error",
			err:      errTransport,
			expected: []string{msgServerFailure},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFormFixture()
			f.svc.createErr = tc.err
			f.view.Init(context.Background(), Route{Segment: "new"})
			f.view.Form.Name = "Books"

			err := f.view.Submit(context.Background())

			assert.ErrorIs(t, err, tc.err)
			assert.False(t, f.view.Submitting)
			assert.Equal(t, tc.expected, f.view.ServerErrorMessages)
			assert.Equal(t, []string{msgRequestFailed}, f.notifier.errors)
			assert.Empty(t, f.nav.paths)
			assert.Equal(t, ModeNew, f.view.Mode)
		})
	}
}

func TestFormView_SubmitInvalidForm(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "Empty name", value: "", expected: "O campo é obrigatório"},
		{name: "Short name", value: "ab", expected: "O campo deve ter no mínimo 3 caracteres"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFormFixture()
			f.view.Init(context.Background(), Route{Segment: "new"})
			f.view.Form.Name = tc.value

			err := f.view.Submit(context.Background())

			assert.ErrorIs(t, err, ErrInvalidForm)
			assert.Equal(t, map[string]string{"name": tc.expected}, f.view.FieldErrors)
			assert.False(t, f.view.Submitting)
			assert.Empty(t, f.svc.createCalls)
			assert.Empty(t, f.notifier.errors)
		})
	}
}

func TestFormView_SubmitWhileSubmitting(t *testing.T) {
	f := newFormFixture()
	f.view.Init(context.Background(), Route{Segment: "new"})
	f.view.Form.Name = "Books"
	f.view.Submitting = true

	err := f.view.Submit(context.Background())

	assert.ErrorIs(t, err, ErrSubmitInProgress)
	assert.Empty(t, f.svc.createCalls)
}

func TestFormView_ResubmitAfterFailure(t *testing.T) {
	f := newFormFixture()
	f.svc.createErr = errTransport
	f.view.Init(context.Background(), Route{Segment: "new"})
	f.view.Form.Name = "Books"

	require.Error(t, f.view.Submit(context.Background()))
	f.svc.createErr = nil
	require.NoError(t, f.view.Submit(context.Background()))

	assert.Len(t, f.svc.createCalls, 2)
}
