package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mytheresa/category-admin/models"
)

// Mode is decided once when the form view is initialised.
type Mode int

const (
	ModeNew Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeNew {
		return "new"
	}
	return "edit"
}

// Route is what the router hands the form view. Segment is the first path
// segment after /categories/ ("new" or an id). Params carries the id route
// parameter every time it changes; it is only read in ModeEdit.
type Route struct {
	Segment string
	Params  <-chan uint
}

// CategoryForm holds the editable values of the form.
type CategoryForm struct {
	ID          *uint  `json:"id"`
	Name        string `json:"name" validate:"required,min=3"`
	Description string `json:"description"`
}

// FormView drives the create/edit page.
type FormView struct {
	svc      CategoryProvider
	notifier Notifier
	alerter  Alerter
	nav      Navigator

	Mode                Mode
	Form                CategoryForm
	Category            models.Category
	Submitting          bool
	ServerErrorMessages []string
	FieldErrors         map[string]string
}

func NewFormView(svc CategoryProvider, notifier Notifier, alerter Alerter, nav Navigator) *FormView {
	return &FormView{
		svc:      svc,
		notifier: notifier,
		alerter:  alerter,
		nav:      nav,
	}
}

// Init sets the mode, builds an empty form and, in ModeEdit, loads the
// category for each id received on route.Params until the channel is
// closed or ctx is done. Consecutive duplicate ids are fetched once. A failed
// load ends the stream: later ids are not fetched.
func (v *FormView) Init(ctx context.Context, route Route) {
	if route.Segment == "new" {
		v.Mode = ModeNew
	} else {
		v.Mode = ModeEdit
	}
	v.Form = CategoryForm{}
	v.FieldErrors = nil

	if v.Mode == ModeEdit {
		v.loadCategory(ctx, route.Params)
	}
}

func (v *FormView) loadCategory(ctx context.Context, params <-chan uint) {
	if params == nil {
		return
	}
	var (
		last   uint
		loaded bool
	)
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-params:
			if !ok {
				return
			}
			if loaded && id == last {
				continue
			}
			last, loaded = id, true

			category, err := v.svc.GetByID(ctx, id)
			if err != nil {
				v.alerter.Alert(msgLoadFailed)
				return
			}
			v.Category = *category
			v.Form = CategoryForm{
				ID:          category.ID,
				Name:        category.Name,
				Description: category.Description,
			}
		}
	}
}

// Title is derived from the mode and the loaded record only.
func (v *FormView) Title() string {
	if v.Mode == ModeNew {
		return titleNewCategory
	}
	return titleEditCategory + v.Category.Name
}

// Submit validates the form and sends it to the backend, creating in
// ModeNew and updating in ModeEdit. On success it navigates to the edit
// page of the saved record and leaves Submitting set.
func (v *FormView) Submit(ctx context.Context) error {
	if v.Submitting {
		return ErrSubmitInProgress
	}
	if errs := validateForm(v.Form); errs != nil {
		v.FieldErrors = errs
		return ErrInvalidForm
	}
	v.FieldErrors = nil
	v.Submitting = true

	category := models.Category{
		ID:          v.Form.ID,
		Name:        v.Form.Name,
		Description: v.Form.Description,
	}

	var (
		saved *models.Category
		err   error
	)
	if v.Mode == ModeNew {
		saved, err = v.svc.Create(ctx, category)
	} else {
		saved, err = v.svc.Update(ctx, category)
	}
	if err == nil && !saved.HasID() {
		err = fmt.Errorf("save category: backend returned no id")
	}
	if err != nil {
		v.actionForError(err)
		return err
	}

	v.notifier.Success(msgSuccess)
	v.nav.Navigate(editPath(*saved.ID))
	return nil
}

func (v *FormView) actionForError(err error) {
	v.notifier.Error(msgRequestFailed)
	v.Submitting = false
	v.ServerErrorMessages = serverErrorMessages(err)
}

func serverErrorMessages(err error) []string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Unprocessable() {
		return apiErr.Errors
	}
	return []string{msgServerFailure}
}

var formFieldMessages = map[string]string{
	"required": "O campo é obrigatório",
	"min":      "O campo deve ter no mínimo %s caracteres",
}

// validateForm returns one message per invalid field, keyed by field name,
// or nil when the form is valid.
func validateForm(form CategoryForm) map[string]string {
	err := models.Validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}

	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := formFieldMessages[fe.Tag()]
		if !ok {
			msg = "O campo é inválido"
		} else if fe.Param() != "" {
			msg = fmt.Sprintf(msg, fe.Param())
		}
		errs[fe.Field()] = msg
	}
	return errs
}
