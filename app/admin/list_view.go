package admin

import (
	"context"

	"github.com/mytheresa/category-admin/models"
)

// ListView drives the category list page.
type ListView struct {
	svc      CategoryProvider
	notifier Notifier
	confirm  Confirmer

	Categories []models.Category
	Page       int
}

func NewListView(svc CategoryProvider, notifier Notifier, confirm Confirmer) *ListView {
	return &ListView{
		svc:        svc,
		notifier:   notifier,
		confirm:    confirm,
		Categories: []models.Category{},
		Page:       1,
	}
}

// Init loads the list. On failure the list stays empty and the user is
// told the server could not be reached.
func (v *ListView) Init(ctx context.Context) error {
	categories, err := v.svc.ListAll(ctx)
	if err != nil {
		v.notifier.Error(msgServerFailure)
		return err
	}
	v.Categories = categories
	return nil
}

// DeleteCategory removes the category after the user confirms. It reports
// whether the confirmation was given; declining makes no network call.
func (v *ListView) DeleteCategory(ctx context.Context, id uint) (bool, error) {
	if !v.confirm.Confirm(msgConfirmDelete) {
		return false, nil
	}

	if err := v.svc.Delete(ctx, id); err != nil {
		v.notifier.Error(msgRequestFailed)
		return true, err
	}

	kept := v.Categories[:0]
	for _, c := range v.Categories {
		if c.ID == nil || *c.ID != id {
			kept = append(kept, c)
		}
	}
	v.Categories = kept
	v.notifier.Success(msgSuccess)
	return true, nil
}
