// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/janderssonse/appstore/internal/catalog"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/janderssonse/appstore/internal/i18n"
)

// Mutation actions and record kinds reported in a MutationResult.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"

	KindCategory    = "category"
	KindApplication = "application"
)

// CategoryForm is the raw admin input for a category.
type CategoryForm struct {
	Name  string
	Icon  string
	Color string
}

// ApplicationForm is the raw admin input for an application. Rating and
// Category are free text, as typed.
type ApplicationForm struct {
	Name        string
	Description string
	DownloadURL string
	Logo        string
	Rating      string
	Downloads   string
	Category    string
}

// AdminService validates admin input and writes it to the catalog.
type AdminService struct {
	source domain.CatalogSource
	t      i18n.Lookup
	now    func() time.Time
}

// NewAdminService creates an AdminService.
func NewAdminService(source domain.CatalogSource, t i18n.Lookup) *AdminService {
	if t == nil {
		t = i18n.Passthrough()
	}

	return &AdminService{source: source, t: t, now: time.Now}
}

// CreateCategory requires a name. The color defaults to catalog.DefaultColor.
func (s *AdminService) CreateCategory(ctx context.Context, form CategoryForm) (domain.MutationResult, error) {
	in := categoryInput(form)
	if in.Color == "" {
		in.Color = catalog.DefaultColor
	}

	if err := in.Validate(); err != nil {
		return domain.MutationResult{}, s.invalid("notice.categoryNameRequired", err)
	}

	category, err := s.source.CreateCategory(ctx, in)
	if err != nil {
		return domain.MutationResult{}, s.failed(err)
	}

	return s.result(ActionCreated, KindCategory, category.ID, category.Name, "notice.categoryCreated"), nil
}

// UpdateCategory sends only the fields that were filled in.
func (s *AdminService) UpdateCategory(ctx context.Context, id int, form CategoryForm) (domain.MutationResult, error) {
	category, err := s.source.UpdateCategory(ctx, id, categoryInput(form))
	if err != nil {
		return domain.MutationResult{}, s.failed(err)
	}

	return s.result(ActionUpdated, KindCategory, category.ID, category.Name, "notice.categoryUpdated"), nil
}

// DeleteCategory removes a category.
func (s *AdminService) DeleteCategory(ctx context.Context, id int) (domain.MutationResult, error) {
	if err := s.source.DeleteCategory(ctx, id); err != nil {
		return domain.MutationResult{}, s.failed(err)
	}

	return s.result(ActionDeleted, KindCategory, id, "", "notice.categoryDeleted"), nil
}

// CreateApplication requires name, description and download URL. An
// unreadable rating becomes 0 and an empty category means none.
func (s *AdminService) CreateApplication(ctx context.Context, form ApplicationForm) (domain.MutationResult, error) {
	in := applicationInput(form)
	if in.Rating == nil {
		zero := 0.0
		in.Rating = &zero
	}

	if err := in.Validate(); err != nil {
		return domain.MutationResult{}, s.invalid("notice.applicationFieldsRequired", err)
	}

	app, err := s.source.CreateApplication(ctx, in)
	if err != nil {
		return domain.MutationResult{}, s.failed(err)
	}

	return s.result(ActionCreated, KindApplication, app.ID, app.Name, "notice.applicationCreated"), nil
}

// UpdateApplication sends only the fields that were filled in.
func (s *AdminService) UpdateApplication(
	ctx context.Context, id int, form ApplicationForm,
) (domain.MutationResult, error) {
	app, err := s.source.UpdateApplication(ctx, id, applicationInput(form))
	if err != nil {
		return domain.MutationResult{}, s.failed(err)
	}

	return s.result(ActionUpdated, KindApplication, app.ID, app.Name, "notice.applicationUpdated"), nil
}

// DeleteApplication removes an application.
func (s *AdminService) DeleteApplication(ctx context.Context, id int) (domain.MutationResult, error) {
	if err := s.source.DeleteApplication(ctx, id); err != nil {
		return domain.MutationResult{}, s.failed(err)
	}

	return s.result(ActionDeleted, KindApplication, id, "", "notice.applicationDeleted"), nil
}

// ErrorNotice turns a failed admin call into a translated notice.
func (s *AdminService) ErrorNotice(err error) Notice {
	return Notice{Title: s.t("notice.error", nil), Message: err.Error()}
}

func (s *AdminService) result(action, kind string, id int, name, noticeKey string) domain.MutationResult {
	return domain.MutationResult{
		Action:    action,
		Kind:      kind,
		ID:        id,
		Name:      name,
		Notice:    s.t(noticeKey, nil),
		Timestamp: s.now(),
	}
}

func (s *AdminService) invalid(noticeKey string, cause error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrValidation, s.t(noticeKey, nil), cause)
}

func (s *AdminService) failed(err error) error {
	return fmt.Errorf("%s: %w", s.t("notice.error", nil), err)
}

func categoryInput(form CategoryForm) catalog.CategoryInput {
	return catalog.CategoryInput{
		Name:  strings.TrimSpace(form.Name),
		Icon:  strings.TrimSpace(form.Icon),
		Color: strings.TrimSpace(form.Color),
	}
}

func applicationInput(form ApplicationForm) catalog.ApplicationInput {
	in := catalog.ApplicationInput{
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
		DownloadURL: strings.TrimSpace(form.DownloadURL),
		Logo:        strings.TrimSpace(form.Logo),
		Downloads:   strings.TrimSpace(form.Downloads),
		Category:    catalog.ParseCategoryID(form.Category),
	}

	if strings.TrimSpace(form.Rating) != "" {
		rating := catalog.ParseRating(form.Rating)
		in.Rating = &rating
	}

	return in
}
