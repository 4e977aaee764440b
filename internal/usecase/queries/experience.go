package queries

import (
	"context"

	"experience-booking/internal/domain/experience"
	"experience-booking/internal/infra"
	"experience-booking/internal/pkg/errs"
	"experience-booking/internal/usecase/shared"
)

var (
	ErrExperienceNotFound = errs.New("experience not found")
	ErrCatalogUnavailable = errs.New("catalog unavailable")
)

type ExperienceQueries interface {
	List(ctx context.Context) ([]*ExperienceSummaryView, error)
	GetByID(ctx context.Context, id string) (*ExperienceView, error)
}

type experienceQueriesImpl struct {
	catalog shared.CatalogStore
}

func NewExperienceQueries(catalog shared.CatalogStore) ExperienceQueries {
	return &experienceQueriesImpl{catalog: catalog}
}

func (q *experienceQueriesImpl) List(ctx context.Context) ([]*ExperienceSummaryView, error) {
	exps, err := q.catalog.ListExperiences(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Mark(err, ErrCatalogUnavailable), errs.ErrUnavailable)
	}

	views := make([]*ExperienceSummaryView, 0, len(exps))
	for _, e := range exps {
		views = append(views, toSummaryView(e.Summary()))
	}
	return views, nil
}

func (q *experienceQueriesImpl) GetByID(ctx context.Context, id string) (*ExperienceView, error) {
	exp, err := q.catalog.GetExperience(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrExperienceNotFound, errs.ErrNotFound)
		}
		return nil, errs.Mark(errs.Mark(err, ErrCatalogUnavailable), errs.ErrUnavailable)
	}
	return ToExperienceView(exp), nil
}

func ToExperienceView(exp *experience.Experience) *ExperienceView {
	days := exp.Days()
	dayViews := make([]DayView, 0, len(days))
	for _, d := range days {
		slots := d.Slots()
		slotViews := make([]SlotView, 0, len(slots))
		for _, s := range slots {
			slotViews = append(slotViews, SlotView{
				Time:              s.Time(),
				CapacityRemaining: s.CapacityRemaining(),
				SoldOut:           s.SoldOut(),
			})
		}
		dayViews = append(dayViews, DayView{Date: d.Date(), Slots: slotViews})
	}

	return &ExperienceView{
		ExperienceSummaryView: *toSummaryView(exp.Summary()),
		Description:           exp.Description(),
		Days:                  dayViews,
	}
}

func toSummaryView(s experience.Summary) *ExperienceSummaryView {
	return &ExperienceSummaryView{
		ID:               s.ID,
		Title:            s.Title,
		City:             s.City,
		BasePrice:        s.BasePrice,
		ImageURL:         s.ImageURL,
		ShortDescription: s.ShortDescription,
	}
}
