package filter

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/tasklist/internal/model"
)

type Saver interface {
	SaveFilter(ctx context.Context, f model.Filter) error
}

// Controller owns the selected view filter. It never reads or writes tasks.
type Controller struct {
	current model.Filter
	saver   Saver
}

func NewController(saver Saver, initial model.Filter) *Controller {
	if !initial.IsValid() {
		initial = model.FilterAll
	}
	return &Controller{current: initial, saver: saver}
}

func (c *Controller) Current() model.Filter { return c.current }

func (c *Controller) Visible(done bool) bool { return c.current.Visible(done) }

// Set persists name before switching to it. Unknown names are rejected.
func (c *Controller) Set(ctx context.Context, name string) (model.Filter, error) {
	f, ok := model.ParseFilter(name)
	if !ok {
		return c.current, fmt.Errorf("%w: %q", model.ErrInvalidFilter, name)
	}
	if c.saver != nil {
		if err := c.saver.SaveFilter(ctx, f); err != nil {
			return c.current, err
		}
	}
	c.current = f
	return f, nil
}

// Next cycles all -> active -> completed -> all.
func (c *Controller) Next() model.Filter {
	for i, f := range model.Filters {
		if f == c.current {
			return model.Filters[(i+1)%len(model.Filters)]
		}
	}
	return model.FilterAll
}
