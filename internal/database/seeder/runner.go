package seeder

import (
	"context"
	"fmt"
	"log"
)

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, s Stores) error {
	if s.Users == nil || s.Profiles == nil || s.Posts == nil {
		return fmt.Errorf("incomplete stores")
	}
	for _, sd := range r.Seeders {
		if sd == nil {
			continue
		}
		if err := sd.Run(ctx, s); err != nil {
			return fmt.Errorf("seed %s: %w", sd.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[Seeder] applied | name=%s", sd.Name())
		}
	}
	return nil
}
