package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGuide(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author")
	ctx := asUser(author)

	desc := "Old lighthouse"
	p := f.place(t, "Lighthouse", 1, 1)
	if err := f.db.Model(p).Update("description", desc).Error; err != nil {
		t.Fatalf("set description: %v", err)
	}

	stored, err := f.routes.Create(ctx, RouteInput{Name: strPtr("stored"), GuideDescription: strPtr("<h1>Hi</h1>")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	g, err := f.guides.Guide(ctx, stored.UUID)
	if err != nil || !g.Stored() || g.Text != "<h1>Hi</h1>" {
		t.Fatalf("stored guide must be returned verbatim: %+v %v", g, err)
	}

	blank, err := f.routes.Create(ctx, RouteInput{Name: strPtr("blank"), GuideDescription: strPtr("  \n")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	g, err = f.guides.Guide(ctx, blank.UUID)
	if err != nil || !g.Stored() || g.Text != "  \n" {
		t.Fatalf("whitespace guide text must be returned as stored: %+v %v", g, err)
	}

	rendered, err := f.routes.Create(ctx, RouteInput{Name: strPtr("rendered"), Places: []uint{p.ID}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	g, err = f.guides.Guide(ctx, rendered.UUID)
	if err != nil || g.Stored() {
		t.Fatalf("expected template context: %+v %v", g, err)
	}
	if g.Context.Route.Name != "rendered" || len(g.Context.Places) != 1 || g.Context.Places[0].Description != desc {
		t.Fatalf("unexpected guide context: %+v", g.Context)
	}

	if _, err := f.guides.Guide(asUser(f.user(t, "other")), stored.UUID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-owner guide: expected ErrNotFound, got %v", err)
	}
	if _, err := f.guides.Guide(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown guide: expected ErrNotFound, got %v", err)
	}
}
