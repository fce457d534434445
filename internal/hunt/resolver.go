package hunt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/qrhunt/scavenger/internal/store"
)

// Resolver maps scanned QR tokens to components and clues, seeding the
// default hunt into the store on first use.
type Resolver struct {
	backend store.Backend
	catalog *Catalog
	logger  *slog.Logger
	now     func() time.Time
}

func NewResolver(backend store.Backend, catalog *Catalog, logger *slog.Logger) *Resolver {
	return &Resolver{backend: backend, catalog: catalog, logger: logger, now: time.Now}
}

// ScanResult is everything a participant sees after scanning a code.
type ScanResult struct {
	Component Component `json:"component"`
	Code      QRCode    `json:"code"`
	Ordinal   int       `json:"ordinal"`
	Clue      string    `json:"clue"`
	Hint      string    `json:"hint"`
}

// ResolveComponent returns the component a QR token is displayed at. The
// printed tokens always resolve, even when the store is unavailable.
func (r *Resolver) ResolveComponent(ctx context.Context, qrID string) (Component, error) {
	if known, ok := lookupKnown(qrID); ok {
		c, err := r.component(ctx, known.Component.ID)
		if errors.Is(err, ErrNotFound) {
			if err = r.EnsureSeeded(ctx); err == nil {
				c, err = r.component(ctx, known.Component.ID)
			}
		}
		if err != nil {
			r.logger.Warn("component lookup failed, using static mapping",
				"qr_id", qrID, "component_id", known.Component.ID, "error", err)
			return known.Component, nil
		}
		return c, nil
	}

	code, err := r.code(ctx, store.Filter{"id": qrID})
	if err != nil {
		return Component{}, err
	}
	return r.component(ctx, code.ComponentID)
}

// EnsureSeeded inserts the default components and QR codes when their
// collections are empty. Inserts are keyed, so concurrent callers cannot
// create duplicates; the first writer wins.
func (r *Resolver) EnsureSeeded(ctx context.Context) error {
	components := DefaultComponents()

	n, err := r.backend.Count(ctx, store.Components)
	if err != nil {
		return fmt.Errorf("counting components: %w", err)
	}
	if n == 0 {
		for _, c := range components {
			_, err := r.backend.InsertIfAbsent(ctx, store.Components, c.ID, store.Document{
				"id":          c.ID,
				"name":        c.Name,
				"description": c.Description,
			})
			if err != nil {
				return fmt.Errorf("seeding component %s: %w", c.ID, err)
			}
		}
		r.logger.Info("seeded components", "count", len(components))
	}

	n, err = r.backend.Count(ctx, store.QRCodes)
	if err != nil {
		return fmt.Errorf("counting qr codes: %w", err)
	}
	if n == 0 {
		now := r.now()
		for i, code := range seedCodes(components, now) {
			_, err := r.backend.InsertIfAbsent(ctx, store.QRCodes, code.ID, codeDoc(code))
			if err != nil {
				return fmt.Errorf("seeding qr code %d: %w", i+1, err)
			}
		}
		r.logger.Info("seeded qr codes", "count", len(components))
	}
	return nil
}

// seedCodes builds one QR code per component; code i points to component
// (i+1) mod N, closing the hunt into a single cycle.
func seedCodes(components []Component, now time.Time) []QRCode {
	codes := make([]QRCode, len(components))
	for i, c := range components {
		next := components[(i+1)%len(components)]
		codes[i] = QRCode{
			ID:                  knownCodes[i].Token,
			ComponentID:         c.ID,
			PointsToComponentID: next.ID,
			Clue:                qrClues[i].Clue,
			Hint:                qrClues[i].Hint,
			Difficulty:          qrClues[i].Difficulty,
			Location:            fmt.Sprintf("Location %d", i+1),
			CreatedAt:           now,
		}
	}
	return codes
}

// FirstCode returns the entry QR code, the one displayed at the first
// component.
func (r *Resolver) FirstCode(ctx context.Context) (QRCode, error) {
	filter := store.Filter{"componentId": FirstComponentID}
	code, err := r.code(ctx, filter)
	if errors.Is(err, ErrNotFound) {
		if err := r.EnsureSeeded(ctx); err != nil {
			return QRCode{}, err
		}
		return r.code(ctx, filter)
	}
	return code, err
}

// Scan resolves qrID and picks the clue to show. Stored clue text wins;
// the catalog fills in when a record carries none.
func (r *Resolver) Scan(ctx context.Context, qrID string, sess *ClueSession) (ScanResult, error) {
	comp, err := r.ResolveComponent(ctx, qrID)
	if err != nil {
		return ScanResult{}, err
	}

	code, err := r.code(ctx, store.Filter{"id": qrID})
	if err != nil {
		known, ok := lookupKnown(qrID)
		if !ok {
			return ScanResult{}, err
		}
		i := Ordinal(known.Component.ID) - 1
		code = seedCodes(DefaultComponents(), r.now())[i]
	}

	res := ScanResult{
		Component: comp,
		Code:      code,
		Ordinal:   Ordinal(comp.ID),
		Clue:      code.Clue,
		Hint:      code.Hint,
	}
	if res.Clue == "" && res.Ordinal > 0 {
		clue, err := r.catalog.Clue(sess, res.Ordinal)
		if err != nil {
			return ScanResult{}, err
		}
		res.Clue = clue.Clue
		if res.Hint == "" {
			res.Hint = clue.Hint
		}
	}
	return res, nil
}

// Codes lists all QR codes, seeding the defaults when there are none.
func (r *Resolver) Codes(ctx context.Context) ([]QRCode, error) {
	docs, err := r.backend.Find(ctx, store.QRCodes, nil)
	if err != nil {
		return nil, fmt.Errorf("listing qr codes: %w", err)
	}
	if len(docs) == 0 {
		if err := r.EnsureSeeded(ctx); err != nil {
			return nil, err
		}
		if docs, err = r.backend.Find(ctx, store.QRCodes, nil); err != nil {
			return nil, fmt.Errorf("listing qr codes: %w", err)
		}
	}

	codes := make([]QRCode, len(docs))
	for i, d := range docs {
		codes[i] = codeFromDoc(d)
	}
	return codes, nil
}

// Components lists all components, seeding the defaults when there are
// none.
func (r *Resolver) Components(ctx context.Context) ([]Component, error) {
	docs, err := r.backend.Find(ctx, store.Components, nil)
	if err != nil {
		return nil, fmt.Errorf("listing components: %w", err)
	}
	if len(docs) == 0 {
		if err := r.EnsureSeeded(ctx); err != nil {
			return nil, err
		}
		if docs, err = r.backend.Find(ctx, store.Components, nil); err != nil {
			return nil, fmt.Errorf("listing components: %w", err)
		}
	}

	out := make([]Component, len(docs))
	for i, d := range docs {
		out[i] = componentFromDoc(d)
	}
	return out, nil
}

func (r *Resolver) component(ctx context.Context, id string) (Component, error) {
	doc, err := r.backend.FindOne(ctx, store.Components, store.Filter{"id": id})
	if errors.Is(err, store.ErrNotFound) {
		return Component{}, ErrNotFound
	}
	if err != nil {
		return Component{}, fmt.Errorf("finding component %s: %w", id, err)
	}
	return componentFromDoc(doc), nil
}

func (r *Resolver) code(ctx context.Context, filter store.Filter) (QRCode, error) {
	doc, err := r.backend.FindOne(ctx, store.QRCodes, filter)
	if errors.Is(err, store.ErrNotFound) {
		return QRCode{}, ErrNotFound
	}
	if err != nil {
		return QRCode{}, fmt.Errorf("finding qr code: %w", err)
	}
	return codeFromDoc(doc), nil
}

func componentFromDoc(d store.Document) Component {
	var c Component
	c.ID, _ = d.String("id")
	c.Name, _ = d.String("name")
	c.Description, _ = d.String("description")
	return c
}

func codeFromDoc(d store.Document) QRCode {
	var q QRCode
	q.ID, _ = d.String("id")
	q.ComponentID, _ = d.String("componentId")
	q.PointsToComponentID, _ = d.String("pointsToComponentId")
	q.Clue, _ = d.String("clue")
	q.Hint, _ = d.String("hint")
	q.Difficulty, _ = d.String("difficulty")
	q.Location, _ = d.String("location")
	q.CreatedAt, _ = d.Time("createdAt")
	return q
}

func codeDoc(q QRCode) store.Document {
	return store.Document{
		"id":                  q.ID,
		"componentId":         q.ComponentID,
		"pointsToComponentId": q.PointsToComponentID,
		"clue":                q.Clue,
		"hint":                q.Hint,
		"difficulty":          q.Difficulty,
		"location":            q.Location,
		"createdAt":           q.CreatedAt,
	}
}
